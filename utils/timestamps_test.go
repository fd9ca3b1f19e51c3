package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestStampCreate(t *testing.T) {
	doc := Stamp(bson.M{"name": "pump"}, false)

	created, ok := doc["createdAt"].(time.Time)
	if !ok {
		t.Fatal("createdAt not set on create")
	}
	updated, ok := doc["updatedAt"].(time.Time)
	if !ok {
		t.Fatal("updatedAt not set on create")
	}
	if !created.Equal(updated) {
		t.Errorf("create must stamp identical times, got %v and %v", created, updated)
	}
	if time.Since(created) > time.Minute {
		t.Errorf("stamp is stale: %v", created)
	}
}

func TestStampUpdate(t *testing.T) {
	doc := Stamp(bson.M{"status": "open"}, true)

	if _, ok := doc["createdAt"]; ok {
		t.Error("update must not touch createdAt")
	}
	if _, ok := doc["updatedAt"].(time.Time); !ok {
		t.Error("updatedAt not set on update")
	}
	if doc["status"] != "open" {
		t.Error("existing fields must survive stamping")
	}
}
