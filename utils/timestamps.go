// utils/timestamps.go
package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Stamp attaches mutation timestamps to a document. Creation sets both
// createdAt and updatedAt; an update only touches updatedAt. Returns the
// same map for chaining.
func Stamp(doc bson.M, isUpdate bool) bson.M {
	now := time.Now().UTC()
	if !isUpdate {
		doc["createdAt"] = now
	}
	doc["updatedAt"] = now
	return doc
}
