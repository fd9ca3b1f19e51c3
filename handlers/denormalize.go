// handlers/denormalize.go
package handlers

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var activeWorkOrderStatuses = []string{"open", "in-progress"}

// RecomputeLocationCounters refreshes the denormalized assetCount and
// activeWOs fields of a location by rescanning the asset and work order
// collections. It runs after asset and work order mutations.
//
// The counters are eventually consistent only: there is no lock around
// the count-then-set, so concurrent mutations against the same location
// can interleave recomputations in either order. The value settles once
// mutations stop. Failures are logged and never fail the request that
// triggered the recompute.
func RecomputeLocationCounters(ctx context.Context, locationID string) {
	if locationID == "" {
		return
	}
	oid, err := primitive.ObjectIDFromHex(locationID)
	if err != nil {
		// Soft reference that does not point at a location document.
		return
	}

	assetCount, err := assetCollection.CountDocuments(ctx, bson.M{"location": locationID})
	if err != nil {
		log.Printf("location %s asset count failed: %v", locationID, err)
		return
	}

	activeWOs, err := workOrderCollection.CountDocuments(ctx, bson.M{
		"location": locationID,
		"status":   bson.M{"$in": activeWorkOrderStatuses},
	})
	if err != nil {
		log.Printf("location %s active WO count failed: %v", locationID, err)
		return
	}

	_, err = locationCollection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"assetCount": assetCount,
		"activeWOs":  activeWOs,
	}})
	if err != nil {
		log.Printf("location %s counter update failed: %v", locationID, err)
	}
}
