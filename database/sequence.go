// database/sequence.go
package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// NextSequenceNumber allocates the next human-readable number for an entity
// type, e.g. NextSequenceNumber(ctx, "work_orders", "WO") -> "WO-001".
//
// The increment-and-read is a single findAndModify with $inc, so two
// concurrent callers can never observe the same sequence value. There is no
// fallback scheme: if the store is unavailable the error propagates and the
// caller retries.
func NextSequenceNumber(ctx context.Context, entityType string, prefix string) (string, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDoc
	err := DB().Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": entityType},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("failed to allocate sequence number for %s: %w", entityType, err)
	}

	return FormatSequenceNumber(prefix, counter.Seq), nil
}

// FormatSequenceNumber zero-pads to three digits; sequences beyond 999
// simply produce longer suffixes.
func FormatSequenceNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
