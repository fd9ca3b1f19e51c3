// models/date.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Date is a calendar-or-timestamp field. Clients may send either a bare
// "2006-01-02" date or a full RFC 3339 timestamp; a bare date is stored
// with the time-of-day zeroed in UTC. It always serializes back as a full
// RFC 3339 timestamp and round-trips through BSON as a datetime.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{t.UTC()}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.UTC().Format(time.RFC3339) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date value: %s", s)
	}
	s = s[1 : len(s)-1]

	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	return fmt.Errorf("invalid date format %q, expected YYYY-MM-DD or RFC3339", s)
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.Time)
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null {
		d.Time = time.Time{}
		return nil
	}
	var parsed time.Time
	if err := bson.UnmarshalValue(t, data, &parsed); err != nil {
		return err
	}
	d.Time = parsed.UTC()
	return nil
}
