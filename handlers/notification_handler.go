package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dinu12141/CMMS-MADAMPE/models"
	"github.com/dinu12141/CMMS-MADAMPE/utils"
)

// alertHorizon is how far ahead the upcoming-maintenance poll looks.
const alertHorizon = 3 * 24 * time.Hour

// daysUntilDue reports whether a due date falls inside [now, now+horizon]
// and, if so, the number of whole days remaining (floored, never negative).
func daysUntilDue(nextDue, now time.Time) (int, bool) {
	if nextDue.Before(now) || nextDue.After(now.Add(alertHorizon)) {
		return 0, false
	}
	days := int(nextDue.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

// GetUpcomingAlerts returns PM schedules due within the next three days.
// This is a pull-based query a client polls, not a push mechanism.
func GetUpcomingAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	cursor, err := pmCollection.Find(ctx, bson.M{
		"active": true,
		"nextDue": bson.M{
			"$gte": now,
			"$lte": now.Add(alertHorizon),
		},
	})
	if err != nil {
		log.Printf("PM alerts Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var schedules []models.PreventiveMaintenance
	if err = cursor.All(ctx, &schedules); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode PM schedules")
		return
	}

	alerts := []models.PMAlert{}
	for _, pm := range schedules {
		days, due := daysUntilDue(pm.NextDue.Time, now)
		if !due {
			continue
		}
		priority := pm.Priority
		if priority == "" {
			priority = "medium"
		}
		alerts = append(alerts, models.PMAlert{
			ID:        pm.ID.Hex(),
			PMNumber:  pm.PMNumber,
			Name:      pm.Name,
			AssetID:   pm.AssetID,
			Priority:  priority,
			NextDue:   pm.NextDue,
			DaysUntil: days,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, alerts)
}
