package agents

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
)

// Lookup finds candidate handover agents for a route. It reads through
// an AgentStore and turns raw rows into display-ready Agent projections.
type Lookup struct {
	store store.AgentStore
	// now is swappable in tests, "today's hours" depends on the weekday
	now func() time.Time
}

func NewLookup(agentStore store.AgentStore) *Lookup {
	return &Lookup{store: agentStore, now: time.Now}
}

// Query narrows the agent search. Method is required, the rest optional.
type Query struct {
	Region   string
	CityTown string
	Method   models.HandoverMethod
	// Near, when set, is used to annotate each agent with a distance
	From *models.GPSPoint
}

// FetchNearbyAgents returns active agents that can serve the requested
// handover method, optionally narrowed by region (exact) and city/town
// (substring, case-insensitive).
//
// A backend failure degrades to an empty list: the caller treats "no
// agents" and "lookup failed" the same way, the user can still retry or
// contact an agent manually. The underlying error is logged.
func (l *Lookup) FetchNearbyAgents(ctx context.Context, q Query) []models.Agent {
	filter := models.AgentFilter{
		Region:   q.Region,
		CityTown: q.CityTown,
		IsActive: true,
	}
	if q.Method == models.HandoverPickup {
		filter.CanPickup = true
	} else {
		filter.CanDropoff = true
	}

	records, err := l.store.GetAgents(ctx, filter)
	if err != nil {
		log.Printf("agent lookup failed, returning empty list: %v", err)
		return []models.Agent{}
	}

	agents := make([]models.Agent, 0, len(records))
	for _, rec := range records {
		a := models.Agent{
			ID:          rec.ID,
			Name:        rec.Name,
			AddressText: rec.AddressText,
			Region:      rec.Region,
			CityTown:    rec.CityTown,
			Landmark:    rec.Landmark,
			Hours:       l.formatOperatingHours(rec.OperatingHours),
			CanPickup:   rec.CanPickup,
			CanDropoff:  rec.CanDropoff,
		}
		if km, ok := DistanceKm(q.From, rec.GPS); ok {
			a.DistanceKm = &km
		}
		agents = append(agents, a)
	}
	return agents
}

// formatOperatingHours collapses the weekday map into one human string.
// Missing map or missing today -> "Hours vary". "closed" (any case) ->
// "Closed today". Otherwise "Today: <hours>".
func (l *Lookup) formatOperatingHours(hours map[string]string) string {
	if len(hours) == 0 {
		return "Hours vary"
	}
	today := strings.ToLower(l.now().Weekday().String())
	todayHours, ok := hours[today]
	if !ok || todayHours == "" {
		return "Hours vary"
	}
	if strings.EqualFold(todayHours, "closed") {
		return "Closed today"
	}
	return "Today: " + todayHours
}

const earthRadiusKm = 6371

// DistanceKm computes the great-circle (haversine) distance between two
// points, rounded to one decimal. ok is false when either point is
// missing, the UI simply hides the distance in that case.
func DistanceKm(from, to *models.GPSPoint) (float64, bool) {
	if from == nil || to == nil {
		return 0, false
	}
	dLat := deg2rad(to.Latitude - from.Latitude)
	dLon := deg2rad(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(from.Latitude))*math.Cos(deg2rad(to.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10, true
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
