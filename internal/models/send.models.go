package models

import "time"

/*
Core domain types for the send-parcel flow.
Everything the wizard collects step by step lives here, plus the final
Shipment row shape that gets persisted when the user pays.
*/

// ParcelSize is the physical size class the sender picks on step 1.
type ParcelSize string

const (
	SizeSmall  ParcelSize = "small"
	SizeMedium ParcelSize = "medium"
	SizeLarge  ParcelSize = "large"
)

// ParcelDetails holds what the sender told us about the package itself.
// WeightRange is a key into the pricing table (e.g. "1-5kg").
type ParcelDetails struct {
	Size        ParcelSize
	WeightRange string
	Category    string // optional, e.g. "electronics"
}

// Location is one endpoint of a route. Region + CityTown are required,
// landmark and GPS are nice-to-have extras from the UI.
type Location struct {
	Region   string
	CityTown string
	Landmark string
	GPS      *GPSPoint
}

// GPSPoint is a raw coordinate pair, used for distance hints only.
type GPSPoint struct {
	Latitude  float64
	Longitude float64
}

// Route is where the parcel starts and where it should end up.
type Route struct {
	Origin      Location
	Destination Location
}

// Complete reports whether both endpoints carry the required fields.
func (r Route) Complete() bool {
	return r.Origin.Region != "" && r.Origin.CityTown != "" &&
		r.Destination.Region != "" && r.Destination.CityTown != ""
}

// HandoverMethod says how the parcel physically reaches the carrier.
type HandoverMethod string

const (
	HandoverDropoff HandoverMethod = "DROPOFF" // sender brings it to an agent
	HandoverPickup  HandoverMethod = "PICKUP"  // an agent collects it
)

// PickupTiming is when the sender wants the agent to come.
type PickupTiming string

const (
	TimingASAP     PickupTiming = "ASAP"
	TimingToday    PickupTiming = "TODAY"
	TimingSchedule PickupTiming = "SCHEDULE"
)

// PickupDetails is only collected when the method is PICKUP.
type PickupDetails struct {
	Landmark string
	Phone    string
	Timing   PickupTiming
}

// Agent is a read-only projection of an agent row from the backend.
// The client only ever selects one, it never mutates them.
type Agent struct {
	ID          string
	Name        string
	AddressText string
	Region      string
	CityTown    string
	Landmark    string
	Hours       string // already formatted for display, e.g. "Today: 9-17"
	CanPickup   bool
	CanDropoff  bool
	DistanceKm  *float64
}

// Handover bundles the method with its method-specific data.
// Invariant: PickupDetails is set if and only if Method == PICKUP.
// SelectedAgent must be chosen before the shipment can be committed.
type Handover struct {
	Method        HandoverMethod
	PickupDetails *PickupDetails
	SelectedAgent *Agent
}

// Valid checks the pickup-details invariant on the handover itself.
func (h Handover) Valid() bool {
	if h.Method == HandoverPickup {
		return h.PickupDetails != nil
	}
	return h.PickupDetails == nil
}

// SenderInfo is the contact info collected on the sender step.
type SenderInfo struct {
	Name  string
	Phone string
}

// RecipientInfo is the contact info for the receiving party.
type RecipientInfo struct {
	Name     string
	Phone    string
	Landmark string
}

// PaymentInstrument identifies the saved payment method charged at the
// summary step. Absent when payment settles out of band (mobile money
// at the agent counter).
type PaymentInstrument struct {
	CustomerID      string
	PaymentMethodID string
}

// Security holds the artifacts for the physical handover protocol.
// Generated exactly once at commit time, never regenerated after a
// shipment row exists.
type Security struct {
	ShipmentCode string // human-facing code, e.g. "SHP483920"
	SenderPin    string // 6 digits, disclosed to the agent at handover
	TrackingID   string // e.g. "TRK7F3K9Q2M1A"
}

// ShipmentStatus tracks where a shipment is in its lifecycle.
type ShipmentStatus string

const (
	StatusPaidAwaitingHandover ShipmentStatus = "PAID_AWAITING_HANDOVER"
	StatusInTransit            ShipmentStatus = "IN_TRANSIT"
	StatusDelivered            ShipmentStatus = "DELIVERED"
	StatusCancelled            ShipmentStatus = "CANCELLED"
)

// Shipment is the durable record written at commit time.
// It flattens the wizard slices into one row.
type Shipment struct {
	ID              string
	SenderUserID    string
	SenderName      string
	SenderPhone     string
	RecipientName   string
	RecipientPhone  string
	RecipientLandmk string
	Parcel          ParcelDetails
	Route           Route
	Method          HandoverMethod
	PickupDetails   *PickupDetails
	AgentID         string
	Security        Security
	BasePrice       int64
	PickupFee       int64
	TotalPrice      int64
	Status          ShipmentStatus
	CreatedAt       time.Time
}

// ShipmentEventType identifies what happened to a shipment.
type ShipmentEventType string

const (
	EventCreated   ShipmentEventType = "CREATED"
	EventStatus    ShipmentEventType = "STATUS_CHANGED"
	EventHandedOff ShipmentEventType = "HANDED_OFF"
)

// ActorType says who triggered a shipment event.
type ActorType string

const (
	ActorSender ActorType = "SENDER"
	ActorAgent  ActorType = "AGENT"
	ActorSystem ActorType = "SYSTEM"
)

// ShipmentEvent is one append-only audit row linked to a shipment.
type ShipmentEvent struct {
	ID          string
	ShipmentID  string
	Type        ShipmentEventType
	Description string
	ActorType   ActorType
	CreatedAt   time.Time
}

// AgentRecord is the raw agent row as stored in the backend, before the
// lookup layer formats it for display. OperatingHours maps a lowercase
// weekday name ("monday") to an hours string or "closed".
type AgentRecord struct {
	ID             string
	Name           string
	AddressText    string
	Region         string
	CityTown       string
	Landmark       string
	OperatingHours map[string]string
	CanPickup      bool
	CanDropoff     bool
	IsActive       bool
	GPS            *GPSPoint
}

// AgentFilter narrows an agent query. Empty string fields mean no filter.
type AgentFilter struct {
	Region     string
	CityTown   string
	CanPickup  bool
	CanDropoff bool
	IsActive   bool
}

// UserPreferences is the per-user settings row the profile screens edit.
type UserPreferences struct {
	UserID          string
	FavoriteAgentID string
}
