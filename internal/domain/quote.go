package domain

// VehicleType is the vehicle class a shipment is quoted for.
type VehicleType string

const (
	VehicleBike  VehicleType = "bike"
	VehicleCar   VehicleType = "car"
	VehicleVan   VehicleType = "van"
	VehicleTruck VehicleType = "truck"
)

// VehicleTypes lists all valid vehicle types in display order.
var VehicleTypes = []VehicleType{VehicleBike, VehicleCar, VehicleVan, VehicleTruck}

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleBike, VehicleCar, VehicleVan, VehicleTruck:
		return true
	}
	return false
}

// Urgency selects the delivery speed tier.
type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencyExpress Urgency = "express"
)

// Urgencies lists all valid urgency tiers in display order.
var Urgencies = []Urgency{UrgencyNormal, UrgencyExpress}

func (u Urgency) Valid() bool {
	return u == UrgencyNormal || u == UrgencyExpress
}

// QuoteRequest is the shipment parameter set sent to the pricing endpoint.
// It is constructed fresh per submission and never stored.
type QuoteRequest struct {
	DistanceKM float64
	WeightKG   float64
	Vehicle    VehicleType
	Urgency    Urgency
	// WeightVol is volumetric weight. This layer always submits 0.0; the
	// backend derives the effective value itself.
	WeightVol float64
}

// Quote is a priced estimate produced by the backend. Immutable once
// received; held only in transient flow state, never persisted.
type Quote struct {
	ID       QuoteID
	Price    float64
	Currency string
	// Details is opaque backend payload, carried for display only.
	Details map[string]any
}

// DeliveryBooking is a confirmed delivery created from a quote. All fields
// are opaque display strings from the backend, shown verbatim.
type DeliveryBooking struct {
	ID           DeliveryID
	TrackingCode string
	Status       string
	Message      string
}
