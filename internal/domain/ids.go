package domain

// SessionID identifies one browser session. It is the value carried by the
// signed session cookie; its format is controlled by this service.
type SessionID string

// QuoteID is the backend's identifier for a priced quote. Opaque to this layer.
type QuoteID string

// DeliveryID is the backend's identifier for a booked delivery. Opaque to this layer.
type DeliveryID string
