package model

type EntityType string

const (
	EntityFee       EntityType = "FEE"
	EntityHousehold EntityType = "HOUSEHOLD"
	EntityPayment   EntityType = "PAYMENT"
)

// Notification is produced by the backend only; the frontend polls and
// marks read.
type Notification struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	EntityType EntityType `json:"entityType"`
	EntityID   int64      `json:"entityId"`
	Read       bool       `json:"read"`
	CreatedAt  Date       `json:"createdAt"`
}

// Link returns the in-app path for the entity the notification points at,
// or "" when it references nothing navigable.
func (n Notification) Link() string {
	switch n.EntityType {
	case EntityFee:
		return "/fees"
	case EntityHousehold:
		return "/households"
	case EntityPayment:
		return "/payments"
	default:
		return ""
	}
}
