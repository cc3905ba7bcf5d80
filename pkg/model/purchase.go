package model

import (
	"encoding/json"
	"strings"
	"time"
)

// PlacesText is the raw places value submitted with a purchase. It accepts
// both JSON strings and JSON numbers and keeps the text as submitted.
type PlacesText string

func (p *PlacesText) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*p = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PlacesText(s)
		return nil
	}
	*p = PlacesText(raw)
	return nil
}

type PurchaseRequest struct {
	Club        string     `json:"club" validate:"required,notblank"`
	Competition string     `json:"competition" validate:"required,notblank"`
	Places      PlacesText `json:"places" validate:"required"`
}

// Receipt describes a committed purchase.
type Receipt struct {
	ID              string    `json:"id"`
	Club            string    `json:"club"`
	Competition     string    `json:"competition"`
	PlacesBooked    int       `json:"places_booked"`
	PointsSpent     int       `json:"points_spent"`
	PointsRemaining int       `json:"points_remaining"`
	PlacesRemaining int       `json:"places_remaining"`
	BookedAt        time.Time `json:"booked_at"`
}

// PurchaseResult is what the portal returns for a successful purchase.
type PurchaseResult struct {
	Receipt  Receipt  `json:"receipt"`
	Club     Club     `json:"club"`
	Messages []string `json:"messages"`
}

const (
	BookingEventCompleted = "booking.completed"
	BookingEventRejected  = "booking.rejected"
)

// BookingEvent is the payload published for every purchase attempt that
// reached the booking engine.
type BookingEvent struct {
	ReceiptID       string    `json:"receipt_id,omitempty"`
	Club            string    `json:"club"`
	Competition     string    `json:"competition"`
	Places          int       `json:"places"`
	PointsSpent     int       `json:"points_spent"`
	PointsRemaining int       `json:"points_remaining"`
	PlacesRemaining int       `json:"places_remaining"`
	Reason          string    `json:"reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
