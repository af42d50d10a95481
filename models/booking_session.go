package models

import "time"

// ConversationState is the booking step a session is in.
type ConversationState int

const (
	StateNormal ConversationState = iota
	StateAwaitingRoomChoice
	StateAwaitingDates
	StateAwaitingBookingConfirmation
)

func (s ConversationState) String() string {
	switch s {
	case StateNormal:
		return "NORMAL"
	case StateAwaitingRoomChoice:
		return "AWAITING_ROOM_CHOICE"
	case StateAwaitingDates:
		return "AWAITING_DATES"
	case StateAwaitingBookingConfirmation:
		return "AWAITING_BOOKING_CONFIRMATION"
	default:
		return "UNKNOWN"
	}
}

// BookingDraft is the partially filled booking carried between turns.
type BookingDraft struct {
	Room      string    `json:"room,omitempty"`
	StartDate time.Time `json:"startDate,omitempty"`
	EndDate   time.Time `json:"endDate,omitempty"`
}

// HasDates reports whether both dates are filled in.
func (d BookingDraft) HasDates() bool {
	return !d.StartDate.IsZero() && !d.EndDate.IsZero()
}
