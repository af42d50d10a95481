package models

// RoomStatus values as stored in the inventory.
const (
	RoomAvailable = "Available"
	RoomBooked    = "Booked"
)

// Room is one bookable hotel room. Reservation fields are set iff Status is RoomBooked.
type Room struct {
	RoomID           string `bson:"roomId" json:"roomId"`
	RoomNumber       string `bson:"roomNumber" json:"roomNumber"`
	Status           string `bson:"status" json:"status"`
	ReserveStartDate string `bson:"reserveStartDate,omitempty" json:"reserveStartDate,omitempty"` // "YYYY-MM-DD"
	ReserveEndDate   string `bson:"reserveEndDate,omitempty" json:"reserveEndDate,omitempty"`     // "YYYY-MM-DD"
	Note             string `bson:"note,omitempty" json:"note,omitempty"`
}

// IsAvailable reports whether the room can still be booked.
func (r Room) IsAvailable() bool {
	return r.Status == RoomAvailable
}
