package roomRepo

import (
	"context"
	"errors"
	"time"

	"laohotel/models"
)

// DateLayout is how reservation dates are stored.
const DateLayout = "2006-01-02"

var ErrRoomNotFound = errors.New("room not found")

// RoomRepository is the room inventory. BookIfAvailable is the only mutation and must be a
// single conditional write in the backing store.
type RoomRepository interface {
	Seed(ctx context.Context, roomNumbers []string) error
	ListAvailable(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context) ([]models.Room, error)
	// Get returns ErrRoomNotFound for unknown room numbers.
	Get(ctx context.Context, roomNumber string) (*models.Room, error)
	// BookIfAvailable flips the room to Booked and reports false when it was no longer Available.
	BookIfAvailable(ctx context.Context, roomNumber string, start, end time.Time, note string) (bool, error)
}
