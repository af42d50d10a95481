package roomRepo

import (
	"context"
	"testing"
	"time"

	"laohotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoBookIfAvailable(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	start := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	mt.Run("books an available room", func(mt *mtest.T) {
		repo := NewMongoRoomRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		ok, err := repo.BookIfAvailable(ctx, "101", start, end, "guest")
		require.NoError(mt, err)
		assert.True(mt, ok)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		q := started.Command.Lookup("updates", "0", "q")
		assert.Equal(mt, "101", q.Document().Lookup("roomNumber").StringValue())
		assert.Equal(mt, models.RoomAvailable, q.Document().Lookup("status").StringValue())
		set := started.Command.Lookup("updates", "0", "u", "$set").Document()
		assert.Equal(mt, models.RoomBooked, set.Lookup("status").StringValue())
		assert.Equal(mt, "2025-06-11", set.Lookup("reserveStartDate").StringValue())
		assert.Equal(mt, "2025-06-13", set.Lookup("reserveEndDate").StringValue())
	})

	mt.Run("reports a lost race when nothing matches", func(mt *mtest.T) {
		repo := NewMongoRoomRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		ok, err := repo.BookIfAvailable(ctx, "101", start, end, "guest")
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("wraps server errors", func(mt *mtest.T) {
		repo := NewMongoRoomRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Name:    "InterruptedAtShutdown",
			Message: "shutting down",
		}))

		ok, err := repo.BookIfAvailable(ctx, "101", start, end, "guest")
		require.Error(mt, err)
		assert.False(mt, ok)
		assert.Contains(mt, err.Error(), "book room 101")
	})
}

func TestMongoRoomLookups(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("lists available room numbers", func(mt *mtest.T) {
		repo := NewMongoRoomRepo(mt.DB)
		ns := mt.DB.Name() + ".rooms"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "roomNumber", Value: "101"}, {Key: "status", Value: models.RoomAvailable}},
			bson.D{{Key: "roomNumber", Value: "201"}, {Key: "status", Value: models.RoomAvailable}},
		))

		numbers, err := repo.ListAvailable(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, []string{"101", "201"}, numbers)
	})

	mt.Run("missing room is ErrRoomNotFound", func(mt *mtest.T) {
		repo := NewMongoRoomRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".rooms", mtest.FirstBatch))

		room, err := repo.Get(ctx, "999")
		assert.ErrorIs(mt, err, ErrRoomNotFound)
		assert.Nil(mt, room)
	})
}
