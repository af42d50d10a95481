package chatRepo

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

func newMockRepo(mt *mtest.T) ChatRepository {
	mt.AddMockResponses(mtest.CreateSuccessResponse())
	repo := NewMongoChatRepo(mt.DB)
	mt.ClearEvents()
	return repo
}

func chatDoc(sessionID, role, content string, at time.Time) bson.D {
	return bson.D{
		{Key: "message_id", Value: "M-" + sessionID + content},
		{Key: "session_id", Value: sessionID},
		{Key: "role", Value: role},
		{Key: "content", Value: content},
		{Key: "timestamp", Value: at},
	}
}

func TestMongoFirstUserMessages(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	base := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	mt.Run("newest session first", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		ns := mt.DB.Name() + ".chat_history"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "old"}, {Key: "first", Value: chatDoc("old", models.RoleUser, "first old", base)}},
			bson.D{{Key: "_id", Value: "new"}, {Key: "first", Value: chatDoc("new", models.RoleUser, "first new", base.Add(time.Hour))}},
		))

		entries, err := repo.FirstUserMessages(ctx)
		require.NoError(mt, err)
		require.Len(mt, entries, 2)
		assert.Equal(mt, "new", entries[0].SessionID)
		assert.Equal(mt, "first new", entries[0].Content.Content)
		assert.Equal(mt, models.RoleUser, entries[0].Content.Role)
		assert.Equal(mt, "old", entries[1].SessionID)
		assert.True(mt, entries[1].Content.Timestamp.Equal(base))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)
		match := started.Command.Lookup("pipeline", "0", "$match").Document()
		assert.Equal(mt, models.RoleUser, match.Lookup("role").StringValue())
	})

	mt.Run("no user messages", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".chat_history", mtest.FirstBatch))

		entries, err := repo.FirstUserMessages(ctx)
		require.NoError(mt, err)
		assert.Empty(mt, entries)
	})

	mt.Run("aggregate failure", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad pipeline",
		}))

		_, err := repo.FirstUserMessages(ctx)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "aggregate first messages")
	})
}

func TestMongoHistory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	base := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	mt.Run("filters by session", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".chat_history", mtest.FirstBatch,
			chatDoc("s1", models.RoleUser, "hello", base),
			chatDoc("s1", models.RoleAssistant, "hi", base.Add(time.Second)),
		))

		messages, err := repo.History(ctx, "s1")
		require.NoError(mt, err)
		require.Len(mt, messages, 2)
		assert.Equal(mt, "hello", messages[0].Content)
		assert.Equal(mt, models.RoleAssistant, messages[1].Role)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, "s1", started.Command.Lookup("filter", "session_id").StringValue())
	})
}
