package chatRepo

import (
	"context"
	"fmt"
	"time"

	"laohotel/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 5 * time.Second

// MongoChatRepo implements ChatRepository on a "chat_history" collection.
type MongoChatRepo struct {
	coll *mongo.Collection
}

func NewMongoChatRepo(db *mongo.Database) ChatRepository {
	r := &MongoChatRepo{coll: db.Collection("chat_history")}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return r
}

func (r *MongoChatRepo) Append(ctx context.Context, sessionID, role, content string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	msg := models.ChatMessage{
		MessageID: "M-" + uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return messages, nil
}

func (r *MongoChatRepo) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	return r.find(ctx, bson.M{"session_id": sessionID}, bson.D{{Key: "timestamp", Value: 1}})
}

func (r *MongoChatRepo) AllHistory(ctx context.Context) (map[string][]models.HistoryEntry, error) {
	messages, err := r.find(ctx, bson.M{}, bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}})
	if err != nil {
		return nil, err
	}
	sessions := map[string][]models.HistoryEntry{}
	for _, m := range messages {
		sessions[m.SessionID] = append(sessions[m.SessionID], m.Entry())
	}
	return sessions, nil
}

// FirstUserMessages groups user messages by session and keeps the earliest of each.
func (r *MongoChatRepo) FirstUserMessages(ctx context.Context) ([]models.FlatHistoryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"role": models.RoleUser}}},
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$session_id",
			"first": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "first.timestamp", Value: -1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate first messages: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		First models.ChatMessage `bson:"first"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode first messages: %w", err)
	}
	entries := make([]models.FlatHistoryEntry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, models.FlatHistoryEntry{SessionID: g.First.SessionID, Content: g.First.Entry()})
	}
	return newestFirst(entries), nil
}
