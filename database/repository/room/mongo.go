package roomRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laohotel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 5 * time.Second

// MongoRoomRepo implements RoomRepository on a "rooms" collection.
type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new instance of MongoRoomRepo.
func NewMongoRoomRepo(db *mongo.Database) RoomRepository {
	return &MongoRoomRepo{coll: db.Collection("rooms")}
}

func (r *MongoRoomRepo) ensureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "roomNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "roomNumber", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create room indexes: %w", err)
	}
	return nil
}

func (r *MongoRoomRepo) Seed(ctx context.Context, roomNumbers []string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := r.ensureIndexes(ctx); err != nil {
		return err
	}
	for _, number := range roomNumbers {
		filter := bson.M{"roomNumber": number}
		update := bson.M{"$setOnInsert": bson.M{
			"roomId":     newRoomID(),
			"roomNumber": number,
			"status":     models.RoomAvailable,
		}}
		if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed room %s: %w", number, err)
		}
	}
	return nil
}

func (r *MongoRoomRepo) find(ctx context.Context, filter bson.M) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "roomNumber", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}

func (r *MongoRoomRepo) ListAvailable(ctx context.Context) ([]string, error) {
	rooms, err := r.find(ctx, bson.M{"status": models.RoomAvailable})
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(rooms))
	for _, room := range rooms {
		numbers = append(numbers, room.RoomNumber)
	}
	return numbers, nil
}

func (r *MongoRoomRepo) ListAll(ctx context.Context) ([]models.Room, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRoomRepo) Get(ctx context.Context, roomNumber string) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var room models.Room
	err := r.coll.FindOne(ctx, bson.M{"roomNumber": roomNumber}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching room %s: %w", roomNumber, err)
	}
	return &room, nil
}

// BookIfAvailable filters on the Available status so a concurrent booking leaves nothing to match.
func (r *MongoRoomRepo) BookIfAvailable(ctx context.Context, roomNumber string, start, end time.Time, note string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	filter := bson.M{"roomNumber": roomNumber, "status": models.RoomAvailable}
	update := bson.M{"$set": bson.M{
		"status":           models.RoomBooked,
		"reserveStartDate": start.Format(DateLayout),
		"reserveEndDate":   end.Format(DateLayout),
		"note":             note,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("book room %s: %w", roomNumber, err)
	}
	return res.MatchedCount > 0, nil
}
