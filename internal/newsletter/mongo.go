package newsletter

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

const Collection = "newsletter_subscribers"

// MongoRepo implements Repository on the newsletter_subscribers collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	return database.EnsureIndexes(ctx, m.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "subscriptionDate", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	})
}

func (m *MongoRepo) Insert(ctx context.Context, s *Subscriber) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if _, err := m.col.InsertOne(ctx, s); err != nil {
		return database.MapError(err)
	}
	return nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Subscriber, error) {
	return database.FindOne[Subscriber](ctx, m.col, bson.M{"_id": id})
}

func (m *MongoRepo) FindByEmail(ctx context.Context, email string) (*Subscriber, error) {
	return database.FindOne[Subscriber](ctx, m.col, bson.M{"email": email})
}

func (m *MongoRepo) Reactivate(ctx context.Context, id primitive.ObjectID, name, source string, prefs Preferences, at time.Time) (*Subscriber, error) {
	return database.UpdateByID[Subscriber](ctx, m.col, id, bson.M{
		"isActive":         true,
		"name":             name,
		"source":           source,
		"preferences":      prefs,
		"subscriptionDate": at,
		"updatedAt":        time.Now().UTC(),
	})
}

func (m *MongoRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (m *MongoRepo) SetPreferences(ctx context.Context, id primitive.ObjectID, prefs Preferences) (*Subscriber, error) {
	return database.UpdateByID[Subscriber](ctx, m.col, id, bson.M{"preferences": prefs, "updatedAt": time.Now().UTC()})
}

func (m *MongoRepo) ListActive(ctx context.Context, page pagination.Page) ([]Subscriber, int64, error) {
	return database.FindPage[Subscriber](ctx, m.col,
		bson.M{"isActive": true},
		bson.D{{Key: "subscriptionDate", Value: -1}},
		page.Skip(), int64(page.Limit),
		bson.M{"metadata.ipAddress": 0, "metadata.userAgent": 0},
	)
}

// Stats counts all and active subscribers in one aggregation.
func (m *MongoRepo) Stats(ctx context.Context) (Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "active", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{"$isActive", 1, 0}}}}}},
		}}},
	}
	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return Stats{}, fmt.Errorf("newsletter stats: %w", err)
	}
	defer cur.Close(ctx)
	var st Stats
	if cur.Next(ctx) {
		if err := cur.Decode(&st); err != nil {
			return Stats{}, fmt.Errorf("decode newsletter stats: %w", err)
		}
	}
	if err := cur.Err(); err != nil {
		return Stats{}, err
	}
	st.Inactive = st.Total - st.Active
	return st, nil
}
