package bookcall

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

const Collection = "bookcalls"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	return database.EnsureIndexes(ctx, m.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "preferredDateTime", Value: 1}}},
		{Keys: bson.D{{Key: "submittedDate", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
}

func (m *MongoRepo) Insert(ctx context.Context, c *Call) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := m.col.InsertOne(ctx, c)
	return database.MapError(err)
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Call, error) {
	return database.FindOne[Call](ctx, m.col, bson.M{"_id": id})
}

func activeStatusFilter() bson.M {
	return bson.M{"$in": activeStatuses}
}

func (m *MongoRepo) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := m.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func (m *MongoRepo) HasUpcoming(ctx context.Context, email string, now time.Time) (bool, error) {
	return m.exists(ctx, bson.M{
		"email":             email,
		"status":            activeStatusFilter(),
		"preferredDateTime": bson.M{"$gte": now},
	})
}

func (m *MongoRepo) HasActiveBetween(ctx context.Context, from, to time.Time) (bool, error) {
	return m.exists(ctx, bson.M{
		"status":            activeStatusFilter(),
		"preferredDateTime": bson.M{"$gte": from, "$lte": to},
	})
}

func (m *MongoRepo) ActiveSlots(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	calls, err := database.FindAll[Call](ctx, m.col, bson.M{
		"status":            activeStatusFilter(),
		"preferredDateTime": bson.M{"$gte": from, "$lte": to},
	}, bson.D{{Key: "preferredDateTime", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.PreferredDateTime.UTC())
	}
	return out, nil
}

func (m *MongoRepo) List(ctx context.Context, f Filter, page pagination.Page) ([]Call, int64, error) {
	return database.FindPage[Call](ctx, m.col, f.bson(), bson.D{{Key: "preferredDateTime", Value: 1}},
		page.Skip(), int64(page.Limit), nil)
}

func (m *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*Call, error) {
	return database.UpdateByID[Call](ctx, m.col, id, in.set())
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := database.DeleteByID[Call](ctx, m.col, id)
	return err
}
