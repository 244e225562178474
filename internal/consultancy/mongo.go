package consultancy

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

const Collection = "consultancies"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	return database.EnsureIndexes(ctx, m.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "submittedDate", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
}

func (m *MongoRepo) Insert(ctx context.Context, r *Request) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	_, err := m.col.InsertOne(ctx, r)
	return database.MapError(err)
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Request, error) {
	return database.FindOne[Request](ctx, m.col, bson.M{"_id": id})
}

func (m *MongoRepo) SubmittedSince(ctx context.Context, email string, since time.Time) (bool, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{"email": email, "submittedDate": bson.M{"$gte": since}}, options.Count().SetLimit(1))
	return n > 0, err
}

func (m *MongoRepo) List(ctx context.Context, f Filter, page pagination.Page) ([]Request, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return database.FindPage[Request](ctx, m.col, filter, bson.D{{Key: "submittedDate", Value: -1}},
		page.Skip(), int64(page.Limit), nil)
}

func (m *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*Request, error) {
	return database.UpdateByID[Request](ctx, m.col, id, in.set())
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := database.DeleteByID[Request](ctx, m.col, id)
	return err
}
