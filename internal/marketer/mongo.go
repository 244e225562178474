package marketer

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

const Collection = "marketers"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	return database.EnsureIndexes(ctx, r.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "appliedDate", Value: -1}}},
	})
}

func (r *MongoRepo) Insert(ctx context.Context, m *Marketer) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	_, err := r.col.InsertOne(ctx, m)
	return database.MapError(err)
}

func (r *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Marketer, error) {
	return database.FindOne[Marketer](ctx, r.col, bson.M{"_id": id})
}

func (r *MongoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *MongoRepo) List(ctx context.Context, f Filter, page pagination.Page) ([]Marketer, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return database.FindPage[Marketer](ctx, r.col, filter, bson.D{{Key: "appliedDate", Value: -1}},
		page.Skip(), int64(page.Limit), bson.M{"resume.filename": 0})
}

func (r *MongoRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, notes *string) (*Marketer, error) {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if notes != nil {
		set["notes"] = *notes
	}
	return database.UpdateByID[Marketer](ctx, r.col, id, set)
}

func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (*Marketer, error) {
	return database.DeleteByID[Marketer](ctx, r.col, id)
}
