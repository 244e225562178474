package developer

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

const Collection = "developers"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	return database.EnsureIndexes(ctx, m.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "appliedDate", Value: -1}}},
	})
}

func (m *MongoRepo) Insert(ctx context.Context, d *Developer) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	_, err := m.col.InsertOne(ctx, d)
	return database.MapError(err)
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Developer, error) {
	return database.FindOne[Developer](ctx, m.col, bson.M{"_id": id})
}

func (m *MongoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *MongoRepo) List(ctx context.Context, f Filter, page pagination.Page) ([]Developer, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return database.FindPage[Developer](ctx, m.col, filter, bson.D{{Key: "appliedDate", Value: -1}},
		page.Skip(), int64(page.Limit), bson.M{"resume.filename": 0})
}

func (m *MongoRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, notes *string) (*Developer, error) {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if notes != nil {
		set["notes"] = *notes
	}
	return database.UpdateByID[Developer](ctx, m.col, id, set)
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (*Developer, error) {
	return database.DeleteByID[Developer](ctx, m.col, id)
}
