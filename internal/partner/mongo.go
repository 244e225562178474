package partner

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

const Collection = "partners"

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
		{Keys: bson.D{{Key: "partnershipType", Value: 1}}},
	})
}

func (m *MongoRepo) Insert(ctx context.Context, p *Partner) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := m.col.InsertOne(ctx, p)
	return database.MapError(err)
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Partner, error) {
	return database.FindOne[Partner](ctx, m.col, bson.M{"_id": id})
}

func (m *MongoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	return n > 0, err
}

func (m *MongoRepo) List(ctx context.Context, f Filter, page pagination.Page) ([]Partner, int64, error) {
	return database.FindPage[Partner](ctx, m.col, f.bson(), bson.D{{Key: "appliedDate", Value: -1}},
		page.Skip(), int64(page.Limit), nil)
}

func (m *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*Partner, error) {
	return database.UpdateByID[Partner](ctx, m.col, id, patch.set())
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
