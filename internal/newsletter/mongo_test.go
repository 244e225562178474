package newsletter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email maps to service conflict", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			// FindByEmail: no match
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
		)
		svc := NewService(NewMongoRepo(mt.Coll), nil)
		_, err := svc.Subscribe(context.Background(), SubscribeInput{Name: "Ada", Email: "ada@example.com"})
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := &Subscriber{Name: "Ada", Email: "ada@example.com", IsActive: true}
		require.NoError(t, NewMongoRepo(mt.Coll).Insert(context.Background(), s))
		require.False(t, s.ID.IsZero())
		require.False(t, s.CreatedAt.IsZero())
	})

	mt.Run("stats", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: int32(5)}, {Key: "active", Value: int32(3)}},
		))
		st, err := NewMongoRepo(mt.Coll).Stats(context.Background())
		require.NoError(t, err)
		require.Equal(t, Stats{Total: 5, Active: 3, Inactive: 2}, st)
	})
}
