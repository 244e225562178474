package developer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))
		err := NewMongoRepo(mt.Coll).Insert(context.Background(), &Developer{Email: "a@example.com"})
		require.ErrorIs(t, err, database.ErrDuplicate)
	})

	mt.Run("list", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(11)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@example.com"}, {Key: "status", Value: "pending"}},
			),
		)
		items, total, err := NewMongoRepo(mt.Coll).List(context.Background(), Filter{Status: "pending"}, pagination.Page{Page: 2, Limit: 10})
		require.NoError(t, err)
		require.Equal(t, int64(11), total)
		require.Len(t, items, 1)
	})

	mt.Run("update status not found", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		_, err := NewMongoRepo(mt.Coll).UpdateStatus(context.Background(), primitive.NewObjectID(), "approved", nil)
		require.ErrorIs(t, err, database.ErrNotFound)
	})
}
