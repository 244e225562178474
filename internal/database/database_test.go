package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type rec struct {
	ID    primitive.ObjectID `bson:"_id"`
	Email string             `bson:"email"`
	N     int                `bson:"n"`
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(func(r rec) string { return r.Email })

	a := rec{ID: primitive.NewObjectID(), Email: "a@x.io", N: 1}
	b := rec{ID: primitive.NewObjectID(), Email: "b@x.io", N: 2}
	require.NoError(t, s.Insert(a.ID, a))
	require.NoError(t, s.Insert(b.ID, b))
	require.ErrorIs(t, s.Insert(primitive.NewObjectID(), rec{Email: "a@x.io"}), ErrDuplicate)

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.N)

	updated, err := s.Update(a.ID, func(r *rec) error { r.N = 10; return nil })
	require.NoError(t, err)
	require.Equal(t, 10, updated.N)

	boom := errors.New("boom")
	_, err = s.Update(a.ID, func(r *rec) error { r.N = 99; return boom })
	require.ErrorIs(t, err, boom)
	got, _ = s.Get(a.ID)
	require.Equal(t, 10, got.N, "failed update must not persist")

	require.Len(t, s.Find(nil), 2)
	require.Len(t, s.Find(func(r rec) bool { return r.N > 5 }), 1)

	first, err := s.First(func(r rec) bool { return r.Email == "b@x.io" })
	require.NoError(t, err)
	require.Equal(t, b.ID, first.ID)

	_, err = s.Delete(a.ID)
	require.NoError(t, err)
	_, err = s.Get(a.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Delete(a.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.Len(t, s.Find(nil), 1)
}

func TestParseID(t *testing.T) {
	_, err := ParseID("not-an-id")
	require.ErrorIs(t, err, ErrInvalidID)
	oid := primitive.NewObjectID()
	got, err := ParseID(oid.Hex())
	require.NoError(t, err)
	require.Equal(t, oid, got)
}

func TestMongoHelpers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find page", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@x.io"}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "b@x.io"}},
			),
		)
		items, total, err := FindPage[rec](context.Background(), mt.Coll, bson.M{}, bson.D{{Key: "n", Value: -1}}, 0, 2, nil)
		require.NoError(t, err)
		require.Equal(t, int64(3), total)
		require.Len(t, items, 2)
		require.Equal(t, "b@x.io", items[1].Email)
	})

	mt.Run("find one not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := FindOne[rec](context.Background(), mt.Coll, bson.M{"email": "nobody@x.io"})
		require.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))
		_, err := mt.Coll.InsertOne(context.Background(), rec{ID: primitive.NewObjectID(), Email: "a@x.io"})
		require.ErrorIs(t, MapError(err), ErrDuplicate)
	})
}
