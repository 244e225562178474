package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindPage counts the documents matching filter and decodes one sorted page of them.
// projection may be nil.
func FindPage[T any](ctx context.Context, col *mongo.Collection, filter interface{}, sort bson.D, skip, limit int64, projection interface{}) ([]T, int64, error) {
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	if projection != nil {
		opts.SetProjection(projection)
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, total, nil
}

// FindAll decodes every document matching filter in sort order.
func FindAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}, sort bson.D) ([]T, error) {
	cur, err := col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}

// FindOne decodes the first document matching filter, or ErrNotFound.
func FindOne[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var v T
	if err := col.FindOne(ctx, filter, opts...).Decode(&v); err != nil {
		return nil, MapError(err)
	}
	return &v, nil
}

// UpdateByID applies set to the document with id and returns the updated document.
func UpdateByID[T any](ctx context.Context, col *mongo.Collection, id primitive.ObjectID, set bson.M) (*T, error) {
	var v T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&v); err != nil {
		return nil, MapError(err)
	}
	return &v, nil
}

// DeleteByID removes the document with id and returns it.
func DeleteByID[T any](ctx context.Context, col *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var v T
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, MapError(err)
	}
	return &v, nil
}
