package consultancy

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

type Repository interface {
	Insert(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Request, error)
	// SubmittedSince reports whether email has a request submitted at or after since.
	SubmittedSince(ctx context.Context, email string, since time.Time) (bool, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Request, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*Request, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MemoryRepo struct {
	store *database.MemoryStore[Request]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: database.NewMemoryStore[Request](nil)}
}

func (m *MemoryRepo) Insert(_ context.Context, r *Request) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	return m.store.Insert(r.ID, *r)
}

func (m *MemoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Request, error) {
	r, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (m *MemoryRepo) SubmittedSince(_ context.Context, email string, since time.Time) (bool, error) {
	_, err := m.store.First(func(r Request) bool { return r.Email == email && !r.SubmittedDate.Before(since) })
	return err == nil, nil
}

func (m *MemoryRepo) List(_ context.Context, f Filter, page pagination.Page) ([]Request, int64, error) {
	all := m.store.Find(func(r Request) bool { return f.Status == "" || r.Status == f.Status })
	slices.SortStableFunc(all, func(a, b Request) int { return b.SubmittedDate.Compare(a.SubmittedDate) })
	return pagination.Slice(all, page), int64(len(all)), nil
}

func (m *MemoryRepo) Update(_ context.Context, id primitive.ObjectID, in UpdateInput) (*Request, error) {
	r, err := m.store.Update(id, func(r *Request) error {
		in.apply(r)
		r.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	_, err := m.store.Delete(id)
	return err
}
