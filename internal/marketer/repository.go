package marketer

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

type Repository interface {
	Insert(ctx context.Context, m *Marketer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Marketer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Marketer, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, notes *string) (*Marketer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Marketer, error)
}

type MemoryRepo struct {
	store *database.MemoryStore[Marketer]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: database.NewMemoryStore(func(m Marketer) string { return m.Email })}
}

func (r *MemoryRepo) Insert(_ context.Context, m *Marketer) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	return r.store.Insert(m.ID, *m)
}

func (r *MemoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Marketer, error) {
	m, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemoryRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.store.First(func(m Marketer) bool { return m.Email == email })
	return err == nil, nil
}

func (r *MemoryRepo) List(_ context.Context, f Filter, page pagination.Page) ([]Marketer, int64, error) {
	all := r.store.Find(func(m Marketer) bool { return f.Status == "" || m.Status == f.Status })
	slices.SortStableFunc(all, func(a, b Marketer) int { return b.AppliedDate.Compare(a.AppliedDate) })
	return pagination.Slice(all, page), int64(len(all)), nil
}

func (r *MemoryRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string, notes *string) (*Marketer, error) {
	m, err := r.store.Update(id, func(m *Marketer) error {
		m.Status = status
		if notes != nil {
			m.Notes = *notes
		}
		m.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id primitive.ObjectID) (*Marketer, error) {
	m, err := r.store.Delete(id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
