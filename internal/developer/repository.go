package developer

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

type Repository interface {
	Insert(ctx context.Context, d *Developer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Developer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Developer, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, notes *string) (*Developer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Developer, error)
}

type MemoryRepo struct {
	store *database.MemoryStore[Developer]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: database.NewMemoryStore(func(d Developer) string { return d.Email })}
}

func (m *MemoryRepo) Insert(_ context.Context, d *Developer) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	return m.store.Insert(d.ID, *d)
}

func (m *MemoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Developer, error) {
	d, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *MemoryRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.store.First(func(d Developer) bool { return d.Email == email })
	return err == nil, nil
}

func (m *MemoryRepo) List(_ context.Context, f Filter, page pagination.Page) ([]Developer, int64, error) {
	all := m.store.Find(func(d Developer) bool { return f.Status == "" || d.Status == f.Status })
	slices.SortStableFunc(all, func(a, b Developer) int { return b.AppliedDate.Compare(a.AppliedDate) })
	return pagination.Slice(all, page), int64(len(all)), nil
}

func (m *MemoryRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string, notes *string) (*Developer, error) {
	d, err := m.store.Update(id, func(d *Developer) error {
		d.Status = status
		if notes != nil {
			d.Notes = *notes
		}
		d.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id primitive.ObjectID) (*Developer, error) {
	d, err := m.store.Delete(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
