package partner

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

type Repository interface {
	Insert(ctx context.Context, p *Partner) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Partner, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Partner, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*Partner, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MemoryRepo struct {
	store *database.MemoryStore[Partner]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: database.NewMemoryStore(func(p Partner) string { return p.Email })}
}

func (m *MemoryRepo) Insert(_ context.Context, p *Partner) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	return m.store.Insert(p.ID, *p)
}

func (m *MemoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Partner, error) {
	p, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MemoryRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.store.First(func(p Partner) bool { return p.Email == email })
	return err == nil, nil
}

func (m *MemoryRepo) List(_ context.Context, f Filter, page pagination.Page) ([]Partner, int64, error) {
	all := m.store.Find(f.match)
	slices.SortStableFunc(all, func(a, b Partner) int { return b.AppliedDate.Compare(a.AppliedDate) })
	return pagination.Slice(all, page), int64(len(all)), nil
}

func (m *MemoryRepo) Update(_ context.Context, id primitive.ObjectID, patch Patch) (*Partner, error) {
	p, err := m.store.Update(id, func(p *Partner) error {
		patch.apply(p)
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	_, err := m.store.Delete(id)
	return err
}
