package bookcall

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

type Repository interface {
	Insert(ctx context.Context, c *Call) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Call, error)
	// HasUpcoming reports whether email holds an active call at or after now.
	HasUpcoming(ctx context.Context, email string, now time.Time) (bool, error)
	// HasActiveBetween reports whether any active call falls in [from, to].
	HasActiveBetween(ctx context.Context, from, to time.Time) (bool, error)
	ActiveSlots(ctx context.Context, from, to time.Time) ([]time.Time, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Call, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*Call, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MemoryRepo struct {
	store *database.MemoryStore[Call]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: database.NewMemoryStore[Call](nil)}
}

func (m *MemoryRepo) Insert(_ context.Context, c *Call) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	return m.store.Insert(c.ID, *c)
}

func (m *MemoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Call, error) {
	c, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MemoryRepo) HasUpcoming(_ context.Context, email string, now time.Time) (bool, error) {
	_, err := m.store.First(func(c Call) bool {
		return c.Email == email && c.active() && !c.PreferredDateTime.Before(now)
	})
	return err == nil, nil
}

func (m *MemoryRepo) HasActiveBetween(_ context.Context, from, to time.Time) (bool, error) {
	_, err := m.store.First(func(c Call) bool {
		return c.active() && !c.PreferredDateTime.Before(from) && !c.PreferredDateTime.After(to)
	})
	return err == nil, nil
}

func (m *MemoryRepo) ActiveSlots(_ context.Context, from, to time.Time) ([]time.Time, error) {
	calls := m.store.Find(func(c Call) bool {
		return c.active() && !c.PreferredDateTime.Before(from) && !c.PreferredDateTime.After(to)
	})
	out := make([]time.Time, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.PreferredDateTime)
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out, nil
}

func (m *MemoryRepo) List(_ context.Context, f Filter, page pagination.Page) ([]Call, int64, error) {
	all := m.store.Find(f.match)
	slices.SortStableFunc(all, func(a, b Call) int { return a.PreferredDateTime.Compare(b.PreferredDateTime) })
	return pagination.Slice(all, page), int64(len(all)), nil
}

func (m *MemoryRepo) Update(_ context.Context, id primitive.ObjectID, in UpdateInput) (*Call, error) {
	c, err := m.store.Update(id, func(c *Call) error {
		in.apply(c)
		c.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	_, err := m.store.Delete(id)
	return err
}
