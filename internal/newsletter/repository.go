package newsletter

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
)

// Repository persists newsletter subscribers.
type Repository interface {
	Insert(ctx context.Context, s *Subscriber) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Subscriber, error)
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	Reactivate(ctx context.Context, id primitive.ObjectID, name, source string, prefs Preferences, at time.Time) (*Subscriber, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	SetPreferences(ctx context.Context, id primitive.ObjectID, prefs Preferences) (*Subscriber, error)
	ListActive(ctx context.Context, page pagination.Page) ([]Subscriber, int64, error)
	Stats(ctx context.Context) (Stats, error)
}

// MemoryRepo is the in-process Repository used in tests and when no MongoDB URI is set.
type MemoryRepo struct {
	store *database.MemoryStore[Subscriber]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: database.NewMemoryStore(func(s Subscriber) string { return s.Email })}
}

func (m *MemoryRepo) Insert(_ context.Context, s *Subscriber) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	return m.store.Insert(s.ID, *s)
}

func (m *MemoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Subscriber, error) {
	s, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryRepo) FindByEmail(_ context.Context, email string) (*Subscriber, error) {
	s, err := m.store.First(func(s Subscriber) bool { return s.Email == email })
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryRepo) Reactivate(_ context.Context, id primitive.ObjectID, name, source string, prefs Preferences, at time.Time) (*Subscriber, error) {
	s, err := m.store.Update(id, func(s *Subscriber) error {
		s.IsActive = true
		s.Name = name
		s.Source = source
		s.Preferences = prefs
		s.SubscriptionDate = at
		s.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	_, err := m.store.Update(id, func(s *Subscriber) error {
		s.IsActive = false
		s.UpdatedAt = time.Now().UTC()
		return nil
	})
	return err
}

func (m *MemoryRepo) SetPreferences(_ context.Context, id primitive.ObjectID, prefs Preferences) (*Subscriber, error) {
	s, err := m.store.Update(id, func(s *Subscriber) error {
		s.Preferences = prefs
		s.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryRepo) ListActive(_ context.Context, page pagination.Page) ([]Subscriber, int64, error) {
	active := m.store.Find(func(s Subscriber) bool { return s.IsActive })
	slices.SortStableFunc(active, func(a, b Subscriber) int {
		return b.SubscriptionDate.Compare(a.SubscriptionDate)
	})
	out := pagination.Slice(active, page)
	for i := range out {
		out[i] = out[i].Redacted()
	}
	return out, int64(len(active)), nil
}

func (m *MemoryRepo) Stats(_ context.Context) (Stats, error) {
	var st Stats
	for _, s := range m.store.Find(nil) {
		st.Total++
		if s.IsActive {
			st.Active++
		}
	}
	st.Inactive = st.Total - st.Active
	return st, nil
}
