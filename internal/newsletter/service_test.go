package newsletter

import (
	"context"
	"errors"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/cache"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

func boolp(b bool) *bool { return &b }

func TestSubscribe_NewAndDefaults(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)
	res, err := svc.Subscribe(context.Background(), SubscribeInput{
		Name:        "  Ada Lovelace ",
		Email:       " Ada@Example.com",
		Preferences: PreferenceInput{AIIntegration: boolp(false)},
		Metadata:    Metadata{IPAddress: "10.0.0.1", UserAgent: "test"},
	})
	require.NoError(t, err)
	require.False(t, res.Reactivated)
	sub := res.Subscriber
	require.Equal(t, "Ada Lovelace", sub.Name)
	require.Equal(t, "ada@example.com", sub.Email)
	require.Equal(t, SourceBlogPage, sub.Source)
	require.True(t, sub.IsActive)
	require.Equal(t, Preferences{WebDevelopment: true, DigitalMarketing: true, BusinessGrowth: true, AIIntegration: false}, sub.Preferences)
}

func TestSubscribe_Validation(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)
	_, err := svc.Subscribe(context.Background(), SubscribeInput{Name: "A1", Email: "nope", Source: "radio"})
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	require.Contains(t, verrs, "Please provide a valid email address")
	require.Contains(t, verrs, "Invalid source value")
	require.Contains(t, verrs, "Name can only contain letters, spaces, hyphens and apostrophes")
}

func TestSubscribe_DuplicateAndReactivate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), nil)
	first, err := svc.Subscribe(ctx, SubscribeInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = svc.Subscribe(ctx, SubscribeInput{Name: "Ada", Email: "ADA@example.com"})
	require.ErrorIs(t, err, ErrAlreadySubscribed)

	require.NoError(t, svc.Unsubscribe(ctx, "ada@example.com"))
	require.ErrorIs(t, svc.Unsubscribe(ctx, "ada@example.com"), ErrNotSubscribed)

	svc.now = func() time.Time { return first.Subscriber.SubscriptionDate.Add(time.Hour) }
	again, err := svc.Subscribe(ctx, SubscribeInput{Name: "Ada King", Email: "ada@example.com", Source: SourceFooter})
	require.NoError(t, err)
	require.True(t, again.Reactivated)
	require.Equal(t, first.Subscriber.ID, again.Subscriber.ID)
	require.Equal(t, "Ada King", again.Subscriber.Name)
	require.Equal(t, SourceFooter, again.Subscriber.Source)
	require.True(t, again.Subscriber.IsActive)
	require.True(t, again.Subscriber.SubscriptionDate.After(first.Subscriber.SubscriptionDate))
}

func TestUnsubscribe_InvalidEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)
	err := svc.Unsubscribe(context.Background(), "not-an-email")
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
}

func TestUpdatePreferences(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), nil)
	_, err := svc.Subscribe(ctx, SubscribeInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	sub, err := svc.UpdatePreferences(ctx, PreferencesInput{Email: "ada@example.com", Preferences: PreferenceInput{DigitalMarketing: boolp(false)}})
	require.NoError(t, err)
	require.False(t, sub.Preferences.DigitalMarketing)
	require.True(t, sub.Preferences.WebDevelopment)

	_, err = svc.UpdatePreferences(ctx, PreferencesInput{Email: "bob@example.com"})
	require.ErrorIs(t, err, ErrNotSubscribed)
}

func TestListAndGetSubscribers(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), nil)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"Ada", "Bob", "Cid"}
	for i, n := range names {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		_, err := svc.Subscribe(ctx, SubscribeInput{Name: n, Email: n + "@example.com", Metadata: Metadata{IPAddress: "1.2.3.4", UserAgent: "ua", Referrer: "ref"}})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Unsubscribe(ctx, "bob@example.com"))

	items, meta, err := svc.ListSubscribers(ctx, pagination.Page{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, pagination.Meta{Page: 1, Limit: 1, Total: 2, Pages: 2}, meta)
	require.Len(t, items, 1)
	require.Equal(t, "Cid", items[0].Name, "newest first")
	require.Empty(t, items[0].Metadata.IPAddress)
	require.Empty(t, items[0].Metadata.UserAgent)
	require.Equal(t, "ref", items[0].Metadata.Referrer)

	got, err := svc.GetSubscriber(ctx, items[0].ID.Hex())
	require.NoError(t, err)
	require.Empty(t, got.Metadata.IPAddress)

	_, err = svc.GetSubscriber(ctx, "bad")
	require.ErrorIs(t, err, database.ErrInvalidID)
}

func TestStats_CachedAndInvalidated(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), cache.NewJSONCache[Stats](client, "stats:", time.Minute))

	_, err = svc.Subscribe(ctx, SubscribeInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{Total: 1, Active: 1}, st)
	require.True(t, m.Exists("stats:newsletter"))

	require.NoError(t, svc.Unsubscribe(ctx, "ada@example.com"))
	require.False(t, m.Exists("stats:newsletter"), "unsubscribe drops the cached counters")

	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{Total: 1, Active: 0, Inactive: 1}, st)
}
