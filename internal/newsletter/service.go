package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/apperr"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/logger"
)

var (
	ErrAlreadySubscribed = apperr.Conflict("ALREADY_SUBSCRIBED", "This email is already subscribed to our newsletter.")
	ErrDuplicateEmail    = apperr.Conflict("DUPLICATE_EMAIL", "This email is already subscribed to our newsletter.")
	ErrNotSubscribed     = apperr.NotFound("Email not found in our newsletter subscribers")
	ErrSubscriberMissing = apperr.NotFound("Subscriber not found")
)

const statsKey = "newsletter"

// StatsCache is satisfied by *cache.JSONCache[Stats].
type StatsCache interface {
	Get(ctx context.Context, key string) (*Stats, error)
	Set(ctx context.Context, key string, v Stats) error
	Invalidate(ctx context.Context, key string) error
}

type Service struct {
	repo  Repository
	cache StatsCache
	now   func() time.Time
}

// NewService wires the newsletter rules over repo. cache may be nil.
func NewService(repo Repository, cache StatsCache) *Service {
	return &Service{repo: repo, cache: cache, now: func() time.Time { return time.Now().UTC() }}
}

// SubscribeResult reports whether an existing inactive subscription was revived.
type SubscribeResult struct {
	Subscriber  *Subscriber
	Reactivated bool
}

func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (*SubscribeResult, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, ErrAlreadySubscribed
		}
		prefs := in.Preferences.Apply(defaultPreferences)
		sub, err := s.repo.Reactivate(ctx, existing.ID, in.Name, in.Source, prefs, s.now())
		if err != nil {
			return nil, fmt.Errorf("reactivate subscriber: %w", err)
		}
		s.invalidate(ctx)
		return &SubscribeResult{Subscriber: sub, Reactivated: true}, nil
	case !errors.Is(err, database.ErrNotFound):
		return nil, fmt.Errorf("lookup subscriber: %w", err)
	}

	sub := &Subscriber{
		Name:             in.Name,
		Email:            in.Email,
		SubscriptionDate: s.now(),
		IsActive:         true,
		Source:           in.Source,
		Preferences:      in.Preferences.Apply(defaultPreferences),
		Metadata:         in.Metadata,
	}
	if err := s.repo.Insert(ctx, sub); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}
	s.invalidate(ctx)
	return &SubscribeResult{Subscriber: sub}, nil
}

func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	sub, err := s.activeByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, sub.ID); err != nil {
		return fmt.Errorf("deactivate subscriber: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// UpdatePreferences merges the given flags into an active subscription.
func (s *Service) UpdatePreferences(ctx context.Context, in PreferencesInput) (*Subscriber, error) {
	sub, err := s.activeByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.SetPreferences(ctx, sub.ID, in.Preferences.Apply(sub.Preferences))
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return updated, nil
}

func (s *Service) activeByEmail(ctx context.Context, email string) (*Subscriber, error) {
	email = validation.NormalizeEmail(email)
	if !validation.Var(email, "required,email") {
		return nil, validation.Errors{"Please provide a valid email address"}
	}
	sub, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) || (err == nil && !sub.IsActive) {
		return nil, ErrNotSubscribed
	}
	if err != nil {
		return nil, fmt.Errorf("lookup subscriber: %w", err)
	}
	return sub, nil
}

// Stats serves the subscription counters, from the cache when one is configured.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, statsKey)
		if err != nil {
			logger.Warnf("newsletter stats cache read: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, statsKey, st); err != nil {
			logger.Warnf("newsletter stats cache write: %v", err)
		}
	}
	return st, nil
}

func (s *Service) ListSubscribers(ctx context.Context, page pagination.Page) ([]Subscriber, pagination.Meta, error) {
	items, total, err := s.repo.ListActive(ctx, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list subscribers: %w", err)
	}
	return items, page.Meta(total), nil
}

func (s *Service) GetSubscriber(ctx context.Context, id string) (*Subscriber, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrSubscriberMissing
	}
	if err != nil {
		return nil, err
	}
	r := sub.Redacted()
	return &r, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, statsKey); err != nil {
		logger.Warnf("newsletter stats cache invalidate: %v", err)
	}
}
