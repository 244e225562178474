package consultancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/apperr"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

// RecentWindow is how long an email must wait before submitting another request.
const RecentWindow = 24 * time.Hour

var (
	ErrRecentRequest   = apperr.Conflict("RECENT_REQUEST", "You have already submitted a consultancy request in the last 24 hours. We will get back to you soon!")
	ErrNotFound        = apperr.NotFound("Consultancy request not found")
	ErrInvalidStatus   = apperr.Invalid("INVALID_STATUS", "Invalid status value")
	ErrInvalidPriority = apperr.Invalid("INVALID_PRIORITY", "Invalid priority value")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Request, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	recent, err := s.repo.SubmittedSince(ctx, in.Email, now.Add(-RecentWindow))
	if err != nil {
		return nil, fmt.Errorf("check recent requests: %w", err)
	}
	if recent {
		return nil, ErrRecentRequest
	}
	r := &Request{
		FullName:        in.FullName,
		Email:           in.Email,
		PhoneNumber:     in.PhoneNumber,
		ServiceInterest: in.ServiceInterest,
		Message:         in.Message,
		Status:          StatusPending,
		SubmittedDate:   now,
		Priority:        models.PriorityMedium,
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		return nil, fmt.Errorf("insert consultancy request: %w", err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, f Filter, page pagination.Page) ([]Request, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list consultancy requests: %w", err)
	}
	return items, page.Meta(total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Request, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	r, err := s.repo.FindByID(ctx, oid)
	return r, mapNotFound(err)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Request, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil && !models.OneOf(*in.Status, Statuses) {
		return nil, ErrInvalidStatus
	}
	if in.Priority != nil && !models.OneOf(*in.Priority, models.Priorities) {
		return nil, ErrInvalidPriority
	}
	r, err := s.repo.Update(ctx, oid, in)
	return r, mapNotFound(err)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}
	return mapNotFound(s.repo.Delete(ctx, oid))
}

func mapNotFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
