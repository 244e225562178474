package bookcall

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

// SlotWindow is the minimum spacing between two held calls.
const SlotWindow = 30 * time.Minute

var (
	ErrPastDateTime     = apperr.Invalid("INVALID_DATETIME", "Please select a future date and time for the call")
	ErrBadDateTime      = apperr.Invalid("INVALID_DATETIME", "Please provide a valid preferred date and time")
	ErrAlreadyScheduled = apperr.Conflict("ALREADY_SCHEDULED", "You already have a call scheduled. Please wait for confirmation or contact us to reschedule.")
	ErrSlotUnavailable  = apperr.Conflict("SLOT_UNAVAILABLE", "The requested time slot is not available. Please choose a different time.")
	ErrNotFound         = apperr.NotFound("Book call request not found")
	ErrInvalidStatus    = apperr.Invalid("INVALID_STATUS", "Invalid status value")
	ErrInvalidPriority  = apperr.Invalid("INVALID_PRIORITY", "Invalid priority value")
	ErrInvalidDuration  = apperr.Invalid("INVALID_DURATION", "Call duration cannot be negative")
	ErrInvalidDate      = apperr.Invalid("INVALID_DATE", "Invalid date format")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Create books a call after the future, one-per-email and slot spacing checks.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Call, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	at, ok := parseDateTime(in.PreferredDateTime)
	if !ok {
		return nil, ErrBadDateTime
	}
	now := s.now()
	if !at.After(now) {
		return nil, ErrPastDateTime
	}

	upcoming, err := s.repo.HasUpcoming(ctx, in.Email, now)
	if err != nil {
		return nil, fmt.Errorf("check scheduled calls: %w", err)
	}
	if upcoming {
		return nil, ErrAlreadyScheduled
	}
	taken, err := s.repo.HasActiveBetween(ctx, at.Add(-SlotWindow), at.Add(SlotWindow))
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotUnavailable
	}

	c := &Call{
		FullName:          in.FullName,
		Email:             in.Email,
		PhoneNumber:       in.PhoneNumber,
		PreferredDateTime: at,
		TopicDiscussion:   in.TopicDiscussion,
		AdditionalNotes:   in.AdditionalNotes,
		Status:            StatusPending,
		SubmittedDate:     now,
		Priority:          models.PriorityMedium,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("insert call: %w", err)
	}
	return c, nil
}

// ListFilter builds a Filter from the status and date query values.
func ListFilter(status, date string) (Filter, error) {
	f := Filter{Status: status}
	if date == "" {
		return f, nil
	}
	from, to, ok := ParseDay(date)
	if !ok {
		return Filter{}, ErrInvalidDate
	}
	f.From, f.To = from, to
	return f, nil
}

func (s *Service) List(ctx context.Context, f Filter, page pagination.Page) ([]Call, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list calls: %w", err)
	}
	return items, page.Meta(total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Call, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, oid)
	return c, mapNotFound(err)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Call, error) {
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
	if in.CallDuration != nil && *in.CallDuration < 0 {
		return nil, ErrInvalidDuration
	}
	c, err := s.repo.Update(ctx, oid, in)
	return c, mapNotFound(err)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}
	return mapNotFound(s.repo.Delete(ctx, oid))
}

// Availability returns the held slots for the UTC day named by date.
func (s *Service) Availability(ctx context.Context, date string) (*Availability, error) {
	from, to, ok := ParseDay(date)
	if !ok {
		return nil, ErrInvalidDate
	}
	slots, err := s.repo.ActiveSlots(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load booked slots: %w", err)
	}
	return &Availability{Date: from.Format("2006-01-02"), BookedSlots: slots}, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
