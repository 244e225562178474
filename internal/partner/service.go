package partner

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

var (
	ErrEmailExists     = apperr.Conflict("DUPLICATE_EMAIL", "Partner with this email already exists")
	ErrNotFound        = apperr.NotFound("Partner application not found")
	ErrInvalidStatus   = apperr.Invalid("INVALID_STATUS", "Invalid status value")
	ErrInvalidPartType = apperr.Invalid("INVALID_PARTNERSHIP_TYPE", "Invalid partnership type")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Partner, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup partner: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}
	p := &Partner{
		Name:            in.Name,
		Email:           in.Email,
		ContactNumber:   in.ContactNumber,
		LinkedinURL:     in.LinkedinURL,
		Message:         in.Message,
		Status:          models.StatusPending,
		AppliedDate:     time.Now().UTC(),
		PartnershipType: in.PartnershipType,
	}
	if p.PartnershipType == "" {
		p.PartnershipType = TypeOther
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("insert partner: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f Filter, page pagination.Page) ([]Partner, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list partners: %w", err)
	}
	return items, page.Meta(total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Partner, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, oid)
	return p, mapNotFound(err)
}

// UpdateStatus sets status and notes; a valid partnershipType in the same
// request is applied too, an invalid one is ignored.
func (s *Service) UpdateStatus(ctx context.Context, id string, in StatusInput) (*Partner, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	if !models.OneOf(in.Status, models.ApplicationStatuses) {
		return nil, ErrInvalidStatus
	}
	patch := Patch{Status: &in.Status, Notes: in.Notes}
	if models.OneOf(in.PartnershipType, PartnershipTypes) {
		patch.PartnershipType = &in.PartnershipType
	}
	p, err := s.repo.Update(ctx, oid, patch)
	return p, mapNotFound(err)
}

func (s *Service) UpdatePartnershipType(ctx context.Context, id, partnershipType string) (*Partner, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	if !models.OneOf(partnershipType, PartnershipTypes) {
		return nil, ErrInvalidPartType
	}
	p, err := s.repo.Update(ctx, oid, Patch{PartnershipType: &partnershipType})
	return p, mapNotFound(err)
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
