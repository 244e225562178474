package marketer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/apperr"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/resume"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/storage"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

var (
	ErrEmailExists    = apperr.Conflict("DUPLICATE_EMAIL", "Marketer with this email already exists")
	ErrNotFound       = apperr.NotFound("Marketer application not found")
	ErrNoResume       = apperr.NotFound("No resume stored for this application")
	ErrResumeRequired = apperr.Invalid("RESUME_REQUIRED", "Resume file is required")
	ErrResumeTooLarge = apperr.Invalid("INVALID_RESUME", "File too large. Maximum size is 5MB.")
	ErrResumeType     = apperr.Invalid("INVALID_RESUME", "Only PDF, DOC, and DOCX files are allowed")
	ErrInvalidStatus  = apperr.Invalid("INVALID_STATUS", "Invalid status value")
)

type ResumeStore interface {
	SaveFile(ctx context.Context, fh *multipart.FileHeader) (*models.Resume, error)
	Open(ctx context.Context, r *models.Resume) (io.ReadCloser, error)
	Remove(ctx context.Context, r *models.Resume)
}

type Service struct {
	repo    Repository
	resumes ResumeStore
}

func NewService(repo Repository, resumes ResumeStore) *Service {
	return &Service{repo: repo, resumes: resumes}
}

func (s *Service) Create(ctx context.Context, in CreateInput, file *multipart.FileHeader) (*Marketer, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup marketer: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}
	if file == nil && in.ResumeGoogleDriveURL == "" {
		return nil, ErrResumeRequired
	}

	var stored *models.Resume
	if file != nil {
		if stored, err = s.resumes.SaveFile(ctx, file); err != nil {
			switch {
			case errors.Is(err, resume.ErrTooLarge):
				return nil, ErrResumeTooLarge
			case errors.Is(err, resume.ErrUnsupportedType):
				return nil, ErrResumeType
			case errors.Is(err, resume.ErrMissing):
				return nil, ErrResumeRequired
			}
			return nil, fmt.Errorf("store resume: %w", err)
		}
	}

	m := &Marketer{
		Name:                 in.Name,
		Email:                in.Email,
		ContactNumber:        in.ContactNumber,
		PastWorks:            in.PastWorks,
		LinkedinURL:          in.LinkedinURL,
		PortfolioWebsite:     in.PortfolioWebsite,
		Resume:               stored,
		ResumeGoogleDriveURL: in.ResumeGoogleDriveURL,
		Status:               models.StatusPending,
		AppliedDate:          time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		s.resumes.Remove(ctx, stored)
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("insert marketer: %w", err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, f Filter, page pagination.Page) ([]Marketer, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list marketers: %w", err)
	}
	return items, page.Meta(total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Marketer, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *Service) UpdateStatus(ctx context.Context, id string, in StatusInput) (*Marketer, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	if !models.OneOf(in.Status, models.ApplicationStatuses) {
		return nil, ErrInvalidStatus
	}
	m, err := s.repo.UpdateStatus(ctx, oid, in.Status, in.Notes)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *Service) OpenResume(ctx context.Context, id string) (io.ReadCloser, *models.Resume, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if m.Resume == nil {
		return nil, nil, ErrNoResume
	}
	rc, err := s.resumes.Open(ctx, m.Resume)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrNoResume
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open resume: %w", err)
	}
	return rc, m.Resume, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}
	m, err := s.repo.Delete(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.resumes.Remove(ctx, m.Resume)
	return nil
}
