package developer

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
	ErrEmailExists    = apperr.Conflict("DUPLICATE_EMAIL", "Developer with this email already exists")
	ErrNotFound       = apperr.NotFound("Developer application not found")
	ErrNoResume       = apperr.NotFound("No resume stored for this application")
	ErrResumeRequired = apperr.Invalid("RESUME_REQUIRED", "Resume file is required")
	ErrResumeTooLarge = apperr.Invalid("INVALID_RESUME", "File too large. Maximum size is 5MB.")
	ErrResumeType     = apperr.Invalid("INVALID_RESUME", "Only PDF, DOC, and DOCX files are allowed")
	ErrInvalidStatus  = apperr.Invalid("INVALID_STATUS", "Invalid status value")
)

// ResumeStore is satisfied by *resume.Manager.
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

// Create validates the application, stores the resume file (if any) and saves
// the record. A stored file is removed again when the record cannot be saved.
func (s *Service) Create(ctx context.Context, in CreateInput, file *multipart.FileHeader) (*Developer, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup developer: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}
	if file == nil && in.ResumeGoogleDriveURL == "" {
		return nil, ErrResumeRequired
	}

	var stored *models.Resume
	if file != nil {
		stored, err = s.resumes.SaveFile(ctx, file)
		if err != nil {
			return nil, resumeError(err)
		}
	}

	d := &Developer{
		Name:                 in.Name,
		Email:                in.Email,
		ContactNumber:        in.ContactNumber,
		GithubURL:            in.GithubURL,
		LiveProjects:         in.LiveProjects,
		TechStack:            in.TechStack,
		LinkedinURL:          in.LinkedinURL,
		PortfolioWebsite:     in.PortfolioWebsite,
		Resume:               stored,
		ResumeGoogleDriveURL: in.ResumeGoogleDriveURL,
		Status:               models.StatusPending,
		AppliedDate:          time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, d); err != nil {
		s.resumes.Remove(ctx, stored)
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("insert developer: %w", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, f Filter, page pagination.Page) ([]Developer, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list developers: %w", err)
	}
	return items, page.Meta(total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Developer, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.FindByID(ctx, oid)
	return d, notFound(err)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, in StatusInput) (*Developer, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	if !models.OneOf(in.Status, models.ApplicationStatuses) {
		return nil, ErrInvalidStatus
	}
	d, err := s.repo.UpdateStatus(ctx, oid, in.Status, in.Notes)
	return d, notFound(err)
}

// OpenResume returns the stored resume body with its metadata.
func (s *Service) OpenResume(ctx context.Context, id string) (io.ReadCloser, *models.Resume, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if d.Resume == nil {
		return nil, nil, ErrNoResume
	}
	rc, err := s.resumes.Open(ctx, d.Resume)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrNoResume
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open resume: %w", err)
	}
	return rc, d.Resume, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}
	d, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return notFound(err)
	}
	s.resumes.Remove(ctx, d.Resume)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func resumeError(err error) error {
	switch {
	case errors.Is(err, resume.ErrTooLarge):
		return ErrResumeTooLarge
	case errors.Is(err, resume.ErrUnsupportedType):
		return ErrResumeType
	case errors.Is(err, resume.ErrMissing):
		return ErrResumeRequired
	}
	return fmt.Errorf("store resume: %w", err)
}
