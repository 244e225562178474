package developer

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

// Developer is a developer-track application.
type Developer struct {
	ID                   primitive.ObjectID `bson:"_id" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	ContactNumber        string             `bson:"contactNumber" json:"contactNumber"`
	GithubURL            string             `bson:"githubUrl" json:"githubUrl"`
	LiveProjects         string             `bson:"liveProjects" json:"liveProjects"`
	TechStack            string             `bson:"techStack" json:"techStack"`
	LinkedinURL          string             `bson:"linkedinUrl" json:"linkedinUrl"`
	PortfolioWebsite     string             `bson:"portfolioWebsite" json:"portfolioWebsite"`
	Resume               *models.Resume     `bson:"resume,omitempty" json:"resume,omitempty"`
	ResumeGoogleDriveURL string             `bson:"resumeGoogleDriveUrl,omitempty" json:"resumeGoogleDriveUrl,omitempty"`
	Status               string             `bson:"status" json:"status"`
	AppliedDate          time.Time          `bson:"appliedDate" json:"appliedDate"`
	Notes                string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (d *Developer) Summary() models.ApplicationSummary {
	return models.ApplicationSummary{ID: d.ID.Hex(), Name: d.Name, Email: d.Email, Status: d.Status, AppliedDate: d.AppliedDate}
}

// CreateInput is bound from JSON or multipart form fields.
type CreateInput struct {
	Name                 string `json:"name" form:"name" validate:"required,max=100"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	ContactNumber        string `json:"contactNumber" form:"contactNumber" validate:"required,max=20"`
	GithubURL            string `json:"githubUrl" form:"githubUrl" validate:"required,github"`
	LiveProjects         string `json:"liveProjects" form:"liveProjects" validate:"required"`
	TechStack            string `json:"techStack" form:"techStack" validate:"required"`
	LinkedinURL          string `json:"linkedinUrl" form:"linkedinUrl" validate:"required,linkedin"`
	PortfolioWebsite     string `json:"portfolioWebsite" form:"portfolioWebsite" validate:"required,website"`
	ResumeGoogleDriveURL string `json:"resumeGoogleDriveUrl" form:"resumeGoogleDriveUrl" validate:"omitempty,gdrive"`
}

func (in *CreateInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = validation.NormalizeEmail(in.Email)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.GithubURL = strings.TrimSpace(in.GithubURL)
	in.LiveProjects = strings.TrimSpace(in.LiveProjects)
	in.TechStack = strings.TrimSpace(in.TechStack)
	in.LinkedinURL = strings.TrimSpace(in.LinkedinURL)
	in.PortfolioWebsite = strings.TrimSpace(in.PortfolioWebsite)
	in.ResumeGoogleDriveURL = strings.TrimSpace(in.ResumeGoogleDriveURL)
}

type StatusInput struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// Filter narrows List; empty fields match everything.
type Filter struct {
	Status string
}
