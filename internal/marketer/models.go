package marketer

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

type Marketer struct {
	ID                   primitive.ObjectID `bson:"_id" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	ContactNumber        string             `bson:"contactNumber" json:"contactNumber"`
	PastWorks            string             `bson:"pastWorks,omitempty" json:"pastWorks,omitempty"`
	LinkedinURL          string             `bson:"linkedinUrl" json:"linkedinUrl"`
	PortfolioWebsite     string             `bson:"portfolioWebsite,omitempty" json:"portfolioWebsite,omitempty"`
	Resume               *models.Resume     `bson:"resume,omitempty" json:"resume,omitempty"`
	ResumeGoogleDriveURL string             `bson:"resumeGoogleDriveUrl,omitempty" json:"resumeGoogleDriveUrl,omitempty"`
	Status               string             `bson:"status" json:"status"`
	AppliedDate          time.Time          `bson:"appliedDate" json:"appliedDate"`
	Notes                string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (m *Marketer) Summary() models.ApplicationSummary {
	return models.ApplicationSummary{ID: m.ID.Hex(), Name: m.Name, Email: m.Email, Status: m.Status, AppliedDate: m.AppliedDate}
}

type CreateInput struct {
	Name                 string `json:"name" form:"name" validate:"required,max=100"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	ContactNumber        string `json:"contactNumber" form:"contactNumber" validate:"required,max=20"`
	PastWorks            string `json:"pastWorks" form:"pastWorks" validate:"max=1000"`
	LinkedinURL          string `json:"linkedinUrl" form:"linkedinUrl" validate:"required,linkedin"`
	PortfolioWebsite     string `json:"portfolioWebsite" form:"portfolioWebsite" validate:"omitempty,website"`
	ResumeGoogleDriveURL string `json:"resumeGoogleDriveUrl" form:"resumeGoogleDriveUrl" validate:"omitempty,gdrive"`
}

func (in *CreateInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = validation.NormalizeEmail(in.Email)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.PastWorks = strings.TrimSpace(in.PastWorks)
	in.LinkedinURL = strings.TrimSpace(in.LinkedinURL)
	in.PortfolioWebsite = strings.TrimSpace(in.PortfolioWebsite)
	in.ResumeGoogleDriveURL = strings.TrimSpace(in.ResumeGoogleDriveURL)
}

type StatusInput struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

type Filter struct {
	Status string
}
