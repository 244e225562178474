package partner

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

const (
	TypeTechnical  = "technical"
	TypeBusiness   = "business"
	TypeInvestment = "investment"
	TypeOther      = "other"
)

var PartnershipTypes = []string{TypeTechnical, TypeBusiness, TypeInvestment, TypeOther}

type Partner struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	ContactNumber   string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	LinkedinURL     string             `bson:"linkedinUrl,omitempty" json:"linkedinUrl,omitempty"`
	Message         string             `bson:"message,omitempty" json:"message,omitempty"`
	Status          string             `bson:"status" json:"status"`
	AppliedDate     time.Time          `bson:"appliedDate" json:"appliedDate"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PartnershipType string             `bson:"partnershipType" json:"partnershipType"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Partner) Summary() models.ApplicationSummary {
	return models.ApplicationSummary{ID: p.ID.Hex(), Name: p.Name, Email: p.Email, Status: p.Status, AppliedDate: p.AppliedDate}
}

type CreateInput struct {
	Name            string `json:"name" form:"name" validate:"required,max=100"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	ContactNumber   string `json:"contactNumber" form:"contactNumber" validate:"max=20"`
	LinkedinURL     string `json:"linkedinUrl" form:"linkedinUrl" validate:"omitempty,linkedin"`
	Message         string `json:"message" form:"message" validate:"max=2000"`
	PartnershipType string `json:"partnershipType" form:"partnershipType" validate:"omitempty,oneof=technical business investment other"`
}

func (in *CreateInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = validation.NormalizeEmail(in.Email)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.LinkedinURL = strings.TrimSpace(in.LinkedinURL)
	in.Message = strings.TrimSpace(in.Message)
	in.PartnershipType = strings.TrimSpace(in.PartnershipType)
}

type StatusInput struct {
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
	PartnershipType string  `json:"partnershipType"`
}

type Filter struct {
	Status          string
	PartnershipType string
}

func (f Filter) match(p Partner) bool {
	return (f.Status == "" || p.Status == f.Status) &&
		(f.PartnershipType == "" || p.PartnershipType == f.PartnershipType)
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.PartnershipType != "" {
		q["partnershipType"] = f.PartnershipType
	}
	return q
}

// Patch lists the admin-editable fields; nil leaves a field unchanged.
type Patch struct {
	Status          *string
	Notes           *string
	PartnershipType *string
}

func (p Patch) apply(dst *Partner) {
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Notes != nil {
		dst.Notes = *p.Notes
	}
	if p.PartnershipType != nil {
		dst.PartnershipType = *p.PartnershipType
	}
}

func (p Patch) set() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	if p.PartnershipType != nil {
		set["partnershipType"] = *p.PartnershipType
	}
	return set
}
