package consultancy

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

const (
	StatusPending    = "pending"
	StatusContacted  = "contacted"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

var Statuses = []string{StatusPending, StatusContacted, StatusInProgress, StatusCompleted}

// Request is a consultancy enquiry from the contact form.
type Request struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	FullName        string             `bson:"fullName" json:"fullName"`
	Email           string             `bson:"email" json:"email"`
	PhoneNumber     string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	ServiceInterest string             `bson:"serviceInterest" json:"serviceInterest"`
	Message         string             `bson:"message" json:"message"`
	Status          string             `bson:"status" json:"status"`
	SubmittedDate   time.Time          `bson:"submittedDate" json:"submittedDate"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Priority        string             `bson:"priority" json:"priority"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateInput struct {
	FullName        string `json:"fullName" form:"fullName" validate:"required,max=100"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" form:"phoneNumber" validate:"max=20"`
	ServiceInterest string `json:"serviceInterest" form:"serviceInterest" validate:"required,oneof=web-development mobile-development digital-marketing seo social-media paid-ads cloud-services consulting other"`
	Message         string `json:"message" form:"message" validate:"required,max=2000"`
}

func (in *CreateInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = validation.NormalizeEmail(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.ServiceInterest = strings.TrimSpace(in.ServiceInterest)
	in.Message = strings.TrimSpace(in.Message)
}

// UpdateInput is a partial admin update; nil fields are left alone.
type UpdateInput struct {
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
	Priority *string `json:"priority"`
}

func (u UpdateInput) apply(r *Request) {
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.Notes != nil {
		r.Notes = *u.Notes
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
}

func (u UpdateInput) set() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}
	if u.Priority != nil {
		set["priority"] = *u.Priority
	}
	return set
}

type Filter struct {
	Status string
}
