package newsletter

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

const (
	SourceBlogPage = "blog_page"
	SourceHomepage = "homepage"
	SourceFooter   = "footer"
	SourcePopup    = "popup"
	SourceOther    = "other"
)

type Preferences struct {
	WebDevelopment   bool `bson:"webDevelopment" json:"webDevelopment"`
	DigitalMarketing bool `bson:"digitalMarketing" json:"digitalMarketing"`
	BusinessGrowth   bool `bson:"businessGrowth" json:"businessGrowth"`
	AIIntegration    bool `bson:"aiIntegration" json:"aiIntegration"`
}

// Metadata is captured from the subscribe request.
type Metadata struct {
	IPAddress string `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent string `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	Referrer  string `bson:"referrer,omitempty" json:"referrer,omitempty"`
}

type Subscriber struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	SubscriptionDate time.Time          `bson:"subscriptionDate" json:"subscriptionDate"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	Source           string             `bson:"source" json:"source"`
	Preferences      Preferences        `bson:"preferences" json:"preferences"`
	Metadata         Metadata           `bson:"metadata" json:"metadata"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Redacted drops the request fingerprint before a subscriber is listed.
func (s Subscriber) Redacted() Subscriber {
	s.Metadata.IPAddress = ""
	s.Metadata.UserAgent = ""
	return s
}

// PreferenceInput distinguishes an omitted flag (nil) from an explicit false.
type PreferenceInput struct {
	WebDevelopment   *bool `json:"webDevelopment" form:"webDevelopment"`
	DigitalMarketing *bool `json:"digitalMarketing" form:"digitalMarketing"`
	BusinessGrowth   *bool `json:"businessGrowth" form:"businessGrowth"`
	AIIntegration    *bool `json:"aiIntegration" form:"aiIntegration"`
}

// Apply overlays the explicitly given flags onto base.
func (p PreferenceInput) Apply(base Preferences) Preferences {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.WebDevelopment, p.WebDevelopment)
	set(&base.DigitalMarketing, p.DigitalMarketing)
	set(&base.BusinessGrowth, p.BusinessGrowth)
	set(&base.AIIntegration, p.AIIntegration)
	return base
}

// defaultPreferences opts new subscribers into every topic.
var defaultPreferences = Preferences{WebDevelopment: true, DigitalMarketing: true, BusinessGrowth: true, AIIntegration: true}

type SubscribeInput struct {
	Name        string          `json:"name" form:"name" validate:"required,min=2,max=100,personname"`
	Email       string          `json:"email" form:"email" validate:"required,email"`
	Source      string          `json:"source" form:"source" validate:"oneof=blog_page homepage footer popup other"`
	Preferences PreferenceInput `json:"preferences"`
	Metadata    Metadata        `json:"-" validate:"-"`
}

func (in *SubscribeInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = validation.NormalizeEmail(in.Email)
	in.Source = strings.TrimSpace(in.Source)
	if in.Source == "" {
		in.Source = SourceBlogPage
	}
}

type PreferencesInput struct {
	Email       string          `json:"email" validate:"required,email"`
	Preferences PreferenceInput `json:"preferences"`
}

type Stats struct {
	Total    int64 `json:"total" bson:"total"`
	Active   int64 `json:"active" bson:"active"`
	Inactive int64 `json:"inactive" bson:"inactive"`
}
