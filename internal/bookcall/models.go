package bookcall

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled}

// activeStatuses hold a slot on the calendar.
var activeStatuses = []string{StatusPending, StatusConfirmed}

type Call struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	FullName          string             `bson:"fullName" json:"fullName"`
	Email             string             `bson:"email" json:"email"`
	PhoneNumber       string             `bson:"phoneNumber" json:"phoneNumber"`
	PreferredDateTime time.Time          `bson:"preferredDateTime" json:"preferredDateTime"`
	TopicDiscussion   string             `bson:"topicDiscussion" json:"topicDiscussion"`
	AdditionalNotes   string             `bson:"additionalNotes,omitempty" json:"additionalNotes,omitempty"`
	Status            string             `bson:"status" json:"status"`
	SubmittedDate     time.Time          `bson:"submittedDate" json:"submittedDate"`
	ActualDateTime    *time.Time         `bson:"actualDateTime,omitempty" json:"actualDateTime,omitempty"`
	CallDuration      *int               `bson:"callDuration,omitempty" json:"callDuration,omitempty"`
	CallNotes         string             `bson:"callNotes,omitempty" json:"callNotes,omitempty"`
	Priority          string             `bson:"priority" json:"priority"`
	AssignedTo        string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (c Call) active() bool {
	return c.Status == StatusPending || c.Status == StatusConfirmed
}

type CreateInput struct {
	FullName          string `json:"fullName" form:"fullName" validate:"required,max=100"`
	Email             string `json:"email" form:"email" validate:"required,email"`
	PhoneNumber       string `json:"phoneNumber" form:"phoneNumber" validate:"required,max=20"`
	PreferredDateTime string `json:"preferredDateTime" form:"preferredDateTime" validate:"required"`
	TopicDiscussion   string `json:"topicDiscussion" form:"topicDiscussion" validate:"required,max=500"`
	AdditionalNotes   string `json:"additionalNotes" form:"additionalNotes" validate:"max=1000"`
}

func (in *CreateInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = validation.NormalizeEmail(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.PreferredDateTime = strings.TrimSpace(in.PreferredDateTime)
	in.TopicDiscussion = strings.TrimSpace(in.TopicDiscussion)
	in.AdditionalNotes = strings.TrimSpace(in.AdditionalNotes)
}

// dateTimeLayouts are tried in order; zone-less values are read as UTC.
var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseDay reads a YYYY-MM-DD value (or a full timestamp) and returns the UTC day bounds.
func ParseDay(s string) (start, end time.Time, ok bool) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		var okTS bool
		if t, okTS = parseDateTime(s); !okTS {
			return time.Time{}, time.Time{}, false
		}
	}
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Nanosecond), true
}

// UpdateInput is a partial admin update; nil fields are left alone.
type UpdateInput struct {
	Status         *string    `json:"status"`
	ActualDateTime *time.Time `json:"actualDateTime"`
	CallDuration   *int       `json:"callDuration"`
	CallNotes      *string    `json:"callNotes"`
	Priority       *string    `json:"priority"`
	AssignedTo     *string    `json:"assignedTo"`
}

func (u UpdateInput) apply(c *Call) {
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.ActualDateTime != nil {
		t := u.ActualDateTime.UTC()
		c.ActualDateTime = &t
	}
	if u.CallDuration != nil {
		d := *u.CallDuration
		c.CallDuration = &d
	}
	if u.CallNotes != nil {
		c.CallNotes = *u.CallNotes
	}
	if u.Priority != nil {
		c.Priority = *u.Priority
	}
	if u.AssignedTo != nil {
		c.AssignedTo = *u.AssignedTo
	}
}

func (u UpdateInput) set() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.ActualDateTime != nil {
		set["actualDateTime"] = u.ActualDateTime.UTC()
	}
	if u.CallDuration != nil {
		set["callDuration"] = *u.CallDuration
	}
	if u.CallNotes != nil {
		set["callNotes"] = *u.CallNotes
	}
	if u.Priority != nil {
		set["priority"] = *u.Priority
	}
	if u.AssignedTo != nil {
		set["assignedTo"] = *u.AssignedTo
	}
	return set
}

// Filter narrows List. From/To bound preferredDateTime when non-zero.
type Filter struct {
	Status string
	From   time.Time
	To     time.Time
}

func (f Filter) match(c Call) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && c.PreferredDateTime.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && c.PreferredDateTime.After(f.To) {
		return false
	}
	return true
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		r := bson.M{}
		if !f.From.IsZero() {
			r["$gte"] = f.From
		}
		if !f.To.IsZero() {
			r["$lte"] = f.To
		}
		q["preferredDateTime"] = r
	}
	return q
}

// Availability lists the held slots of one UTC day.
type Availability struct {
	Date        string      `json:"date"`
	BookedSlots []time.Time `json:"bookedSlots"`
}
