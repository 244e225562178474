package models

import "time"

// Resume describes an uploaded CV. Filename is the storage key and never leaves the server.
type Resume struct {
	Filename     string    `bson:"filename" json:"-"`
	OriginalName string    `bson:"originalName" json:"originalName"`
	Mimetype     string    `bson:"mimetype" json:"mimetype"`
	Size         int64     `bson:"size" json:"size"`
	UploadDate   time.Time `bson:"uploadDate" json:"uploadDate"`
}

// Application review states shared by developer, marketer and partner applications.
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

var ApplicationStatuses = []string{StatusPending, StatusReviewing, StatusApproved, StatusRejected}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// OneOf reports whether v is one of allowed.
func OneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// ApplicationSummary is what public submission endpoints return.
type ApplicationSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	AppliedDate time.Time `json:"appliedDate"`
}
