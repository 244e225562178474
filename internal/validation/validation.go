// Package validation wraps go-playground/validator with the custom tags used
// by the lead forms and turns field errors into readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	personNameRe = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	linkedinRe   = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/.+`)
	githubRe     = regexp.MustCompile(`^https?://(www\.)?github\.com/.+`)
	websiteRe    = regexp.MustCompile(`^https?://.+\..+`)
	gdriveRe     = regexp.MustCompile(`^https?://(drive|docs)\.google\.com/`)
)

// labels overrides the generated field label where plain humanising reads badly.
var labels = map[string]string{
	"githubUrl":            "GitHub URL",
	"linkedinUrl":          "LinkedIn URL",
	"portfolioWebsite":     "Portfolio website",
	"resumeGoogleDriveUrl": "Google Drive URL",
	"preferredDateTime":    "Preferred date and time",
	"topicDiscussion":      "Topic of discussion",
	"serviceInterest":      "Service/Area of interest",
	"liveProjects":         "Live projects",
	"partnershipType":      "Partnership type",
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		mustRegister(v, "personname", personNameRe)
		mustRegister(v, "linkedin", linkedinRe)
		mustRegister(v, "github", githubRe)
		mustRegister(v, "website", websiteRe)
		mustRegister(v, "gdrive", gdriveRe)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// Errors is the aggregated list of field messages for one request.
type Errors []string

func (e Errors) Error() string { return strings.Join(e, ". ") }

// Struct validates s and returns Errors for field failures.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		out := make(Errors, 0, len(ves))
		for _, fe := range ves {
			out = append(out, message(fe))
		}
		return out
	}
	return err
}

// Var validates a single value against a tag expression (e.g. "oneof=a b").
func Var(value interface{}, tag string) bool {
	return instance().Var(value, tag) == nil
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_without":
		return name + " is required"
	case "email":
		return "Please provide a valid email address"
	case "max":
		if isString {
			return fmt.Sprintf("%s cannot exceed %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", name, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid %s value", strings.ToLower(name))
	case "personname":
		return "Name can only contain letters, spaces, hyphens and apostrophes"
	case "linkedin":
		return "Please provide a valid LinkedIn URL"
	case "github":
		return "Please provide a valid GitHub URL"
	case "website":
		return "Please provide a valid website URL"
	case "gdrive":
		return "Please provide a valid Google Drive URL"
	}
	return name + " is invalid"
}

// label turns a camelCase field name into "Camel case".
func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
