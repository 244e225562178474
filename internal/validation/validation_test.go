package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type applicant struct {
	Name     string `json:"name" validate:"required,max=10"`
	Email    string `json:"email" validate:"required,email"`
	Linkedin string `json:"linkedinUrl" validate:"omitempty,linkedin"`
	Github   string `json:"githubUrl" validate:"required,github"`
	Status   string `json:"status" validate:"omitempty,oneof=pending approved"`
	Nick     string `json:"nickName" validate:"omitempty,personname,min=2"`
}

func TestStruct_Valid(t *testing.T) {
	a := applicant{Name: "Ada", Email: "ada@example.com", Github: "https://github.com/ada", Linkedin: "https://www.linkedin.com/in/ada", Nick: "O'Neil-Smith"}
	require.NoError(t, Struct(a))
}

func TestStruct_AggregatesMessages(t *testing.T) {
	a := applicant{Name: "a very long name", Email: "nope", Github: "https://gitlab.com/x", Linkedin: "https://linkedin.com/company/x", Status: "done", Nick: "x1"}
	err := Struct(a)
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	require.ElementsMatch(t, []string{
		"Name cannot exceed 10 characters",
		"Please provide a valid email address",
		"Please provide a valid LinkedIn URL",
		"Please provide a valid GitHub URL",
		"Invalid status value",
		"Name can only contain letters, spaces, hyphens and apostrophes",
	}, []string(verrs))
}

func TestStruct_Required(t *testing.T) {
	err := Struct(applicant{})
	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	require.Contains(t, verrs, "Name is required")
	require.Contains(t, verrs, "Email is required")
	require.Contains(t, verrs, "GitHub URL is required")
}

func TestVarAndNormalize(t *testing.T) {
	require.True(t, Var("https://drive.google.com/file/d/1/view", "gdrive"))
	require.True(t, Var("https://docs.google.com/document/d/1", "gdrive"))
	require.False(t, Var("https://dropbox.com/x", "gdrive"))
	require.True(t, Var("https://portfolio.dev", "website"))
	require.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Full name", label("fullName"))
	require.Equal(t, "Contact number", label("contactNumber"))
	require.Equal(t, "LinkedIn URL", label("linkedinUrl"))
}
