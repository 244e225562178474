package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())

	p, err := svc.Create(ctx, CreateInput{Name: " Acme ", Email: "Deals@Acme.io", Message: "let's talk"})
	require.NoError(t, err)
	require.Equal(t, "Acme", p.Name)
	require.Equal(t, "deals@acme.io", p.Email)
	require.Equal(t, TypeOther, p.PartnershipType)
	require.Equal(t, models.StatusPending, p.Status)

	_, err = svc.Create(ctx, CreateInput{Name: "Acme 2", Email: "deals@acme.io"})
	require.ErrorIs(t, err, ErrEmailExists)

	_, err = svc.Create(ctx, CreateInput{Email: "x@acme.io", LinkedinURL: "https://linkedin.com/company/acme", PartnershipType: "merger"})
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	require.ElementsMatch(t, []string{"Name is required", "Please provide a valid LinkedIn URL", "Invalid partnership type value"}, []string(verrs))
}

func TestUpdateStatusAndType(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())
	p, err := svc.Create(ctx, CreateInput{Name: "Acme", Email: "deals@acme.io"})
	require.NoError(t, err)
	id := p.ID.Hex()

	_, err = svc.UpdateStatus(ctx, id, StatusInput{Status: ""})
	require.ErrorIs(t, err, ErrInvalidStatus)

	got, err := svc.UpdateStatus(ctx, id, StatusInput{Status: models.StatusReviewing, PartnershipType: "bogus"})
	require.NoError(t, err)
	require.Equal(t, models.StatusReviewing, got.Status)
	require.Equal(t, TypeOther, got.PartnershipType, "invalid type is ignored on status update")

	got, err = svc.UpdateStatus(ctx, id, StatusInput{Status: models.StatusApproved, PartnershipType: TypeInvestment})
	require.NoError(t, err)
	require.Equal(t, TypeInvestment, got.PartnershipType)

	_, err = svc.UpdatePartnershipType(ctx, id, "bogus")
	require.ErrorIs(t, err, ErrInvalidPartType)
	got, err = svc.UpdatePartnershipType(ctx, id, TypeTechnical)
	require.NoError(t, err)
	require.Equal(t, TypeTechnical, got.PartnershipType)
	require.Equal(t, models.StatusApproved, got.Status)
}

func TestListFiltersAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())
	for i, pt := range []string{TypeTechnical, TypeBusiness, TypeTechnical} {
		_, err := svc.Create(ctx, CreateInput{Name: "Acme", Email: string(rune('a'+i)) + "@acme.io", PartnershipType: pt})
		require.NoError(t, err)
	}
	items, meta, err := svc.List(ctx, Filter{PartnershipType: TypeTechnical}, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, int64(2), meta.Total)

	require.NoError(t, svc.Delete(ctx, items[0].ID.Hex()))
	require.ErrorIs(t, svc.Delete(ctx, items[0].ID.Hex()), ErrNotFound)
	_, err = svc.Get(ctx, items[0].ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)
}
