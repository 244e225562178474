package bookcall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/models"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/pagination"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/validation"
)

var base = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func newService() *Service {
	svc := NewService(NewMemoryRepo())
	svc.now = func() time.Time { return base }
	return svc
}

func booking(email string, at time.Time) CreateInput {
	return CreateInput{
		FullName:          "Grace Hopper",
		Email:             email,
		PhoneNumber:       "+1 555 0100",
		PreferredDateTime: at.Format(time.RFC3339),
		TopicDiscussion:   "Team augmentation",
	}
}

func TestCreate_FutureOnly(t *testing.T) {
	svc := newService()
	_, err := svc.Create(context.Background(), booking("grace@example.com", base))
	require.ErrorIs(t, err, ErrPastDateTime)

	_, err = svc.Create(context.Background(), booking("grace@example.com", base.Add(-time.Hour)))
	require.ErrorIs(t, err, ErrPastDateTime)

	in := booking("grace@example.com", base)
	in.PreferredDateTime = "next tuesday"
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrBadDateTime)
}

func TestCreate_AcceptsLocalDateTime(t *testing.T) {
	svc := newService()
	in := booking("grace@example.com", base)
	in.PreferredDateTime = "2025-06-03T14:30"
	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC), c.PreferredDateTime)
	require.Equal(t, StatusPending, c.Status)
	require.Equal(t, models.PriorityMedium, c.Priority)
}

func TestCreate_OneUpcomingPerEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Create(ctx, booking("grace@example.com", base.Add(24*time.Hour)))
	require.NoError(t, err)

	_, err = svc.Create(ctx, booking("Grace@Example.com", base.Add(72*time.Hour)))
	require.ErrorIs(t, err, ErrAlreadyScheduled)
}

func TestCreate_SlotWindow(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	slot := base.Add(48 * time.Hour)
	_, err := svc.Create(ctx, booking("a@example.com", slot))
	require.NoError(t, err)

	_, err = svc.Create(ctx, booking("b@example.com", slot.Add(30*time.Minute)))
	require.ErrorIs(t, err, ErrSlotUnavailable, "window is inclusive")
	_, err = svc.Create(ctx, booking("c@example.com", slot.Add(-30*time.Minute)))
	require.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = svc.Create(ctx, booking("d@example.com", slot.Add(31*time.Minute)))
	require.NoError(t, err)
}

func TestCreate_CancelledFreesSlot(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	slot := base.Add(48 * time.Hour)
	c, err := svc.Create(ctx, booking("a@example.com", slot))
	require.NoError(t, err)

	cancelled := StatusCancelled
	_, err = svc.Update(ctx, c.ID.Hex(), UpdateInput{Status: &cancelled})
	require.NoError(t, err)

	_, err = svc.Create(ctx, booking("b@example.com", slot))
	require.NoError(t, err)
	_, err = svc.Create(ctx, booking("a@example.com", slot.Add(4*time.Hour)))
	require.NoError(t, err, "cancelled call does not block the same email")
}

func TestCreate_Validation(t *testing.T) {
	_, err := newService().Create(context.Background(), CreateInput{Email: "nope"})
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	require.Contains(t, []string(verrs), "Please provide a valid email address")
	require.Contains(t, []string(verrs), "Full name is required")
}

func TestListAndAvailability(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	day := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	late, err := svc.Create(ctx, booking("a@example.com", day.Add(15*time.Hour)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, booking("b@example.com", day.Add(10*time.Hour)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, booking("c@example.com", day.Add(30*time.Hour)))
	require.NoError(t, err)

	f, err := ListFilter("", "2025-06-04")
	require.NoError(t, err)
	items, meta, err := svc.List(ctx, f, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), meta.Total)
	require.Equal(t, "b@example.com", items[0].Email, "sorted by preferred time")

	_, err = ListFilter("", "04/06/2025")
	require.ErrorIs(t, err, ErrInvalidDate)

	completed := StatusCompleted
	_, err = svc.Update(ctx, late.ID.Hex(), UpdateInput{Status: &completed})
	require.NoError(t, err)

	av, err := svc.Availability(ctx, "2025-06-04")
	require.NoError(t, err)
	require.Equal(t, "2025-06-04", av.Date)
	require.Equal(t, []time.Time{day.Add(10 * time.Hour)}, av.BookedSlots)

	_, err = svc.Availability(ctx, "tomorrow")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	c, err := svc.Create(ctx, booking("a@example.com", base.Add(time.Hour)))
	require.NoError(t, err)

	bad := -5
	_, err = svc.Update(ctx, c.ID.Hex(), UpdateInput{CallDuration: &bad})
	require.ErrorIs(t, err, ErrInvalidDuration)
	nope := "maybe"
	_, err = svc.Update(ctx, c.ID.Hex(), UpdateInput{Status: &nope})
	require.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.Update(ctx, c.ID.Hex(), UpdateInput{Priority: &nope})
	require.ErrorIs(t, err, ErrInvalidPriority)

	dur := 45
	actual := base.Add(90 * time.Minute)
	notes := "went well"
	who := "sam"
	got, err := svc.Update(ctx, c.ID.Hex(), UpdateInput{CallDuration: &dur, ActualDateTime: &actual, CallNotes: &notes, AssignedTo: &who})
	require.NoError(t, err)
	require.Equal(t, 45, *got.CallDuration)
	require.Equal(t, actual, *got.ActualDateTime)
	require.Equal(t, StatusPending, got.Status)
	require.Equal(t, "sam", got.AssignedTo)

	require.NoError(t, svc.Delete(ctx, c.ID.Hex()))
	require.ErrorIs(t, svc.Delete(ctx, c.ID.Hex()), ErrNotFound)
}
