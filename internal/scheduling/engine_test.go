package scheduling_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/scheduling"
	"clinic-consent-api/internal/store/memory"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func day(n int) time.Time { return model.DateOf(now).AddDate(0, 0, n) }

func setup(t *testing.T, opts ...scheduling.Option) (*scheduling.Engine, *memory.Store) {
	t.Helper()
	st := memory.New()
	ctx := context.Background()
	for _, p := range []*model.Physician{
		{User: model.User{ID: "phy-a", Login: "a", FirstName: "Ann", LastName: "Heart"}, Specialization: "Cardiology"},
		{User: model.User{ID: "phy-b", Login: "b", FirstName: "Ben", LastName: "Beat"}, Specialization: "Cardiology"},
		{User: model.User{ID: "phy-c", Login: "c", FirstName: "Cal", LastName: "Skin"}, Specialization: "Dermatology"},
	} {
		require.NoError(t, st.CreateAccount(ctx, p))
	}
	require.NoError(t, st.CreateAccount(ctx, &model.Patient{User: model.User{ID: "pat-1", Login: "p1", FirstName: "Pat", LastName: "One"}}))
	eng := scheduling.New(st, clock.NewManual(now), logger.Discard().WithComponent("scheduling"), opts...)
	return eng, st
}

func TestBookThenRepeatConflicts(t *testing.T) {
	eng, st := setup(t)
	ctx := context.Background()

	a, err := eng.Book(ctx, "pat-1", "Cardiology", day(2).Add(15*time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.True(t, a.Date.Equal(day(2)))
	assert.True(t, a.CreatedAt.Equal(now))
	assert.Contains(t, []string{"phy-a", "phy-b"}, a.PhysicianID)

	_, err = eng.Book(ctx, "pat-1", "Dermatology", day(2))
	assert.ErrorIs(t, err, model.ErrConflict)

	list, err := st.PatientAppointmentsFrom(ctx, "pat-1", day(0))
	require.NoError(t, err)
	assert.Len(t, list, 1, "conflicting booking must not insert")

	// another date is fine
	_, err = eng.Book(ctx, "pat-1", "Cardiology", day(3))
	assert.NoError(t, err)
}

func TestBookUnknownSpecialization(t *testing.T) {
	eng, _ := setup(t)
	_, err := eng.Book(context.Background(), "pat-1", "Neurology", day(1))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBookSpreadsAcrossPool(t *testing.T) {
	eng, _ := setup(t)
	ctx := context.Background()

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		a, err := eng.Book(ctx, fmt.Sprintf("pat-%d", i+100), "Cardiology", day(1))
		require.NoError(t, err)
		seen[a.PhysicianID]++
	}
	assert.Len(t, seen, 2)
	assert.Positive(t, seen["phy-a"])
	assert.Positive(t, seen["phy-b"])
}

func TestBookUsesPicker(t *testing.T) {
	eng, _ := setup(t, scheduling.WithPicker(func(n int) int { return n - 1 }))
	a, err := eng.Book(context.Background(), "pat-1", "Cardiology", day(1))
	require.NoError(t, err)
	assert.Equal(t, "phy-b", a.PhysicianID)
}

func TestConcurrentBookingSameDate(t *testing.T) {
	eng, _ := setup(t)
	ctx := context.Background()

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, clash int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.Book(ctx, "pat-1", "Cardiology", day(4))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, model.ErrConflict):
				clash++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, clash)
}

func TestHandledIsDerived(t *testing.T) {
	eng, _ := setup(t, scheduling.WithPicker(func(int) int { return 0 }))
	ctx := context.Background()

	a, err := eng.Book(ctx, "pat-1", "Cardiology", day(1))
	require.NoError(t, err)

	handled, err := eng.IsHandled(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, handled)

	c, err := eng.AddConsultation(ctx, "phy-a", a.ID, "mild arrhythmia", "rest")
	require.NoError(t, err)
	assert.Equal(t, "pat-1", c.PatientID)

	handled, err = eng.IsHandled(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, handled)

	list, err := eng.PatientUpcoming(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Handled)
	assert.Equal(t, "Ann Heart", list[0].CounterpartName)

	_, err = eng.AddConsultation(ctx, "phy-a", a.ID, "again", "")
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestAddConsultationChecksOwnership(t *testing.T) {
	eng, _ := setup(t, scheduling.WithPicker(func(int) int { return 0 }))
	ctx := context.Background()

	a, err := eng.Book(ctx, "pat-1", "Cardiology", day(1))
	require.NoError(t, err)

	_, err = eng.AddConsultation(ctx, "phy-b", a.ID, "notes", "")
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = eng.AddConsultation(ctx, "phy-a", "missing", "notes", "")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCancelOrphansConsultation(t *testing.T) {
	eng, st := setup(t, scheduling.WithPicker(func(int) int { return 0 }))
	ctx := context.Background()

	today := &model.Appointment{ID: "today", CreatedAt: now, Date: day(0), PhysicianID: "phy-a", PatientID: "pat-1"}
	require.NoError(t, st.CreateAppointment(ctx, today))
	_, err := eng.AddConsultation(ctx, "phy-a", "today", "checkup", "none")
	require.NoError(t, err)

	require.NoError(t, eng.Cancel(ctx, "today"))

	pl, err := eng.PatientUpcoming(ctx, "pat-1")
	require.NoError(t, err)
	assert.Empty(t, pl)
	dl, err := eng.PhysicianToday(ctx, "phy-a")
	require.NoError(t, err)
	assert.Empty(t, dl)

	history, err := eng.PatientConsultations(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "today", history[0].AppointmentID)

	assert.ErrorIs(t, eng.Cancel(ctx, "today"), model.ErrNotFound)
}

func TestListingFiltersAndOrder(t *testing.T) {
	eng, st := setup(t)
	ctx := context.Background()

	for i, a := range []model.Appointment{
		{ID: "past", Date: day(-1), PhysicianID: "phy-a", PatientID: "pat-1"},
		{ID: "d3", Date: day(3), PhysicianID: "phy-a", PatientID: "pat-1"},
		{ID: "d0", Date: day(0), PhysicianID: "phy-a", PatientID: "pat-1"},
		{ID: "d1", Date: day(1), PhysicianID: "phy-a", PatientID: "pat-1"},
		{ID: "other", Date: day(0), PhysicianID: "phy-b", PatientID: "pat-2"},
	} {
		a.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, st.CreateAppointment(ctx, &a))
	}

	pl, err := eng.PatientUpcoming(ctx, "pat-1")
	require.NoError(t, err)
	var ids []string
	for _, v := range pl {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"d3", "d0", "d1"}, ids, "patient view: from today, booking order")

	dl, err := eng.PhysicianToday(ctx, "phy-a")
	require.NoError(t, err)
	require.Len(t, dl, 1)
	assert.Equal(t, "d0", dl[0].ID)
	assert.Equal(t, "Pat One", dl[0].CounterpartName)
	assert.False(t, dl[0].Handled)
}

func TestSpecializations(t *testing.T) {
	eng, _ := setup(t)
	specs, err := eng.Specializations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Dermatology"}, specs)
}
