package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/store"
)

func setup(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = store.Migrate(ctx, pool)
	require.NoError(t, err)
	n, err := store.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Zero(t, n, "second run applies nothing")
	return store.New(pool)
}

func newID() string { return uuid.New().String() }

func physician(spec string) *model.Physician {
	id := newID()
	return &model.Physician{
		User:           model.User{ID: id, Login: "phy-" + id[:8], PasswordHash: "x", FirstName: "Doc", LastName: id[:4]},
		PracticeNo:     "PR-1",
		Specialization: spec,
	}
}

func patient() *model.Patient {
	id := newID()
	return &model.Patient{
		User:              model.User{ID: id, Login: "pat-" + id[:8], PasswordHash: "x", FirstName: "Pat", LastName: id[:4]},
		SecondContactName: "Kin",
		SecondContactNo:   "555",
	}
}

func TestAccounts(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	p := patient()
	require.NoError(t, st.CreateAccount(ctx, p))

	dup := patient()
	dup.Login = p.Login
	assert.ErrorIs(t, st.CreateAccount(ctx, dup), model.ErrConflict)

	got, err := st.AccountByLogin(ctx, p.Login)
	require.NoError(t, err)
	gp, ok := got.(*model.Patient)
	require.True(t, ok)
	assert.Equal(t, "Kin", gp.SecondContactName)

	gp.SecondContactNo = "777"
	gp.PasswordHash = ""
	require.NoError(t, st.UpdateAccount(ctx, gp))
	again, err := st.AccountByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "777", again.(*model.Patient).SecondContactNo)
	assert.Equal(t, "x", again.Identity().PasswordHash, "empty hash keeps the old one")

	wrongRole := &model.Admin{User: p.User}
	assert.ErrorIs(t, st.UpdateAccount(ctx, wrongRole), model.ErrForbidden)

	_, err = st.AccountByLogin(ctx, "nobody-"+newID())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAppointmentsAndConsultations(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	spec := "Spec-" + newID()[:8]
	doc := physician(spec)
	pat := patient()
	require.NoError(t, st.CreateAccount(ctx, doc))
	require.NoError(t, st.CreateAccount(ctx, pat))

	ids, err := st.PhysiciansBySpecialization(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, []string{doc.ID}, ids)

	today := model.DateOf(time.Now())
	a := &model.Appointment{ID: newID(), CreatedAt: time.Now(), Date: today, PhysicianID: doc.ID, PatientID: pat.ID}
	require.NoError(t, st.CreateAppointment(ctx, a))

	clash := *a
	clash.ID = newID()
	assert.ErrorIs(t, st.CreateAppointment(ctx, &clash), model.ErrConflict)

	has, err := st.HasBookingOn(ctx, pat.ID, today)
	require.NoError(t, err)
	assert.True(t, has)

	views, err := st.PhysicianAppointmentsOn(ctx, doc.ID, today)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, pat.FullName(), views[0].CounterpartName)
	assert.True(t, views[0].Date.Equal(today))

	c := &model.Consultation{ID: newID(), CreatedAt: time.Now(), AppointmentID: a.ID, PatientID: pat.ID, PhysicianID: doc.ID, Notes: "ok"}
	require.NoError(t, st.CreateConsultation(ctx, c))
	done, err := st.ConsultedAppointmentIDs(ctx, []string{a.ID, newID()})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{a.ID: true}, done)

	require.NoError(t, st.DeleteAppointment(ctx, a.ID))
	assert.ErrorIs(t, st.DeleteAppointment(ctx, a.ID), model.ErrNotFound)

	history, err := st.PatientConsultations(ctx, pat.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, a.ID, history[0].AppointmentID)
}

func TestAuthorizationsAndEvents(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	target := newID()
	first := &model.AuthorizationRequest{ID: newID(), TargetID: target, RequesterID: "r1", Code: "1234", CreatedAt: time.Now()}
	second := &model.AuthorizationRequest{ID: newID(), TargetID: target, RequesterID: "r2", Code: "5678", CreatedAt: time.Now()}
	require.NoError(t, st.InsertAuthorization(ctx, first))
	require.NoError(t, st.InsertAuthorization(ctx, second))

	pend, err := st.PendingAuthorizations(ctx, target)
	require.NoError(t, err)
	require.Len(t, pend, 2)
	assert.Equal(t, "r1", pend[0].RequesterID)

	require.NoError(t, st.DeleteAuthorization(ctx, first.ID))
	assert.ErrorIs(t, st.DeleteAuthorization(ctx, first.ID), model.ErrNotFound)

	since := time.Now().Add(-time.Second)
	e := &model.AuditEvent{Timestamp: time.Now(), Description: "test event " + target}
	require.NoError(t, st.InsertEvent(ctx, e))
	assert.NotZero(t, e.ID)

	events, err := st.EventsSince(ctx, since)
	require.NoError(t, err)
	var found bool
	for _, ev := range events {
		found = found || ev.Description == e.Description
	}
	assert.True(t, found)
}
