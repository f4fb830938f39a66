package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSessionService(t *testing.T, ttl time.Duration) (*SessionService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redisclient.NewClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewSessionService(client, ttl, zap.NewNop()), mr
}

func TestSessionService_CreateAndGet(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, 1, loaded.CurrentStep)
	assert.Len(t, loaded.Applicants, 1)
	assert.Equal(t, form.SubmissionIdle, loaded.Submission)
}

func TestSessionService_Get_Unknown(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)

	_, err := svc.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestSessionService_SaveRoundTripsState(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	session.CurrentStep = 3
	session.Preferences.Postcode = "GU1 4QT"
	session.TermsAccepted = true
	require.NoError(t, svc.Save(ctx, session))

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.CurrentStep)
	assert.Equal(t, "GU1 4QT", loaded.Preferences.Postcode)
	assert.True(t, loaded.TermsAccepted)
}

func TestSessionService_SaveRefreshesTTL(t *testing.T) {
	svc, mr := newTestSessionService(t, 30*time.Minute)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	key := sessionKeyPrefix + session.ID

	// Burn half the TTL, then a save should reset it back to the full window.
	mr.FastForward(15 * time.Minute)
	require.Equal(t, 15*time.Minute, mr.TTL(key))

	require.NoError(t, svc.Save(ctx, session))
	assert.Equal(t, 30*time.Minute, mr.TTL(key))
}

func TestSessionService_GetSlidesTTL(t *testing.T) {
	svc, mr := newTestSessionService(t, 30*time.Minute)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	key := sessionKeyPrefix + session.ID

	// A read alone keeps the session alive for the full window again.
	mr.FastForward(15 * time.Minute)
	_, err = svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, mr.TTL(key))

	// An untouched session still expires.
	mr.FastForward(31 * time.Minute)
	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestSessionService_Delete(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, session.ID))

	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}
