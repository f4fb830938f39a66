package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubStore struct {
	mu        sync.Mutex
	persisted []*models.Application
	err       error
}

func (s *stubStore) Persist(ctx context.Context, app *models.Application) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.persisted = append(s.persisted, app)
	return "app-42", nil
}

type stubPDF struct{}

func (stubPDF) Render(app *models.Application) ([]byte, error) { return []byte("%PDF"), nil }

type stubEmail struct {
	mu   sync.Mutex
	sent int
	ok   bool
}

func (s *stubEmail) Send(ctx context.Context, msg services.EmailMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return s.ok, nil
}

func setupSubmission(t *testing.T, store *stubStore, email *stubEmail) {
	t.Helper()
	services.SubmissionServiceInstance = services.NewSubmissionService(
		store, stubPDF{}, email, "lettings@example.co.uk", zap.NewNop())
}

func TestSubmitApplication_HappyPath(t *testing.T) {
	setupSessionStore(t)
	store := &stubStore{}
	email := &stubEmail{ok: true}
	setupSubmission(t, store, email)
	router := setupRouter()

	session := completeSession(t)
	base := "/v1/applications/sessions/" + session.ID

	w := doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result services.SubmissionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Submitted)
	assert.True(t, result.EmailConfirmed)
	assert.Equal(t, "app-42", result.ApplicationID)

	require.Len(t, store.persisted, 1)
	assert.Equal(t, "Jane", store.persisted[0].Applicants[0].FirstName)
	assert.Equal(t, "Doe", store.persisted[0].Applicants[0].LastName)
	assert.Equal(t, "jane.doe@example.co.uk", store.persisted[0].Applicants[0].Email)
	assert.Equal(t, 2, email.sent)

	// The session is now submitted and read-only.
	w = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	loaded := decodeSession(t, w).Session
	assert.Equal(t, form.SubmissionSubmitted, loaded.Submission)
	assert.Equal(t, "app-42", loaded.ApplicationID)

	w = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrAlreadySubmitted.Error())

	w = doJSON(t, router, http.MethodPut, base+"/signature", map[string]interface{}{
		"signature": "Someone Else", "terms_accepted": true,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrAlreadySubmitted.Error())
}

func TestSubmitApplication_PersistenceFailure(t *testing.T) {
	setupSessionStore(t)
	store := &stubStore{err: errors.New("connection refused")}
	email := &stubEmail{ok: true}
	setupSubmission(t, store, email)
	router := setupRouter()

	session := completeSession(t)
	base := "/v1/applications/sessions/" + session.ID

	w := doJSON(t, router, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The session returns to idle with the entered data intact, ready for a
	// retry without re-entry.
	w = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	loaded := decodeSession(t, w).Session
	assert.Equal(t, form.SubmissionIdle, loaded.Submission)
	assert.Equal(t, "Jane", loaded.Applicants[0].FirstName)
	assert.Empty(t, loaded.ApplicationID)
	assert.Equal(t, 0, email.sent)

	// Retry after the store recovers.
	store.err = nil
	w = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result services.SubmissionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Submitted)
}

func TestSubmitApplication_RejectsUnsignedApplication(t *testing.T) {
	setupSessionStore(t)
	store := &stubStore{}
	email := &stubEmail{ok: true}
	setupSubmission(t, store, email)
	router := setupRouter()

	session := completeSession(t)
	session.Signature = ""
	session.TermsAccepted = false
	require.NoError(t, services.SessionServiceInstance.Save(context.Background(), session))
	base := "/v1/applications/sessions/" + session.ID

	w := doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var validation ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validation))
	assert.Equal(t, form.TotalSteps, validation.Step)
	assert.False(t, validation.Valid)
	assert.NotEmpty(t, validation.Errors)

	// Nothing was persisted or emailed, and the session is still editable.
	assert.Empty(t, store.persisted)
	assert.Equal(t, 0, email.sent)

	w = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	loaded := decodeSession(t, w).Session
	assert.Equal(t, form.SubmissionIdle, loaded.Submission)

	// Signing fixes it.
	w = doJSON(t, router, http.MethodPut, base+"/signature", map[string]interface{}{
		"signature": "Jane Doe", "terms_accepted": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.persisted, 1)
}

func TestSubmitApplication_EmailUnconfirmed(t *testing.T) {
	setupSessionStore(t)
	store := &stubStore{}
	email := &stubEmail{ok: false}
	setupSubmission(t, store, email)
	router := setupRouter()

	session := completeSession(t)

	w := doJSON(t, router, http.MethodPost, "/v1/applications/sessions/"+session.ID+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result services.SubmissionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Submitted, "email failure never blocks submission")
	assert.False(t, result.EmailConfirmed)
	assert.Contains(t, result.Message, "could not confirm")
}
