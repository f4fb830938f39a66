package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/logging"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	persisted []*models.Application
	err       error
}

func (f *fakeStore) Persist(ctx context.Context, app *models.Application) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.persisted = append(f.persisted, app)
	return "app-001", nil
}

type fakePDF struct {
	err error
}

func (f *fakePDF) Render(app *models.Application) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []EmailMessage
	// per-recipient delivery outcome; default is accepted
	declined map[string]bool
	err      error
}

func (f *fakeEmail) Send(ctx context.Context, msg EmailMessage) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return false, f.err
	}
	if f.declined[msg.To] {
		return false, nil
	}
	return true, nil
}

func submittableApplication() *models.Application {
	a := form.NewApplicant()
	a.FirstName = "Jane"
	a.LastName = "Doe"
	a.Email = "jane.doe@example.co.uk"
	a.Phone = "+447911123456"

	return &models.Application{
		Preferences: models.PropertyPreferences{
			Address:  "14 Croft Road, Guildford",
			Postcode: "GU1 4QT",
			MaxRent:  "1450",
		},
		Applicants:  []models.Applicant{a},
		Signature:   "Jane Doe",
		Status:      models.StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
}

func newTestSubmissionService(store *fakeStore, pdf *fakePDF, email *fakeEmail) *SubmissionService {
	_ = logging.InitLogger()
	return NewSubmissionService(store, pdf, email, "lettings@example.co.uk", logging.Logger)
}

func TestSubmit_HappyPath(t *testing.T) {
	store := &fakeStore{}
	email := &fakeEmail{}
	svc := newTestSubmissionService(store, &fakePDF{}, email)

	result, err := svc.Submit(context.Background(), submittableApplication())

	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.True(t, result.EmailConfirmed)
	assert.Equal(t, "app-001", result.ApplicationID)

	// The persisted payload carries the entered applicant values untouched.
	require.Len(t, store.persisted, 1)
	persisted := store.persisted[0]
	assert.Equal(t, "Jane", persisted.Applicants[0].FirstName)
	assert.Equal(t, "Doe", persisted.Applicants[0].LastName)
	assert.Equal(t, "jane.doe@example.co.uk", persisted.Applicants[0].Email)

	// Both notifications went out, each with the report attached.
	require.Len(t, email.sent, 2)
	recipients := map[string]bool{}
	for _, msg := range email.sent {
		recipients[msg.To] = true
		assert.NotEmpty(t, msg.Attachment)
	}
	assert.True(t, recipients["jane.doe@example.co.uk"])
	assert.True(t, recipients["lettings@example.co.uk"])
}

func TestSubmit_PersistenceFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	email := &fakeEmail{}
	svc := newTestSubmissionService(store, &fakePDF{}, email)

	result, err := svc.Submit(context.Background(), submittableApplication())

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPersistenceFailed)
	assert.Nil(t, result)
	// Notifications are never sent for unpersisted applications.
	assert.Empty(t, email.sent)
}

func TestSubmit_ConfirmationEmailDeclined(t *testing.T) {
	store := &fakeStore{}
	email := &fakeEmail{declined: map[string]bool{"jane.doe@example.co.uk": true}}
	svc := newTestSubmissionService(store, &fakePDF{}, email)

	result, err := svc.Submit(context.Background(), submittableApplication())

	require.NoError(t, err)
	assert.True(t, result.Submitted, "email failure never blocks submission")
	assert.False(t, result.EmailConfirmed)
	assert.Contains(t, result.Message, "could not confirm")
	// The admin notification still went out independently.
	assert.Len(t, email.sent, 2)
}

func TestSubmit_AdminNotificationFailureIsInvisible(t *testing.T) {
	store := &fakeStore{}
	email := &fakeEmail{declined: map[string]bool{"lettings@example.co.uk": true}}
	svc := newTestSubmissionService(store, &fakePDF{}, email)

	result, err := svc.Submit(context.Background(), submittableApplication())

	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.True(t, result.EmailConfirmed)
	assert.Contains(t, result.Message, "confirmation email is on its way")
}

func TestSubmit_PDFFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{}
	email := &fakeEmail{}
	svc := newTestSubmissionService(store, &fakePDF{err: errors.New("render failed")}, email)

	result, err := svc.Submit(context.Background(), submittableApplication())

	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.True(t, result.EmailConfirmed)
	// Emails still go out, just without the attachment.
	require.Len(t, email.sent, 2)
	for _, msg := range email.sent {
		assert.Empty(t, msg.Attachment)
	}
}

func TestSubmit_EmailTransportErrorBecomesUnconfirmed(t *testing.T) {
	store := &fakeStore{}
	email := &fakeEmail{err: errors.New("dial timeout")}
	svc := newTestSubmissionService(store, &fakePDF{}, email)

	result, err := svc.Submit(context.Background(), submittableApplication())

	require.NoError(t, err, "transport errors must not surface as submission failure")
	assert.True(t, result.Submitted)
	assert.False(t, result.EmailConfirmed)
}
