package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"go.uber.org/zap"
)

// ApplicationStore persists a submitted application and returns its
// identifier. No partial-write state is visible to the orchestrator.
type ApplicationStore interface {
	Persist(ctx context.Context, app *models.Application) (string, error)
}

// SubmissionResult is the user-visible outcome of one submission attempt.
type SubmissionResult struct {
	Submitted      bool   `json:"submitted"`
	ApplicationID  string `json:"application_id,omitempty"`
	EmailConfirmed bool   `json:"email_confirmed"`
	Message        string `json:"message"`
}

// SubmissionService coordinates persistence and notification fan-out at
// submission time. Persistence decides the user-visible outcome; email
// delivery only degrades the message.
type SubmissionService struct {
	store      ApplicationStore
	pdf        PDFRenderer
	email      EmailSender
	adminEmail string
	logger     *zap.Logger
}

// NewSubmissionService creates a new submission service instance
func NewSubmissionService(store ApplicationStore, pdf PDFRenderer, email EmailSender, adminEmail string, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		store:      store,
		pdf:        pdf,
		email:      email,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Global submission service instance
var SubmissionServiceInstance *SubmissionService

// InitSubmissionService initializes the global submission service instance
func InitSubmissionService(email EmailSender) {
	logger := zap.L().Named("submission_service")

	SubmissionServiceInstance = NewSubmissionService(
		ApplicationServiceInstance,
		NewPDFService(),
		email,
		config.AppConfig.AdminEmail,
		logger,
	)

	logger.Info("submission service initialized")
}

// Submit persists the application, then fans out the applicant confirmation
// and the admin notification concurrently and waits for both. The app
// argument must be a snapshot: the orchestrator never re-reads mutable form
// state once submission has begun.
func (s *SubmissionService) Submit(ctx context.Context, app *models.Application) (*SubmissionResult, error) {
	id, err := s.store.Persist(ctx, app)
	if err != nil {
		s.logger.Error("submission persistence failed", zap.Error(err))
		observability.SubmissionOutcomes.WithLabelValues("persistence_failed").Inc()
		return nil, fmt.Errorf("%w: %v", models.ErrPersistenceFailed, err)
	}
	app.ID = id

	// Notifications are sent only for persisted applications, and must
	// outlive the submitting request.
	notifyCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	var confirmationOK, adminOK bool

	wg.Add(2)
	go func() {
		defer wg.Done()
		confirmationOK = s.sendConfirmation(notifyCtx, app)
	}()
	go func() {
		defer wg.Done()
		adminOK = s.sendAdminNotification(notifyCtx, app)
	}()
	wg.Wait()

	// Admin notification failure never reaches the submitting user.
	if !adminOK {
		s.logger.Warn("admin notification not delivered",
			zap.String("application_id", id))
	}

	result := &SubmissionResult{
		Submitted:      true,
		ApplicationID:  id,
		EmailConfirmed: confirmationOK,
	}
	if confirmationOK {
		result.Message = "Application submitted. A confirmation email is on its way."
		observability.SubmissionOutcomes.WithLabelValues("submitted").Inc()
	} else {
		result.Message = "Application submitted, but we could not confirm the confirmation email. Please check your inbox later."
		observability.SubmissionOutcomes.WithLabelValues("submitted_email_unconfirmed").Inc()
	}

	_ = utils.LogActivity(ctx, utils.ActivityContext{Actor: "applicant"}, id, utils.ActivityActionSubmit,
		fmt.Sprintf("%d applicant(s), property %s", len(app.Applicants), app.Preferences.Postcode))

	return result, nil
}

// sendConfirmation emails the primary applicant a copy of their submission.
func (s *SubmissionService) sendConfirmation(ctx context.Context, app *models.Application) bool {
	primary := app.PrimaryApplicant()
	if primary == nil || primary.Email == "" {
		s.logger.Warn("no primary applicant email for confirmation",
			zap.String("application_id", app.ID))
		return false
	}

	msg := EmailMessage{
		To:      primary.Email,
		Subject: "Your tenancy application has been received",
		HTML: fmt.Sprintf("<p>Dear %s,</p><p>Thank you for your tenancy application for %s. A copy is attached. The agency will be in touch to confirm the next steps.</p>",
			primary.FirstName, app.Preferences.Address),
	}
	s.attachReport(&msg, app)

	return s.deliver(ctx, "confirmation", app.ID, msg)
}

// sendAdminNotification emails staff about a new submission.
func (s *SubmissionService) sendAdminNotification(ctx context.Context, app *models.Application) bool {
	primary := app.PrimaryApplicant()
	name := ""
	if primary != nil {
		name = primary.FirstName + " " + primary.LastName
	}

	msg := EmailMessage{
		To:      s.adminEmail,
		Subject: fmt.Sprintf("New tenancy application: %s", app.Preferences.Address),
		HTML: fmt.Sprintf("<p>A new application (%d applicant(s), primary %s) has been submitted for %s, %s. The full report is attached.</p>",
			len(app.Applicants), name, app.Preferences.Address, app.Preferences.Postcode),
	}
	s.attachReport(&msg, app)

	return s.deliver(ctx, "admin", app.ID, msg)
}

// attachReport renders the application PDF onto the message. Render failure
// means the email goes out without an attachment; it is never fatal.
func (s *SubmissionService) attachReport(msg *EmailMessage, app *models.Application) {
	report, err := s.pdf.Render(app)
	if err != nil {
		s.logger.Warn("application pdf unavailable for email",
			zap.String("application_id", app.ID),
			zap.Error(err))
		return
	}
	msg.Attachment = report
	msg.AttachmentName = "tenancy-application.pdf"
}

func (s *SubmissionService) deliver(ctx context.Context, kind, applicationID string, msg EmailMessage) bool {
	ok, err := s.email.Send(ctx, msg)
	if err != nil {
		s.logger.Warn("email send errored",
			zap.String("kind", kind),
			zap.String("application_id", applicationID),
			zap.Error(err))
	}
	if ok {
		observability.EmailDeliveries.WithLabelValues(kind, "sent").Inc()
		_ = utils.LogActivity(ctx, utils.ActivityContext{Actor: "system"}, applicationID, utils.ActivityActionEmailSent, kind)
	} else {
		observability.EmailDeliveries.WithLabelValues(kind, "failed").Inc()
		_ = utils.LogActivity(ctx, utils.ActivityContext{Actor: "system"}, applicationID, utils.ActivityActionEmailFailed, kind)
	}
	return ok
}
