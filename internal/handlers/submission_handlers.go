package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"github.com/lettingshub/app-tenancy/internal/services"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SubmitApplication godoc
// @Summary Submit the application
// @Description Validates every step, snapshots the session, persists the application, and fans out the confirmation and admin notification emails. Email failures degrade the message but never fail the submission; a persistence failure returns the session to idle so the entered data can be resubmitted.
// @Tags form
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SubmissionResult "Submission outcome"
// @Failure 400 {object} ValidationResponse "A step fails validation; the first failing step and its messages"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Submission already in progress or completed"
// @Failure 500 {object} ErrorResponse "Submission failed; session returned to idle"
// @Router /applications/sessions/{id}/submit [post]
func SubmitApplication(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitApplication")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}

	if err := submissionStateError(session); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}

	if services.SubmissionServiceInstance == nil {
		logger.Error("submission service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Submission service unavailable"})
		return
	}

	// Every step is re-validated here: the orchestrator trusts its caller to
	// gate entry, and for the HTTP surface this handler is that caller.
	_, validationSpan := utils.TraceInputValidation(ctx, "submission_gate", "all_steps")
	for step := 1; step <= form.TotalSteps; step++ {
		if errs := session.Errors(step); len(errs) > 0 {
			validationSpan.End()
			logger.Info("submission blocked by validation", zap.Int("step", step))
			c.JSON(http.StatusBadRequest, ValidationResponse{
				Step:   step,
				Valid:  false,
				Errors: errs,
			})
			return
		}
	}
	validationSpan.End()

	// The payload is snapshotted here; edits racing the submission never
	// reach the persisted application.
	app := session.Snapshot()
	span.SetAttributes(attribute.Int("applicant_count", len(app.Applicants)))

	session.Submission = form.SubmissionSubmitting
	if !saveSession(c, ctx, logger, session) {
		return
	}

	submitCtx, submitSpan := utils.TraceBusinessLogic(ctx, "submission")
	result, err := services.SubmissionServiceInstance.Submit(submitCtx, app)
	submitSpan.End()

	if err != nil {
		// Back to idle: the field model is retained and the user can retry
		// without re-entering anything.
		session.Submission = form.SubmissionIdle
		if !saveSession(c, ctx, logger, session) {
			return
		}
		logger.Error("submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Submission failed, please try again"})
		return
	}

	session.Submission = form.SubmissionSubmitted
	session.ApplicationID = result.ApplicationID
	if !saveSession(c, ctx, logger, session) {
		return
	}

	logger.Info("application submitted",
		zap.String("application_id", result.ApplicationID),
		zap.Bool("email_confirmed", result.EmailConfirmed))

	c.JSON(http.StatusOK, result)
}
