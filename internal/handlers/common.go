package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/services"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// SessionResponse is the form session envelope returned by session endpoints.
type SessionResponse struct {
	Session  *form.Session `json:"session"`
	Progress float64       `json:"progress"`
}

// ValidationResponse reports the validator outcome for one step. Validation
// failures are data, not HTTP errors.
type ValidationResponse struct {
	Step   int      `json:"step"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// NavigationResponse reports whether a navigation request moved the session
// and, when blocked, why.
type NavigationResponse struct {
	Moved    bool          `json:"moved"`
	Errors   []string      `json:"errors,omitempty"`
	Session  *form.Session `json:"session"`
	Progress float64       `json:"progress"`
}

func sessionResponse(s *form.Session) SessionResponse {
	return SessionResponse{Session: s, Progress: s.Progress()}
}

// bindInput parses the request body into input, writing the 400 response
// itself on failure.
func bindInput(c *gin.Context, ctx context.Context, inputType string, input interface{}) bool {
	_, span := utils.TraceInputParsing(ctx, inputType)
	defer span.End()

	if err := c.ShouldBindJSON(input); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// loadSession fetches the session for the :id route param, writing the error
// response itself when the session cannot be served.
func loadSession(c *gin.Context, ctx context.Context, logger *zap.Logger) (*form.Session, bool) {
	id := c.Param("id")

	loadCtx, span := utils.TraceSessionLoad(ctx, id)
	defer span.End()

	if services.SessionServiceInstance == nil {
		logger.Error("session service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Session service unavailable"})
		return nil, false
	}

	session, err := services.SessionServiceInstance.Get(loadCtx, id)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Form session not found or expired"})
			return nil, false
		}
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"session_id": id})
		logger.Error("failed to load form session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load form session"})
		return nil, false
	}
	return session, true
}

// saveSession persists the session, writing the error response on failure.
func saveSession(c *gin.Context, ctx context.Context, logger *zap.Logger, session *form.Session) bool {
	saveCtx, span := utils.TraceSessionSave(ctx, session.ID)
	defer span.End()

	if err := services.SessionServiceInstance.Save(saveCtx, session); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"session_id": session.ID})
		logger.Error("failed to save form session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save form session"})
		return false
	}
	return true
}

// submissionStateError reports why a session is no longer editable, or nil
// while it is still idle.
func submissionStateError(session *form.Session) error {
	switch session.Submission {
	case form.SubmissionSubmitting:
		return models.ErrSubmissionInFlight
	case form.SubmissionSubmitted:
		return models.ErrAlreadySubmitted
	}
	return nil
}

// guardMutable rejects edits to sessions that have entered the submission
// pipeline. Stored applications are immutable, so the session that produced
// one is too.
func guardMutable(c *gin.Context, session *form.Session) bool {
	if err := submissionStateError(session); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}
