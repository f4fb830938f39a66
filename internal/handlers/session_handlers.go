package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"github.com/lettingshub/app-tenancy/internal/services"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CreateFormSession godoc
// @Summary Start a new tenancy application form session
// @Description Creates a fresh form session on step 1 with a single empty applicant.
// @Tags form
// @Produce json
// @Success 201 {object} SessionResponse "Session created"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions [post]
func CreateFormSession(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateFormSession")
	defer span.End()

	logger := observability.Logger()

	if services.SessionServiceInstance == nil {
		logger.Error("session service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Session service unavailable"})
		return
	}

	session, err := services.SessionServiceInstance.Create(ctx)
	if err != nil {
		logger.Error("failed to create form session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create form session"})
		return
	}

	span.SetAttributes(attribute.String("session_id", session.ID))
	c.JSON(http.StatusCreated, sessionResponse(session))
}

// GetFormSession godoc
// @Summary Fetch a form session
// @Description Returns the current state of a form session, including step and progress.
// @Tags form
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse "Session state"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id} [get]
func GetFormSession(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetFormSession")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session))
}

// UpdatePropertyPreferences godoc
// @Summary Update the property preferences section
// @Description Replaces the property preferences on the session. Postcodes are normalized when valid.
// @Tags form
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param preferences body models.PropertyPreferencesInput true "Property preferences"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/property [put]
func UpdatePropertyPreferences(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdatePropertyPreferences")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.PropertyPreferencesInput
	if !bindInput(c, ctx, "property_preferences", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	prefs := input.ToPreferences()
	if utils.ValidatePostcode(prefs.Postcode) {
		prefs.Postcode = utils.NormalizePostcode(prefs.Postcode)
	}
	session.Preferences = prefs

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// UpdateAdditionalDetails godoc
// @Summary Update the household details section
// @Description Replaces the household details. The pets and children flags are required so the step counts as answered.
// @Tags form
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param details body models.AdditionalDetailsInput true "Household details"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/details [put]
func UpdateAdditionalDetails(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateAdditionalDetails")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.AdditionalDetailsInput
	if !bindInput(c, ctx, "additional_details", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	details := input.ToDetails()
	session.Details = &details

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// UpdateDataSharing godoc
// @Summary Update the data sharing consents
// @Tags form
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param sharing body models.DataSharingInput true "Data sharing consents"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/sharing [put]
func UpdateDataSharing(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateDataSharing")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.DataSharingInput
	if !bindInput(c, ctx, "data_sharing", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	session.Sharing = input.ToDataSharing()

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// UpdateSignature godoc
// @Summary Update the signature and terms acceptance
// @Tags form
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param signature body models.SignatureInput true "Signature and terms"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/signature [put]
func UpdateSignature(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateSignature")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.SignatureInput
	if !bindInput(c, ctx, "signature", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	session.Signature = input.Signature
	session.TermsAccepted = input.TermsAccepted

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// GetStepValidation godoc
// @Summary Validate a form step
// @Description Runs the step validator and returns the message list. A failing step is a 200 response; validation results are data, not errors.
// @Tags form
// @Produce json
// @Param id path string true "Session ID"
// @Param step query int false "Step to validate (default: current step)" minimum(1) maximum(6)
// @Success 200 {object} ValidationResponse "Validation result"
// @Failure 400 {object} ErrorResponse "Invalid step parameter"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/validation [get]
func GetStepValidation(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetStepValidation")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}

	step := session.CurrentStep
	if raw := c.Query("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > form.TotalSteps {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid step parameter"})
			return
		}
		step = parsed
	}
	utils.AddSpanAttribute(span, "validation.step", step)

	errs := session.Errors(step)
	c.JSON(http.StatusOK, ValidationResponse{
		Step:   step,
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

// GoToNextStep godoc
// @Summary Advance the session to the next step
// @Description Validates the current step first. A failing validation leaves the session in place and returns the message list; it is not an HTTP error.
// @Tags form
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} NavigationResponse "Navigation result"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/next [post]
func GoToNextStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GoToNextStep")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	step := strconv.Itoa(session.CurrentStep)
	_, validationSpan := utils.TraceBusinessLogic(ctx, "step_validation")
	errs := session.Errors(session.CurrentStep)
	validationSpan.End()

	if len(errs) > 0 {
		observability.StepValidations.WithLabelValues(step, "fail").Inc()
		c.JSON(http.StatusOK, NavigationResponse{
			Moved:    false,
			Errors:   errs,
			Session:  session,
			Progress: session.Progress(),
		})
		return
	}
	observability.StepValidations.WithLabelValues(step, "pass").Inc()

	session.GoToNext()
	if !saveSession(c, ctx, logger, session) {
		return
	}

	c.JSON(http.StatusOK, NavigationResponse{
		Moved:    true,
		Session:  session,
		Progress: session.Progress(),
	})
}

// GoToPreviousStep godoc
// @Summary Move the session back one step
// @Description Moves back without validation; step 1 is the floor.
// @Tags form
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} NavigationResponse "Navigation result"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/previous [post]
func GoToPreviousStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GoToPreviousStep")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	session.GoToPrevious()
	if !saveSession(c, ctx, logger, session) {
		return
	}

	c.JSON(http.StatusOK, NavigationResponse{
		Moved:    true,
		Session:  session,
		Progress: session.Progress(),
	})
}

// GetFormSchema godoc
// @Summary Get the form field schema
// @Description Returns the per-step field descriptors driving the form UI.
// @Tags form
// @Produce json
// @Success 200 {object} map[int][]form.FieldDescriptor "Field descriptors keyed by step"
// @Router /form/schema [get]
func GetFormSchema(c *gin.Context) {
	c.JSON(http.StatusOK, form.Schema())
}
