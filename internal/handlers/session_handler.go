package handlers

import (
	"net/http"

	"github.com/Rtx09x/Meow-Mocks/internal/services"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// ListTests lists the test definitions available in the tests directory
// @Summary List tests
// @Tags tests
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.TestSummary}
// @Failure 500 {object} ErrorResponse
// @Router /tests [get]
func (h *SessionHandler) ListTests(c *gin.Context) {
	tests, err := h.sessionService.ListTests(h.requestContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Tests retrieved", tests)
}

// StartSession loads a test and starts a timed session for the candidate
// @Summary Start exam session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body services.StartSessionRequest true "Test source and candidate"
// @Success 201 {object} SuccessResponse{data=models.SessionView}
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Starting exam session", "test_source", req.TestSource, "roll_number", req.Candidate.RollNumber)

	view, err := h.sessionService.Start(h.requestContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Exam session started", view)
}

// GetSession returns the current exam screen
// @Summary Get exam session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.SessionView}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Get(h.requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam session retrieved", view)
}

// GetSummary counts answers by status before submission
func (h *SessionHandler) GetSummary(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	summary, err := h.sessionService.Summary(h.requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Submission summary", summary)
}

// PerformAction applies one candidate action
// @Summary Perform exam action
// @Description select, toggle, clear, mark_review, save_next, navigate or switch_subject
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param action body services.ActionRequest true "Action"
// @Success 200 {object} SuccessResponse{data=models.SessionView}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/actions [post]
func (h *SessionHandler) PerformAction(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.ActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	view, err := h.sessionService.PerformAction(h.requestContext(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Action applied", view)
}

// SubmitSession submits the session and returns the graded result
// @Summary Submit exam session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.Submission}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Submitting exam session", "session_id", id)

	sub, err := h.sessionService.Submit(h.requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam session submitted", sub)
}
