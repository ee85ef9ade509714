package handlers

import (
	"fmt"
	"net/http"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
	"github.com/Rtx09x/Meow-Mocks/internal/services"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

// ListResults lists submitted results
// @Summary List results
// @Tags results
// @Produce json
// @Param roll_number query string false "Roll number"
// @Param test_title query string false "Test title (partial match)"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Param sort_by query string false "submitted_at, score, test_title or roll_number"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} SuccessResponse{data=services.ResultListResponse}
// @Failure 400 {object} ErrorResponse
// @Router /results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	var filters repositories.ResultFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, codeValidation, "Invalid query parameters", err, err.Error())
		return
	}

	resp, err := h.resultService.List(h.requestContext(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Results retrieved", resp)
}

// GetResult returns the full graded submission
// @Summary Get result
// @Tags results
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=models.Submission}
// @Failure 404 {object} ErrorResponse
// @Router /results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	sub, err := h.resultService.Get(h.requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Result retrieved", sub)
}

// AddNote stores a review note on one question
// @Summary Add review note
// @Tags results
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Question index"
// @Param note body services.NoteRequest true "Note"
// @Success 200 {object} SuccessResponse{data=models.QuestionDetail}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /results/{id}/notes/{index} [put]
func (h *ResultHandler) AddNote(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	index, ok := ParseIndexParam(c, "index")
	if !ok {
		return
	}

	var req services.NoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	detail, err := h.resultService.AddNote(h.requestContext(c), id, index, req.Note)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Note saved", detail)
}

// GetAnalysis returns the timing analysis
func (h *ResultHandler) GetAnalysis(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	analysis, err := h.resultService.Analysis(h.requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Timing analysis", analysis)
}

// ExportResult downloads the result as JSON or XLSX
// @Summary Export result
// @Tags results
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Param format query string false "json (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /results/{id}/export [get]
func (h *ResultHandler) ExportResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	format := models.ExportFormat(c.DefaultQuery("format", string(models.ExportJSON)))
	file, err := h.resultService.Export(h.requestContext(c), id, format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// DeleteResult removes a stored result
// @Summary Delete result
// @Tags results
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /results/{id} [delete]
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.resultService.Delete(h.requestContext(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Exam result deleted", "session_id", id)
	c.Status(http.StatusNoContent)
}
