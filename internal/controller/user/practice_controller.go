package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/service"
)

// PracticeController serves the session lifecycle and answer submission.
type PracticeController struct {
	sessions service.SessionTracker
	answers  service.AnswerService
}

func NewPracticeController(sessions service.SessionTracker, answers service.AnswerService) *PracticeController {
	return &PracticeController{sessions: sessions, answers: answers}
}

func (c *PracticeController) RegisterRoutes(protected *gin.RouterGroup) {
	for _, base := range []string{"/sessions", "/study-sessions"} {
		protected.POST(base, c.StartSession)
		protected.PUT(base+"/:id", c.CompleteSession)
	}
	protected.POST("/questions/:id/answer", c.SubmitAnswer)
}

// StartSession godoc
// @Summary Open a practice session
// @Tags Practice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body dto.StartSessionRequest true "Session to open"
// @Success 200 {object} dto.StartSessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sessions [post]
func (c *PracticeController) StartSession(ctx *gin.Context) {
	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	id, err := c.sessions.Open(ctx.Request.Context(), middleware.StudentID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StartSessionResponse{SessionID: id})
}

// CompleteSession godoc
// @Summary Close a practice session with its totals
// @Tags Practice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param summary body dto.CompleteSessionRequest true "Session totals"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [put]
func (c *PracticeController) CompleteSession(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CompleteSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	if err := c.sessions.Close(ctx.Request.Context(), middleware.StudentID(ctx), id, req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// SubmitAnswer godoc
// @Summary Submit an answer to a question
// @Tags Practice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.AnswerResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id}/answer [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.answers.SubmitAnswer(ctx.Request.Context(), middleware.StudentID(ctx), id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
