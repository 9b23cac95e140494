package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/service"
)

type DiagnosticController struct {
	diagnosticService service.DiagnosticService
}

func NewDiagnosticController(diagnosticService service.DiagnosticService) *DiagnosticController {
	return &DiagnosticController{diagnosticService: diagnosticService}
}

func (c *DiagnosticController) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/diagnostic-test", c.Start)
	protected.POST("/diagnostic-test/:id/submit", c.Submit)
}

// Start godoc
// @Summary Start a diagnostic test
// @Tags Diagnostic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test body dto.StartDiagnosticRequest true "Subject and test type"
// @Success 200 {object} dto.StartDiagnosticResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /diagnostic-test [post]
func (c *DiagnosticController) Start(ctx *gin.Context) {
	var req dto.StartDiagnosticRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.diagnosticService.Start(ctx.Request.Context(), middleware.StudentID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Submit diagnostic responses
// @Tags Diagnostic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diagnostic test ID"
// @Param responses body dto.SubmitDiagnosticRequest true "Graded responses"
// @Success 200 {object} dto.DiagnosticResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Diagnostic test not found"
// @Router /diagnostic-test/{id}/submit [post]
func (c *DiagnosticController) Submit(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubmitDiagnosticRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.diagnosticService.Submit(ctx.Request.Context(), middleware.StudentID(ctx), id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
