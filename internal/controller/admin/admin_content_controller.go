package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminContentController struct {
	adminService service.AdminContentService
}

func NewAdminContentController(adminService service.AdminContentService) *AdminContentController {
	return &AdminContentController{adminService: adminService}
}

// RegisterRoutes mounts the handlers on a group already guarded by the admin key.
func (c *AdminContentController) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/subjects", c.CreateSubject)
	admin.POST("/subjects/:id/topics", c.CreateTopic)
	admin.POST("/topics/:id/questions", c.CreateQuestion)
	admin.PUT("/students/:id/premium", c.SetPremium)
}

// CreateSubject godoc
// @Summary (Admin) Create a subject
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param subject body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate name"
// @Router /admin/subjects [post]
func (c *AdminContentController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.adminService.CreateSubject(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Interface("requestPayload", req).Msg("Admin CreateSubject: Service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CreateTopic godoc
// @Summary (Admin) Add a topic to a subject
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "Subject ID"
// @Param topic body dto.CreateTopicRequest true "Topic"
// @Success 201 {object} dto.TopicResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/subjects/{id}/topics [post]
func (c *AdminContentController) CreateTopic(ctx *gin.Context) {
	subjectID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.adminService.CreateTopic(ctx.Request.Context(), subjectID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to a topic
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "Topic ID"
// @Param question body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /admin/topics/{id}/questions [post]
func (c *AdminContentController) CreateQuestion(ctx *gin.Context) {
	topicID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.adminService.CreateQuestion(ctx.Request.Context(), topicID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SetPremium godoc
// @Summary (Admin) Toggle a student's premium quota for a feature
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Student ID"
// @Param premium body dto.SetPremiumRequest true "Feature and flag"
// @Success 200 {object} dto.UsageStatusResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id}/premium [put]
func (c *AdminContentController) SetPremium(ctx *gin.Context) {
	var req dto.SetPremiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.adminService.SetPremium(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
