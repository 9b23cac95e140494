package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/service"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func (c *CatalogController) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/subjects", c.ListSubjects)
	public.GET("/subjects/:id/topics", c.ListTopics)
	protected.GET("/topics/:id/questions", c.TopicQuestions)
	protected.GET("/exams/:type/questions", c.ExamQuestions)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.catalogService.ListSubjects(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}

// ListTopics godoc
// @Summary List the topics of a subject
// @Tags Catalog
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {array} dto.TopicResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /subjects/{id}/topics [get]
func (c *CatalogController) ListTopics(ctx *gin.Context) {
	subjectID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	topics, err := c.catalogService.ListTopics(ctx.Request.Context(), subjectID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, topics)
}

// TopicQuestions godoc
// @Summary Random practice questions for a topic
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param difficulty query int false "Difficulty level"
// @Param examType query string false "Exam type, e.g. SAT"
// @Param limit query int false "Maximum questions (default 10)"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /topics/{id}/questions [get]
func (c *CatalogController) TopicQuestions(ctx *gin.Context) {
	topicID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var query dto.QuestionQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	questions, err := c.catalogService.TopicQuestions(ctx.Request.Context(), topicID, query)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// ExamQuestions godoc
// @Summary Random questions for an exam simulation
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param type path string true "Exam type (sat, act, ap, state, general)"
// @Param subject query int false "Subject ID"
// @Param limit query int false "Maximum questions (default 20)"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /exams/{type}/questions [get]
func (c *CatalogController) ExamQuestions(ctx *gin.Context) {
	var query dto.ExamQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	questions, err := c.catalogService.ExamQuestions(ctx.Request.Context(), ctx.Param("type"), query)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
