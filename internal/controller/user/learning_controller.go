package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/service"
)

// LearningController serves goals, the knowledge graph and learning paths.
type LearningController struct {
	goals     service.GoalService
	knowledge service.KnowledgeGraphService
	paths     service.LearningPathService
}

func NewLearningController(goals service.GoalService, knowledge service.KnowledgeGraphService, paths service.LearningPathService) *LearningController {
	return &LearningController{goals: goals, knowledge: knowledge, paths: paths}
}

func (c *LearningController) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/learning-goals", c.ListGoals)
	protected.POST("/learning-goals", c.CreateGoal)
	protected.GET("/knowledge-graph/:subject", c.KnowledgeGraph)
	protected.GET("/learning-path/:subject", c.LearningPath)
}

// ListGoals godoc
// @Summary List learning goals, newest first
// @Tags Learning
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LearningGoalResponse
// @Router /learning-goals [get]
func (c *LearningController) ListGoals(ctx *gin.Context) {
	goals, err := c.goals.ListGoals(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, goals)
}

// CreateGoal godoc
// @Summary Create a learning goal
// @Tags Learning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goal body dto.CreateGoalRequest true "Goal"
// @Success 200 {object} dto.CreateGoalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /learning-goals [post]
func (c *LearningController) CreateGoal(ctx *gin.Context) {
	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	id, err := c.goals.CreateGoal(ctx.Request.Context(), middleware.StudentID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CreateGoalResponse{GoalID: id})
}

// KnowledgeGraph godoc
// @Summary Knowledge graph of a subject with the student's mastery
// @Tags Learning
// @Produce json
// @Security BearerAuth
// @Param subject path string true "Subject name"
// @Success 200 {array} dto.KnowledgeNodeResponse
// @Router /knowledge-graph/{subject} [get]
func (c *LearningController) KnowledgeGraph(ctx *gin.Context) {
	nodes, err := c.knowledge.Graph(ctx.Request.Context(), middleware.StudentID(ctx), ctx.Param("subject"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, nodes)
}

// LearningPath godoc
// @Summary Active learning path for a subject, created on first request
// @Tags Learning
// @Produce json
// @Security BearerAuth
// @Param subject path string true "Subject name"
// @Success 200 {object} dto.LearningPathResponse
// @Router /learning-path/{subject} [get]
func (c *LearningController) LearningPath(ctx *gin.Context) {
	path, err := c.paths.Path(ctx.Request.Context(), middleware.StudentID(ctx), ctx.Param("subject"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, path)
}
