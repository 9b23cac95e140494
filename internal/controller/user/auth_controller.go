package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/register", c.Register)
	public.POST("/auth/login", c.Login)
	protected.GET("/student/profile", c.Profile)
}

// Register godoc
// @Summary Register a student account
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "New account"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields or username/email taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Profile godoc
// @Summary Current student's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StudentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	resp, err := c.authService.Profile(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
