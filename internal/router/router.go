// Package router mounts every controller under /api/v1.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/config"
	adminctrl "github.com/lshigami/k12tutor/internal/controller/admin"
	userctrl "github.com/lshigami/k12tutor/internal/controller/user"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/service"
	"go.uber.org/fx"
)

const APIPrefix = "/api/v1"

// Controllers is filled by fx; tests build it by hand.
type Controllers struct {
	fx.In

	Auth       *userctrl.AuthController
	Catalog    *userctrl.CatalogController
	Practice   *userctrl.PracticeController
	Homework   *userctrl.HomeworkController
	Diagnostic *userctrl.DiagnosticController
	Learning   *userctrl.LearningController
	Pet        *userctrl.PetController
	Admin      *adminctrl.AdminContentController
}

func Register(engine *gin.Engine, cfg *config.Config, tokens service.TokenService, ctrls Controllers) {
	public := engine.Group(APIPrefix)
	protected := engine.Group(APIPrefix, middleware.RequireStudent(tokens))
	admin := engine.Group(APIPrefix+"/admin", middleware.RequireAdminKey(cfg.Server.AdminAPIKey))

	ctrls.Auth.RegisterRoutes(public, protected)
	ctrls.Catalog.RegisterRoutes(public, protected)
	ctrls.Pet.RegisterRoutes(public, protected)
	ctrls.Practice.RegisterRoutes(protected)
	ctrls.Homework.RegisterRoutes(protected)
	ctrls.Diagnostic.RegisterRoutes(protected)
	ctrls.Learning.RegisterRoutes(protected)
	ctrls.Admin.RegisterRoutes(admin)
}
