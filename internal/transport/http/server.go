package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "varboard/internal/app"
	"varboard/internal/bootstrap"
	"varboard/internal/repository"
	"varboard/internal/transport/http/handler"
	"varboard/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.Server.GinMode)
	router := gin.New()
	// variable names may contain escaped slashes
	router.UseRawPath = true
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.DB)
	projectRepo := repository.NewProjectRepository(app.DB)
	tableRepo := repository.NewTableRepository(app.DB)
	variableRepo := repository.NewVariableRepository(app.DB)
	auditRepo := repository.NewAuditRepository(app.DB)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	projectService := appsvc.NewProjectService(projectRepo, tableRepo, variableRepo, app.Publisher, app.Log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService, auditRepo)
	accessHandler := handler.NewAccessHandler(projectService)
	requireUser := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	api := router.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/access", accessHandler.Handle)
	api.GET("/me", requireUser, authHandler.Me)

	projects := api.Group("/projects")
	projects.Use(requireUser)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:projectID", projectHandler.Get)
	projects.PUT("/:projectID", projectHandler.Rename)
	projects.DELETE("/:projectID", projectHandler.Delete)
	projects.GET("/:projectID/audit", projectHandler.Audit)

	projects.GET("/:projectID/tables", projectHandler.ListTables)
	projects.POST("/:projectID/tables", projectHandler.CreateTable)
	projects.PUT("/:projectID/tables/:tableID", projectHandler.RenameTable)
	projects.DELETE("/:projectID/tables/:tableID", projectHandler.DeleteTable)

	projects.GET("/:projectID/tables/:tableID/variables", projectHandler.ListVariables)
	projects.POST("/:projectID/tables/:tableID/variables", projectHandler.CreateVariable)
	projects.PUT("/:projectID/tables/:tableID/variables/:name", projectHandler.UpdateVariable)
	projects.DELETE("/:projectID/tables/:tableID/variables/:name", projectHandler.DeleteVariable)

	return router
}
