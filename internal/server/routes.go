// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"skillsync-backend/internal/auth"
	"skillsync-backend/internal/controller/application"
	"skillsync-backend/internal/controller/company"
	"skillsync-backend/internal/controller/file"
	"skillsync-backend/internal/controller/job"
	"skillsync-backend/internal/controller/user"
	"skillsync-backend/internal/middleware"
	"skillsync-backend/internal/model"
)

const uploadSizeLimit = 10 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB, s.Mailer)
	jobCtrl := job.NewJobController(s.DB)
	appCtrl := application.NewApplicationController(s.DB, s.Files, s.Mailer)
	companyCtrl := company.NewCompanyController(s.DB, s.Files)
	userCtrl := user.NewUserController(s.DB, s.Files)
	fileCtrl := file.NewFileController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.Use(middleware.EnvRateLimitMiddleware())
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		// Public job browsing does not need a token.
		v1.GET("public-jobs", jobCtrl.GetPublicJobs)
		v1.GET("files/:id", fileCtrl.GetFile)

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			needAuth.GET("profile", userCtrl.GetProfile)
			needAuth.PUT("profile", middleware.SizeLimit(uploadSizeLimit), userCtrl.UpdateProfile)

			needAuth.GET("recommendations", jobCtrl.GetRecommendations)
			needAuth.GET("stats", jobCtrl.GetStats)
			needAuth.GET("jobs/:id", jobCtrl.GetJobByID)

			// Candidate endpoints
			needCandidate := needAuth.Group("")
			{
				needCandidate.Use(middleware.CheckRole(model.RoleCandidate))
				needCandidate.GET("saved-jobs", jobCtrl.GetSavedJobs)
				needCandidate.PUT("jobs/:id/save", jobCtrl.ToggleSavedJob)
				needCandidate.POST("apply", middleware.SizeLimit(uploadSizeLimit), appCtrl.Apply)
				needCandidate.GET("applications", appCtrl.GetMyApplications)
				needCandidate.DELETE("applications/:id", appCtrl.Withdraw)
			}

			// Recruiter endpoints
			needRecruiter := needAuth.Group("")
			{
				needRecruiter.Use(middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin))
				needRecruiter.GET("my-posted-jobs", jobCtrl.GetMyPostedJobs)
				needRecruiter.POST("jobs", jobCtrl.CreateJob)
				needRecruiter.PUT("jobs/:id", jobCtrl.UpdateJob)
				needRecruiter.DELETE("jobs/:id", jobCtrl.DeleteJob)
				needRecruiter.GET("jobs/:id/applications", appCtrl.GetJobApplications)
				needRecruiter.PUT("applications/:id/status", appCtrl.UpdateApplicationStatus)

				companyRoute := needRecruiter.Group("/companies")
				{
					companyRoute.GET("", companyCtrl.GetCompanies)
					companyRoute.POST("", middleware.SizeLimit(uploadSizeLimit), companyCtrl.CreateCompany)
					companyRoute.GET(":id", companyCtrl.GetCompanyByID)
					companyRoute.PUT(":id", middleware.SizeLimit(uploadSizeLimit), companyCtrl.UpdateCompany)
					companyRoute.DELETE(":id", companyCtrl.DeleteCompany)
				}
			}

			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.GET("users", userCtrl.AdminGetAllUsers)
				needAdmin.DELETE("users/:id", userCtrl.AdminDeleteUser)
				needAdmin.GET("jobs", jobCtrl.AdminGetAllJobs)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
