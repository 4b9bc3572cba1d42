package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Jobs         *JobHandler
	Accounts     *AccountHandler
	Logger       *zap.Logger
	CORSAllowAll bool
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = cfg.CORSAllowAll
	if !cfg.CORSAllowAll {
		corsConfig.AllowOrigins = []string{"http://localhost", "capacitor://localhost"}
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	optional := Session(cfg.Accounts.Accounts, false)
	required := Session(cfg.Accounts.Accounts, true)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		// Auth Routes
		api.POST("/auth/register", cfg.Accounts.Register)
		api.POST("/auth/login", cfg.Accounts.Login)
		api.POST("/auth/logout", required, cfg.Accounts.Logout)

		// Job Routes
		api.GET("/jobs", optional, cfg.Jobs.ListJobs)
		api.GET("/jobs/:id", optional, cfg.Jobs.GetJob)
		api.GET("/jobs/:id/skills", cfg.Jobs.ExtractSkills)
		api.GET("/jobs/:id/edit", required, cfg.Jobs.EditForm)
		api.POST("/jobs", required, cfg.Jobs.CreateJob)
		api.PUT("/jobs/:id", required, cfg.Jobs.UpdateJob)
		api.DELETE("/jobs/:id", required, cfg.Jobs.DeleteJob)
		api.POST("/jobs/describe", required, cfg.Jobs.DescribeJob)
		api.POST("/jobs/extract", required, cfg.Jobs.ParseJob)

		// Profile Routes
		me := api.Group("/me", required)
		me.GET("", cfg.Accounts.Profile)
		me.PUT("", cfg.Accounts.UpdateProfile)
		me.PUT("/password", cfg.Accounts.ChangePassword)
		me.PUT("/theme", cfg.Accounts.SetTheme)
		me.GET("/history", cfg.Accounts.History)
		me.GET("/postings", cfg.Accounts.Postings)
		me.GET("/dashboard", cfg.Accounts.Dashboard)
	}
	return r, nil
}
