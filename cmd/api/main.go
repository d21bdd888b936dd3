package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"havenagent/internal/config"
	"havenagent/internal/database"
	"havenagent/internal/middleware"
	"havenagent/internal/modules/admin"
	"havenagent/internal/modules/auth"
	"havenagent/internal/modules/notify"
	"havenagent/internal/modules/onboarding"
	jwtsvc "havenagent/internal/pkg/jwt"
	"havenagent/internal/repository"
	"havenagent/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db,
		&repository.UserModel{},
		&repository.ProfileModel{},
		&repository.OnboardingModel{},
		&repository.DocumentModel{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	onboardingRepo := repository.NewOnboardingRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	docStore := storage.NewLocalStore(cfg.UploadDir)
	hub := notify.NewHub()

	mailer := auth.NewDevConsoleMailer(cfg.MailerEnabled)
	authService := auth.NewService(
		userRepo, profileRepo, onboardingRepo, j, mailer,
		cfg.ConfirmPepper, cfg.ConfirmCodeTTL,
	)
	authHandler := auth.NewHandler(authService)

	engine := onboarding.NewService(
		onboardingRepo, documentRepo, profileRepo, authService, docStore, hub,
	)
	onboardingHandler := onboarding.NewHandler(engine)

	adminService := admin.NewService(onboardingRepo, userRepo, profileRepo, engine)
	adminHandler := admin.NewHandler(adminService)

	wsHandler := notify.NewWSHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		v1.GET("/ws", wsHandler.HandleWebSocket)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			onboardingHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
