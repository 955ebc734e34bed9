package main

import (
	"time"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/config"
	"clipstream-backend/internal/controllers"
	"clipstream-backend/internal/mail"
	"clipstream-backend/internal/repository"
	"clipstream-backend/internal/routes"
	"clipstream-backend/internal/storage"
	"clipstream-backend/internal/token"
	"clipstream-backend/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if !cfg.IsProduction() {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, err := repository.Connect(cfg.DB)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}

	uploads, err := storage.New(cfg.Minio)
	if err != nil {
		logrus.WithError(err).Fatal("object storage init failed")
	}

	users := repository.NewUserRepository(db)
	videos := repository.NewVideoRepository(db)
	comments := repository.NewCommentRepository(db)
	likes := repository.NewLikeRepository(db)
	subs := repository.NewSubscriptionRepository(db)
	playlists := repository.NewPlaylistRepository(db)
	codes := repository.NewVerificationCodeRepository(db)

	tokens := token.NewService(cfg.Auth, users)
	sender := mail.NewSMTPSender(cfg.SMTP)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: apperrors.Handler(cfg.IsProduction()),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))

	ctl := routes.Controllers{
		Auth:          controllers.NewAuthController(users, codes, tokens, uploads, sender),
		Users:         controllers.NewUserController(users, subs, uploads),
		Videos:        controllers.NewVideoController(videos, users, likes, uploads),
		Comments:      controllers.NewCommentController(comments, videos),
		Likes:         controllers.NewLikeController(likes, videos, comments),
		Subscriptions: controllers.NewSubscriptionController(subs, users),
		Playlists:     controllers.NewPlaylistController(playlists, videos, users),
	}
	routes.Setup(app, ctl, controllers.RequireAuth(tokens, users))

	utils.StartCleanupTask(codes, 12*time.Hour)

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
