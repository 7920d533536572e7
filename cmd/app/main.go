package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/storage"

	"github.com/kvitkodev/melomane/internal/articleservice"
	"github.com/kvitkodev/melomane/internal/authorservice"
	"github.com/kvitkodev/melomane/internal/common"
	"github.com/kvitkodev/melomane/internal/mailservice"
	"github.com/kvitkodev/melomane/internal/mediaservice"
	"github.com/kvitkodev/melomane/internal/newsletterservice"
)

type application struct {
	config            *Config
	logger            *slog.Logger
	articleService    *articleservice.ArticleService
	authorService     *authorservice.AuthorService
	newsletterService *newsletterservice.NewsletterService
	mailService       *mailservice.MailService
	mediaService      *mediaservice.MediaStore
	broker            *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupNewsletterExchange(broker)
	if err != nil {
		logger.Error("failed to setup the newsletter exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var mediaStore *mediaservice.MediaStore
	if cfg.GCSBucket != "" {
		client, err := storage.NewClient(context.Background())
		if err != nil {
			logger.Error("failed to create the storage client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()

		mediaStore, err = mediaservice.NewMediaStore(client, cfg.GCSBucket)
		if err != nil {
			logger.Error("failed to create the media store", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Info("no GCS bucket configured, media uploads disabled")
	}

	app := &application{
		config:            cfg,
		logger:            logger,
		articleService:    articleservice.NewArticleService(db, common.NewCache(5*time.Minute, 10*time.Minute)),
		authorService:     authorservice.NewAuthorService(db),
		newsletterService: newsletterservice.NewNewsletterService(db, broker),
		mailService:       mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.SiteURL, cfg.MailPort, logger),
		mediaService:      mediaStore,
		broker:            broker,
	}

	go app.mailService.SendWelcomeEmail()
	defer app.mailService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
