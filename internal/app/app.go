package app

import (
	"os"

	"github.com/yungbote/studio-publisher/internal/db"
	"github.com/yungbote/studio-publisher/internal/modules/publish"
	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/repos"
	"github.com/yungbote/studio-publisher/internal/storage"
)

// App wires the editorial store, blob storage and the publish pipeline.
type App struct {
	Log       *logger.Logger
	Config    Config
	Publisher *publish.Publisher
}

func New() (*App, error) {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return nil, err
	}
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		return nil, err
	}
	if err := pg.AutoMigrateAll(); err != nil {
		return nil, err
	}
	gormDB := pg.DB()

	blobs := storage.NewLocalBlobStore(cfg.StorageRoot, log)

	publisher := publish.NewPublisher(publish.PublisherDeps{
		DB:         gormDB,
		Blobs:      blobs,
		Channels:   repos.NewChannelRepo(gormDB, log),
		Nodes:      repos.NewContentNodeRepo(gormDB, log),
		Files:      repos.NewFileRepo(gormDB, log),
		Items:      repos.NewAssessmentItemRepo(gormDB, log),
		Tags:       repos.NewTagRepo(gormDB, log),
		Tokens:     repos.NewTokenRepo(gormDB, log),
		Prereqs:    repos.NewPrerequisiteRepo(gormDB, log),
		Languages:  repos.NewLanguageRepo(gormDB, log),
		Licenses:   repos.NewLicenseRepo(gormDB, log),
		ExportRoot: cfg.ExportDBRoot,
	}, log)

	return &App{Log: log, Config: cfg, Publisher: publisher}, nil
}
