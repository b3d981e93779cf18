package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"querium-backend/internal/chat"
	"querium-backend/internal/documents"
	"querium-backend/internal/extract"
	"querium-backend/internal/services/health"
	"querium-backend/internal/shared/config"
	"querium-backend/internal/shared/metrics"
	"querium-backend/internal/shared/server"
	"querium-backend/internal/shared/storage/object"
	localstore "querium-backend/internal/shared/storage/object/local"
	s3store "querium-backend/internal/shared/storage/object/s3"
	"querium-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	Metrics          *metrics.Metrics
	Archive          object.ObjectStore
	Extractor        *extract.Extractor
	Index            *documents.Index
	DocumentsService *documents.Service
	Composer         *chat.Composer
	Health           *health.Service
	DocumentsHandler *documents.Handler
	ChatHandler      *chat.Handler
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	app, err := BuildCore(cfg)
	if err != nil {
		return nil, err
	}

	app.Health = health.NewService(app.DocumentsService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService, app.Config.MaxUploadBytes)
	app.ChatHandler = chat.NewHandler(app.Composer)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Metrics:         app.Metrics,
		Health:          app.Health,
		DocumentHandler: app.DocumentsHandler,
		ChatHandler:     app.ChatHandler,
	})

	return app, nil
}

// BuildCore wires the extractor, index, document service and composer
// without any HTTP surface. The CLI runs on it directly.
func BuildCore(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ArchiveStore) == "" {
		cfg.ArchiveStore = "none"
	}

	archive, err := buildArchive(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	extractor := extract.New(extract.Mode(cfg.ExtractorMode))
	index := documents.NewIndex()
	docSvc := &documents.Service{
		Extractor: extractor,
		Index:     index,
		Archive:   archive,
		Metrics:   m,
	}
	m.SetIndexSize(0)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":            cfg.Env,
		"extractor_mode": string(extract.Mode(cfg.ExtractorMode)),
		"archive_store":  cfg.ArchiveStore,
	})

	return &App{
		Config:           cfg,
		Metrics:          m,
		Archive:          archive,
		Extractor:        extractor,
		Index:            index,
		DocumentsService: docSvc,
		Composer:         chat.NewComposer(docSvc, m),
	}, nil
}

func buildArchive(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ArchiveStore {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("ARCHIVE_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, nil
	}
}
