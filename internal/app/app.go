// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/archive"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/logging"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/notify"
)

// App holds the shared, long-lived services: the logger, the fighter store,
// the raw-page archive, and the run-event publisher. It is initialized once
// at startup and passed to the commands that need it.
type App struct {
	logger    *zap.Logger
	database  database.Provider
	archive   archive.Provider
	publisher notify.Publisher
}

// GetLogger returns the shared zap logger instance.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetDatabase provides access to the fighter store.
func (a *App) GetDatabase() database.Provider {
	return a.database
}

// GetArchive exposes the configured raw-page archive provider.
func (a *App) GetArchive() archive.Provider {
	return a.archive
}

// GetPublisher returns the publisher used for scrape run notifications.
func (a *App) GetPublisher() notify.Publisher {
	return a.publisher
}

// NewApp creates and initializes an App from the application's configuration.
// It reads provider switches from Viper and instantiates the matching
// implementations, failing fast if any critical service cannot come up.
func NewApp(ctx context.Context) (*App, error) {
	l := logging.L
	l.Info("initializing application services")

	db, err := newDatabase(ctx, l)
	if err != nil {
		return nil, err
	}

	arc, err := newArchive(ctx, l)
	if err != nil {
		db.Close()
		return nil, err
	}

	pub, err := newPublisher(ctx, l)
	if err != nil {
		db.Close()
		if closeErr := arc.Close(); closeErr != nil {
			l.Warn("error closing archive during teardown", zap.Error(closeErr))
		}
		return nil, err
	}

	l.Info("application services initialized")
	return &App{
		logger:    l,
		database:  db,
		archive:   arc,
		publisher: pub,
	}, nil
}

func newDatabase(ctx context.Context, l *zap.Logger) (database.Provider, error) {
	switch provider := viper.GetString("database.provider"); provider {
	case "postgres":
		dsn := viper.GetString("database.postgres.dsn")
		if dsn == "" {
			return nil, fmt.Errorf("database provider is 'postgres' but database.postgres.dsn is not set")
		}
		l.Info("connecting to PostgreSQL")
		db, err := database.NewPostgresProvider(ctx, database.PostgresConfig{
			DSN:   dsn,
			Table: viper.GetString("database.table"),
		})
		if err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		return db, nil
	case "noop":
		l.Info("using no-op database provider, fighters will be discarded")
		return &database.NoOpProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown database provider: %s", provider)
	}
}

func newArchive(ctx context.Context, l *zap.Logger) (archive.Provider, error) {
	switch provider := viper.GetString("archive.provider"); provider {
	case "gcs":
		bucket := viper.GetString("archive.gcs.bucket_name")
		if bucket == "" {
			return nil, fmt.Errorf("archive provider is 'gcs' but archive.gcs.bucket_name is not set")
		}
		l.Info("using GCS archive provider", zap.String("bucket", bucket))
		arc, err := archive.NewGCSProvider(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("initialize archive: %w", err)
		}
		return arc, nil
	case "local":
		baseDir := viper.GetString("archive.local.base_dir")
		l.Info("using local archive provider", zap.String("base_dir", baseDir))
		arc, err := archive.NewLocalProvider(baseDir)
		if err != nil {
			return nil, fmt.Errorf("initialize archive: %w", err)
		}
		return arc, nil
	case "noop":
		l.Info("using no-op archive provider, raw pages will be discarded")
		return archive.NewNoOpProvider(), nil
	default:
		return nil, fmt.Errorf("unknown archive provider: %s", provider)
	}
}

func newPublisher(ctx context.Context, l *zap.Logger) (notify.Publisher, error) {
	switch provider := viper.GetString("notify.provider"); provider {
	case "pubsub":
		projectID := viper.GetString("notify.gcp.project_id")
		topicID := viper.GetString("notify.gcp.topic_id")
		if projectID == "" || topicID == "" {
			return nil, fmt.Errorf("notify provider is 'pubsub' but project_id or topic_id is not set")
		}
		l.Info("connecting to GCP Pub/Sub", zap.String("topic", topicID))
		pub, err := notify.NewPubSubPublisher(ctx, projectID, topicID)
		if err != nil {
			return nil, fmt.Errorf("initialize publisher: %w", err)
		}
		return pub, nil
	case "noop":
		l.Info("using no-op notify provider, no run events will be sent")
		return notify.NewNoOpPublisher(), nil
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", provider)
	}
}

// Close gracefully shuts down all services in the container. It is called by
// a Cobra hook after the command finishes execution.
func (a *App) Close() {
	a.logger.Info("shutting down application services")
	a.database.Close()
	if err := a.archive.Close(); err != nil {
		a.logger.Warn("error closing archive provider", zap.Error(err))
	}
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("error closing publisher", zap.Error(err))
	}
	// Best effort: flush buffered log entries before exit.
	_ = a.logger.Sync()
}
