package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	appsvc "varboard/internal/app"
	"varboard/internal/config"
	"varboard/internal/logger"
	"varboard/internal/platform/database"
	rabbitmqClient "varboard/internal/platform/rabbitmq"
	"varboard/internal/repository"
	"varboard/internal/worker"
)

// App holds the backend's shared resources.
type App struct {
	Config      *config.Config
	Log         logger.Logger
	DB          *gorm.DB
	MQConn      *amqp.Connection
	Publisher   appsvc.ChangePublisher
	AuditWorker *worker.AuditWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg, logger.New(cfg.App.LogLevel, cfg.App.LogFormat))
}

// NewWithConfig opens the database and, when enabled, the broker with its
// audit worker.
func NewWithConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := database.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		StartedAt: time.Now(),
	}

	if !cfg.RabbitMQ.Enabled {
		log.Infof("rabbitmq disabled, change events are not published")
		return a, nil
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.MQConn = mqConn
	a.Publisher = rabbitmqClient.NewEventPublisher(mqConn, cfg.RabbitMQ.EventQueue)

	auditWorker := worker.NewAuditWorker(mqConn, repository.NewAuditRepository(db), cfg.RabbitMQ.EventQueue, log)
	if err := auditWorker.Start(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("start audit worker failed: %w", err)
	}
	a.AuditWorker = auditWorker

	return a, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			closeErr = err
		}
	}
	return closeErr
}
