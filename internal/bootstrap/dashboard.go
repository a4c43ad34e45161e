package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"varboard/internal/client"
	"varboard/internal/config"
	"varboard/internal/logger"
	redisClient "varboard/internal/platform/redis"
	"varboard/internal/session"
)

// Dashboard holds what the terminal dashboard needs: the session restored
// from the configured credential store and an API client bound to it.
type Dashboard struct {
	Config  *config.Config
	Log     logger.Logger
	Session *session.Session
	Client  *client.Client
	Redis   *redis.Client
}

func NewDashboard(ctx context.Context, cfg *config.Config, log logger.Logger) (*Dashboard, error) {
	d := &Dashboard{Config: cfg, Log: log}

	store, err := d.credentialStore(ctx)
	if err != nil {
		return nil, err
	}

	sess, err := session.Open(ctx, store)
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	d.Session = sess
	d.Client = client.New(sess, client.WithLogger(log.WithComponent("client")))
	return d, nil
}

func (d *Dashboard) credentialStore(ctx context.Context) (session.CredentialStore, error) {
	switch d.Config.Dashboard.CredentialStore {
	case config.StoreMemory:
		return session.NewMemoryStore(), nil
	case config.StoreRedis:
		rdb, err := redisClient.New(ctx, d.Config.Redis, d.Config.App.Name+"-dashboard")
		if err != nil {
			return nil, err
		}
		d.Redis = rdb
		return session.NewRedisStore(rdb, d.Config.Dashboard.Profile), nil
	case config.StoreCookie:
		return session.NewCookieStore(d.Config.Dashboard.CookieFile), nil
	}
	return nil, fmt.Errorf("unsupported credential store %q", d.Config.Dashboard.CredentialStore)
}

func (d *Dashboard) Close() error {
	if d.Redis != nil {
		return d.Redis.Close()
	}
	return nil
}
