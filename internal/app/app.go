// Package app assembles storage, sessions, the dialog router and the
// Telegram runtime into one runnable bot.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/m3rciful/contentbot/core/bootstrap"
	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/metrics"
	coretelegram "github.com/m3rciful/contentbot/core/telegram"
	"github.com/m3rciful/contentbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/contentbot/core/telegram/helpers"
	tgrouter "github.com/m3rciful/contentbot/core/telegram/router"
	"github.com/m3rciful/contentbot/core/telegram/state"
	"github.com/m3rciful/contentbot/internal/config"
	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/handlers"
	"github.com/m3rciful/contentbot/internal/jobs"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/transport"
	"github.com/m3rciful/contentbot/internal/ui"

	tele "gopkg.in/telebot.v4"
)

// App owns every long-lived resource of the bot.
type App struct {
	cfg *config.Config

	db        *sqlx.DB
	redis     *redis.Client
	store     *storage.Store
	sessions  *session.Manager
	router    *dialog.Router
	scheduler *jobs.Scheduler

	stopMetrics func(context.Context) error
}

// Bootstrap migrates and opens the database, seeds the categories, selects
// the session backend and builds the route table.
func Bootstrap(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	ctx := logger.Background()

	res, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
		Modules: bootstrap.Modules{Seeders: []bootstrap.Seeder{
			bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
				return storage.New(db).SeedCategories(ctx)
			}),
		}},
	})
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, db: res.DB, store: storage.New(res.DB)}
	if err := a.wire(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	store, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}
	a.sessions = session.NewManager(store, a.cfg.Session.TTL)

	if p, ok := store.(state.Purger); ok {
		a.scheduler = jobs.NewScheduler()
		if err := a.scheduler.AddSessionPurge(a.cfg.Session.PurgeSchedule, p); err != nil {
			return err
		}
	}

	a.router, err = handlers.NewRouter(ctx, handlers.Deps{
		Store:          a.store,
		Sessions:       a.sessions,
		OwnerID:        a.cfg.Telegram.OwnerID,
		PageSize:       a.cfg.Roster.PageSize,
		SearchPageSize: a.cfg.Roster.SearchPageSize,
	})
	if err != nil {
		return fmt.Errorf("app: routes: %w", err)
	}

	a.stopMetrics, err = metrics.Serve(a.cfg.Metrics)
	if err != nil {
		return fmt.Errorf("app: metrics listener: %w", err)
	}

	logger.Info(ctx, "app", "app.wired",
		slog.String("session_backend", a.cfg.Session.Backend),
		slog.String("db_driver", a.cfg.Database.Driver),
		slog.Int("captions", a.router.Captions()),
	)
	return nil
}

func (a *App) sessionStore(ctx context.Context) (state.Store, error) {
	switch a.cfg.Session.Backend {
	case config.SessionRedis:
		client, err := state.NewRedisClient(ctx, state.RedisOptions{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.redis = client
		return state.NewRedisStore(client, a.cfg.Redis.Prefix), nil
	case config.SessionMemory:
		return state.NewMemoryStore(), nil
	default:
		return a.store.Sessions(), nil
	}
}

// botCommands is the published command menu. Every command is answered by
// the dialog router; the owner gate only filters /makeadmin early.
var botCommands = []struct {
	name string
	cmd  commands.Command
}{
	{"/start", commands.Command{Description: "شروع و منوی اصلی"}},
	{"/help", commands.Command{Description: "راهنمای ربات"}},
	{"/myid", commands.Command{Description: "نمایش شناسه عددی شما"}},
	{"/cancel", commands.Command{Description: "لغو عملیات جاری"}},
	{"/send", commands.Command{Description: "ارسال پیام به کاربر", Hidden: true}},
	{"/makeadmin", commands.Command{Description: "ارتقای مالک به مدیر ارشد", OwnerOnly: true}},
}

// TelegramRunOptions binds the commands and every input kind to the dialog router.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	if a.router == nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: router not built")
	}
	adapter := transport.New(a.router)

	reg := coretelegram.NewRegistry()
	for _, bc := range botCommands {
		cmd := bc.cmd
		cmd.Handler = adapter.Handle
		reg.RegisterCommand(bc.name, cmd)
	}

	routes := tgrouter.CommandRoutes(reg, tgrouter.CommandRouteOptions{
		OwnerID: a.cfg.Telegram.OwnerID,
		OnOwnerReject: func(c tele.Context) error {
			return tghelpers.SendText(c, ui.MsgDenied)
		},
	})
	routes = append(routes, tgrouter.InputRoutes(adapter.Handle)...)

	return coretelegram.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Config, nil),
		Routes:      routes,
		OnStart: func(context.Context, coretelegram.Runtime) error {
			if a.scheduler != nil {
				a.scheduler.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			if a.scheduler != nil {
				return a.scheduler.Stop(ctx)
			}
			return nil
		},
	}, nil
}

// Close releases the metrics listener, Redis and the database.
func (a *App) Close() error {
	var errs []error
	if a.stopMetrics != nil {
		errs = append(errs, a.stopMetrics(context.Background()))
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
