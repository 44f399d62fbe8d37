package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/idilsaglam/todochat/internal/config"
	"github.com/idilsaglam/todochat/internal/metrics"
	"github.com/idilsaglam/todochat/internal/persist"
	"github.com/idilsaglam/todochat/internal/store"
	"github.com/idilsaglam/todochat/internal/store/jsonstore"
)

// App is everything one command invocation works with. It is opened at
// the start of a command and closed when the command returns.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Store    *store.Store
	Bridge   *persist.Bridge
	Metrics  *metrics.Recorder
	Registry *prometheus.Registry

	kv      *jsonstore.FileStore
	untrack func()
}

func openApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	kv, err := jsonstore.Open(cfg.Data.Dir, jsonstore.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open data dir %s: %w", cfg.Data.Dir, err)
	}

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	s := store.New(store.WithLogger(log), store.WithDispatchObserver(rec))
	b := persist.New(kv, persist.WithLogger(log), persist.WithWriteObserver(rec))

	// A corrupt value was already reported by the bridge; its slice starts empty.
	_ = b.Rehydrate(s)
	b.Attach(s)

	return &App{
		Config:   cfg,
		Log:      log,
		Store:    s,
		Bridge:   b,
		Metrics:  rec,
		Registry: reg,
		kv:       kv,
		untrack:  rec.Track(s),
	}, nil
}

// Close tears the store down and releases the data directory.
func (a *App) Close() error {
	a.untrack()
	a.Store.Close()
	return a.kv.Close()
}
