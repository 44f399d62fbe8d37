package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todochat/internal/tui"
)

const tuiLogFile = "todochat.log"

func newTUICmd(o *rootOptions) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive todo and chat UI",
		Args:  exactArgs(0, "[--metrics-addr host:port]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal; logs go to a file.
			logFile, err := openTUILog(o.cfg.Data.Dir)
			if err != nil {
				return err
			}
			defer logFile.Close()
			o.log = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: o.cfg.SlogLevel()}))

			return o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
				ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer cancel()

				if metricsAddr != "" {
					stop, err := serveMetrics(a, metricsAddr)
					if err != nil {
						return err
					}
					defer stop()
				}

				a.Log.Info("Starting UI", slog.String("data_dir", a.Config.Data.Dir))
				err := tui.Run(ctx, tui.Deps{
					Store:       a.Store,
					Bridge:      a.Bridge,
					Users:       a.Config.Chat.Users,
					DefaultRoom: a.Config.Chat.DefaultRoom,
				})
				return quitOnCancel(ctx, err)
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the UI runs")
	return cmd
}

// quitOnCancel treats a program stopped by a cancelled context
// (SIGINT, SIGTERM) as a normal quit.
func quitOnCancel(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func openTUILog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, tuiLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// serveMetrics exposes the app's registry on /metrics until stop is called.
func serveMetrics(a *App, addr string) (stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Error("Metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	a.Log.Info("Serving metrics", slog.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
