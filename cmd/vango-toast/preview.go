package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-toast/internal/config"
	"github.com/vango-dev/vango-toast/internal/errors"
	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/live"
	"github.com/vango-dev/vango-toast/pkg/schedule"
	"github.com/vango-dev/vango-toast/pkg/telemetry"
	"github.com/vango-dev/vango-toast/pkg/toast"
)

func previewCmd() *cobra.Command {
	var (
		port        int
		host        string
		openBrowser bool
		configPath  string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Start the live preview server",
		Long: `Start a server that mirrors toasts into connected browsers.

Toasts are shown through the JSON API and dismissed by clicking
them in the browser, by timeout, or through the API.

Examples:
  vango-toast preview
  vango-toast preview --port=8080
  vango-toast preview --config=./toast.yaml
  curl -d '{"message":"Saved","severity":"success"}' localhost:3100/api/toasts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.ErrOrStderr(), configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if openBrowser {
				cfg.Preview.OpenBrowser = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPreview(ctx, cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "Open browser on start")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file or directory (default: current directory)")

	return cmd
}

// loadConfig loads the config at path, a file or a directory. Without a
// path the working directory is searched and defaults are used when no
// file exists there.
func loadConfig(w io.Writer, path string) (*config.Config, error) {
	if path == "" {
		cfg, err := config.Load(".")
		if errors.HasCode(err, errors.CodeConfigNotFound) {
			warn(w, "No config file found, using defaults")
			return config.New(), nil
		}
		return cfg, err
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfigNotFound).Wrap(err)
	}
	if st.IsDir() {
		return config.Load(path)
	}
	return config.LoadFile(path)
}

func runPreview(ctx context.Context, w io.Writer, cfg *config.Config) error {
	logger := slog.Default()

	loop := schedule.NewLoop(schedule.WithLogger(logger.With("component", "schedule")))
	loop.Start()
	defer loop.Stop()

	doc := dom.NewDocument(dom.WithLogger(logger.With("component", "dom")))

	regOpts := []toast.RegistryOption{
		toast.WithConfig(cfg.Toast.Registry()),
		toast.WithLogger(logger.With("component", "toast")),
		toast.WithObserver(telemetry.NewTracing()),
	}
	srvOpts := []live.Option{
		live.WithDispatcher(loop.Dispatch),
		live.WithLogger(logger.With("component", "live")),
	}
	if cfg.Preview.MetricsEnabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := telemetry.NewMetrics(telemetry.WithRegistry(reg))
		regOpts = append(regOpts, toast.WithObserver(metrics))
		srvOpts = append(srvOpts, live.WithMetrics(metrics, reg))
	}

	registry := toast.New(doc, loop, regOpts...)
	toast.SetDefault(registry)

	srv := live.NewServer(doc, registry, srvOpts...)

	printBanner(w)
	fmt.Fprintln(w, "  preview")
	fmt.Fprintln(w)
	success(w, "Serving on %s", cfg.Preview.URL())
	info(w, "POST %s/api/toasts to show a toast", cfg.Preview.URL())
	if cfg.Preview.MetricsEnabled() {
		info(w, "Metrics at %s/metrics", cfg.Preview.URL())
	}
	fmt.Fprintln(w)

	if cfg.Preview.OpenBrowser {
		go func() {
			time.Sleep(300 * time.Millisecond)
			openURL(cfg.Preview.URL())
		}()
	}

	registry.Show("Preview ready", toast.SeveritySuccess)
	return srv.ListenAndServe(ctx, cfg.Preview.Address())
}

// openURL opens the URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

// commandExists checks if a command exists in PATH.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
