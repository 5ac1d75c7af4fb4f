package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/spatialnav/internal/config"
	"github.com/1broseidon/spatialnav/internal/daemon"
	"github.com/1broseidon/spatialnav/internal/desktop"
	"github.com/1broseidon/spatialnav/internal/hotkeys"
	"github.com/1broseidon/spatialnav/internal/ipc"
	"github.com/1broseidon/spatialnav/internal/platform"
	"github.com/1broseidon/spatialnav/internal/spatial"
	"github.com/1broseidon/spatialnav/internal/watch"
	"github.com/1broseidon/spatialnav/internal/x11"
)

func bindingsFromConfig(cfg *config.Config) hotkeys.Bindings {
	return hotkeys.Bindings{
		Directions: map[spatial.Direction]string{
			spatial.DirUp:    cfg.Hotkeys.Up,
			spatial.DirDown:  cfg.Hotkeys.Down,
			spatial.DirLeft:  cfg.Hotkeys.Left,
			spatial.DirRight: cfg.Hotkeys.Right,
		},
		Reset:    cfg.Hotkeys.Reset,
		Throttle: cfg.Throttle(),
	}
}

func hostOptionsFromConfig(cfg *config.Config, logger *slog.Logger) desktop.HostOptions {
	return desktop.HostOptions{
		BringIntoView: cfg.BringIntoView,
		IgnoreClass:   cfg.IgnoresClass,
		Logger:        logger,
	}
}

func runDaemon(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: spatialnav daemon")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: spatialnav daemon")
		return 2
	}

	res, err := config.LoadWithSources()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config
	log.Printf("Configuration loaded (%d file(s), throttle: %v)", len(res.Files), cfg.Throttle())

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}
	backend, err := platform.NewLinuxBackendForDisplay(cfg.Display)
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer backend.Disconnect()

	color, err := x11.ParseColor(cfg.Marker.Color)
	if err != nil {
		log.Printf("Invalid marker color: %v", err)
		return 1
	}
	marker := backend.NewMarker(color, cfg.Marker.Thickness)
	host := desktop.NewHost(backend, marker, hostOptionsFromConfig(cfg, logger))
	defer host.Close()

	display := cfg.Display
	if display == "" {
		display = os.Getenv("DISPLAY")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		handler *hotkeys.Handler
		nav     *daemon.Navigator
	)

	// applyReload re-reads the config and applies it to every component.
	// It only runs on the reloader goroutine. The display connection is
	// not reopened.
	applyReload := func() error {
		newRes, err := config.LoadWithSources()
		if err != nil {
			return err
		}
		newCfg := newRes.Config
		if newCfg.Display != cfg.Display {
			logger.Warn("display changes require a daemon restart", "display", newCfg.Display)
		}
		level.Set(newCfg.SlogLevel())

		nav.Reconfigure(desktop.Rules(), func() {
			host.SetOptions(hostOptionsFromConfig(newCfg, logger))
		})

		handler.Unregister()
		if err := handler.Register(bindingsFromConfig(newCfg)); err != nil {
			return fmt.Errorf("failed to register hotkeys: %w", err)
		}
		cfg = newCfg
		return nil
	}
	reloader := daemon.NewReloader(applyReload, logger)
	reload := func() error { return reloader.Request(ctx) }

	nav = daemon.NewNavigator(host, daemon.NavigatorConfig{
		Rules:   desktop.Rules(),
		Display: display,
		Reload:  reload,
		Logger:  logger,
	})

	handler, err = hotkeys.NewHandler(backend, nav)
	if err != nil {
		log.Printf("Failed to set up hotkeys: %v", err)
		return 1
	}
	if err := handler.Register(bindingsFromConfig(cfg)); err != nil {
		log.Printf("Failed to register hotkeys: %v", err)
		return 1
	}

	ipcServer, err := ipc.NewServer(nav)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	if interval := cfg.ReconcileInterval(); interval > 0 {
		reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: interval,
			Logger:   logger,
		}, nav)
		go reconciler.Run(ctx)
	}

	if cfg.MetricsListen != "" {
		metrics, err := daemon.StartMetrics(cfg.MetricsListen)
		if err != nil {
			log.Printf("Warning: metrics disabled: %v", err)
		} else {
			log.Printf("Metrics listening on http://%s/metrics", metrics.Addr())
			defer func() {
				shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
				defer done()
				metrics.Shutdown(shutdownCtx)
			}()
		}
	}

	startConfigWatch(ctx, res, logger, func() {
		log.Println("Config file changed, reloading...")
		if err := reload(); err != nil {
			log.Printf("Config reload failed: %v", err)
		}
	})

	// Requests queued before this point wait for the startup reads of cfg
	// above to finish.
	go reloader.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				if err := reload(); err != nil {
					log.Printf("Config reload failed: %v", err)
				}
			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down spatialnav daemon...")
				nav.Reset()
				cancel()
				backend.Quit()
				return
			}
		}
	}()

	log.Println("spatialnav daemon started, entering event loop...")
	backend.EventLoop()
	return 0
}

// startConfigWatch reloads on edits to the loaded config files. With no
// file loaded it watches the default path so creating it takes effect.
func startConfigWatch(ctx context.Context, res *config.LoadResult, logger *slog.Logger, onChange func()) {
	files := res.Files
	if len(files) == 0 {
		path, err := config.DefaultConfigPath()
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
			return
		}
		files = []string{path}
	}

	w, err := watch.New(watch.Config{
		Files:    files,
		OnChange: func([]string) { onChange() },
		Logger:   logger,
	})
	if err != nil {
		logger.Warn("config watch disabled", "error", err)
		return
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Warn("config watch stopped", "error", err)
		}
	}()
}
