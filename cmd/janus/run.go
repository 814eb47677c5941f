package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"mercator-hq/janus/pkg/bindings"
	"mercator-hq/janus/pkg/config"
	"mercator-hq/janus/pkg/detect"
	"mercator-hq/janus/pkg/origins"
	"mercator-hq/janus/pkg/proxy"
	"mercator-hq/janus/pkg/routing"
	"mercator-hq/janus/pkg/security/auth"
	"mercator-hq/janus/pkg/server"
	"mercator-hq/janus/pkg/telemetry/logging"
	"mercator-hq/janus/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watch         bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Janus edge router",
	Long: `Start the Janus edge router with the specified configuration.

The router listens on the configured address, extracts the tenant from each
request hostname, resolves the tenant's environment, and proxies the request
to the matching origin.

Examples:
  # Start with default config
  janus run

  # Start with custom config
  janus run --config /etc/janus/config.yaml

  # Override listen address
  janus run --listen 0.0.0.0:8080

  # Validate config without starting the router
  janus run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the router")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", true, "reload routing options on config file changes")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Setup(&cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics)

	store, err := newBindingStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	fmt.Printf("✓ Binding store initialized (%s)\n", cfg.Bindings.Backend)

	detector, err := detect.NewDetector(detect.Config{
		Scheme:       cfg.Origins.Scheme,
		DevHost:      cfg.Origins.DevHost,
		StableHost:   cfg.Origins.StableHost,
		ProbeTimeout: cfg.Routing.ProbeTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}

	defaultEnv, err := bindings.ParseEnvironment(cfg.Routing.DefaultEnvironment)
	if err != nil {
		return fmt.Errorf("invalid default environment: %w", err)
	}

	resolver := routing.NewResolver(store, detector,
		cfg.Origins.DevHost, cfg.Origins.StableHost,
		routing.Options{
			DefaultEnvironment: defaultEnv,
			AutoDetect:         cfg.Routing.AutoDetect,
		}, collector)

	forwarder := proxy.NewForwarder(proxy.Config{Scheme: cfg.Origins.Scheme})
	verifier := auth.NewBearerVerifier(cfg.ControlPlane.BearerSecret)

	checker := origins.NewChecker(origins.Config{
		Scheme:     cfg.Origins.Scheme,
		DevHost:    cfg.Origins.DevHost,
		StableHost: cfg.Origins.StableHost,
		Schedule:   cfg.Origins.HealthCheckSchedule,
	}, collector)
	if err := checker.Start(ctx); err != nil {
		return fmt.Errorf("failed to start origin health sweeps: %w", err)
	}

	if runFlags.watch {
		watcher := config.NewWatcher(cfgFile)
		go func() {
			err := watcher.Watch(ctx, func(newCfg *config.Config) {
				env, err := bindings.ParseEnvironment(newCfg.Routing.DefaultEnvironment)
				if err != nil {
					slog.Warn("reloaded config has invalid default environment, keeping current options", "error", err)
					return
				}
				resolver.SetOptions(routing.Options{
					DefaultEnvironment: env,
					AutoDetect:         newCfg.Routing.AutoDetect,
				})
				slog.Info("routing options reloaded",
					"default_environment", env,
					"auto_detect", newCfg.Routing.AutoDetect,
				)
			})
			if err != nil {
				slog.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, server.Deps{
		Store:     store,
		Resolver:  resolver,
		Forwarder: forwarder,
		Verifier:  verifier,
		Origins:   checker,
		Collector: collector,
	})

	fmt.Printf("✓ Router listening on %s\n", cfg.Server.ListenAddress)
	if cfg.Admin.Enabled {
		fmt.Printf("✓ Admin endpoints: http://%s/health /ready /metrics\n", cfg.Admin.ListenAddress)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	return srv.Start(ctx)
}

// newBindingStore creates the configured binding store backend.
func newBindingStore(ctx context.Context, cfg *config.Config) (bindings.Store, error) {
	switch cfg.Bindings.Backend {
	case "memory":
		return bindings.NewMemoryStore(), nil
	case "sqlite":
		store, err := bindings.NewSQLiteStore(bindings.SQLiteStoreConfig{
			Path:        cfg.Bindings.SQLite.Path,
			BusyTimeout: cfg.Bindings.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite binding store: %w", err)
		}
		return store, nil
	case "redis":
		store, err := bindings.NewRedisStore(ctx, bindings.RedisStoreConfig{
			Addr:        cfg.Bindings.Redis.Addr,
			Password:    cfg.Bindings.Redis.Password,
			DB:          cfg.Bindings.Redis.DB,
			DialTimeout: cfg.Bindings.Redis.DialTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis binding store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported bindings backend: %s", cfg.Bindings.Backend)
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Janus v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	slog.Debug("routing configured",
		"base_domain", cfg.Routing.BaseDomain,
		"default_environment", cfg.Routing.DefaultEnvironment,
		"auto_detect", cfg.Routing.AutoDetect,
	)
	slog.Debug("origins configured",
		"dev", cfg.Origins.DevHost,
		"stable", cfg.Origins.StableHost,
		"scheme", cfg.Origins.Scheme,
	)
}
