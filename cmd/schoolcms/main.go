// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/school-cms-go/internal/config"
	"github.com/olegiv/school-cms-go/internal/geoip"
	"github.com/olegiv/school-cms-go/internal/handler"
	"github.com/olegiv/school-cms-go/internal/legacy"
	"github.com/olegiv/school-cms-go/internal/logging"
	"github.com/olegiv/school-cms-go/internal/metrics"
	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/notify"
	"github.com/olegiv/school-cms-go/internal/render"
	"github.com/olegiv/school-cms-go/internal/scheduler"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/session"
	"github.com/olegiv/school-cms-go/internal/store"
	"github.com/olegiv/school-cms-go/internal/version"
	"github.com/olegiv/school-cms-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

type options struct {
	migrateOnly  bool
	importLegacy bool
	skipExisting bool
	pruneEvents  bool
}

func main() {
	var opts options

	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	flag.BoolVar(&opts.migrateOnly, "migrate", false, "Apply database migrations and exit")
	flag.BoolVar(&opts.importLegacy, "import-legacy", false, "Import content from the legacy MySQL database and exit")
	flag.BoolVar(&opts.skipExisting, "skip-existing", false, "With -import-legacy, keep rows that already exist")
	flag.BoolVar(&opts.pruneEvents, "prune-events", false, "Run the event log retention job once and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "School CMS - school website with an admin back office\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SESSION_SECRET      Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_DB_PATH             SQLite database path (default: ./data/schoolcms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SERVER_HOST         Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_BASE_PATH           URL prefix when served from a sub-directory (e.g. /school)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_UPLOADS_DIR         Uploaded images directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_GEOIP_DB_PATH       GeoLite2-Country.mmdb for inquiry country codes (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_RESEND_API_KEY      Resend key for new-inquiry e-mails (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_METRICS_ENABLED     Expose Prometheus metrics at /metrics (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_LEGACY_MYSQL_DSN    Legacy MySQL DSN used by -import-legacy\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	versionInfo := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}.Normalized()

	logLevel := logging.ParseLevel(cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(slog.New(logging.NewTextHandler(logLevel)))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")
	if opts.migrateOnly {
		return nil
	}

	ctx := context.Background()

	if opts.importLegacy {
		return importLegacy(ctx, cfg, db, opts.skipExisting)
	}

	// WARN and ERROR records also land in the event log table.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(logging.NewTextHandler(logLevel), db)))
	slog.Info("event log integration enabled", "min_level", "warn")

	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	basePath := cfg.NormalizedBasePath()
	deps := service.Deps{BasePath: basePath, UploadsDir: cfg.UploadsDir}

	if cfg.GeoIPEnabled() {
		lookup := geoip.NewLookup()
		if err := lookup.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip database unavailable, country codes disabled", "path", cfg.GeoIPDBPath, "error", err)
		} else {
			deps.GeoIP = lookup
			defer func() { _ = lookup.Close() }()
			slog.Info("geoip lookup enabled", "path", cfg.GeoIPDBPath)
		}
	}

	var appMetrics *metrics.Metrics
	if cfg.MetricsEnabled {
		appMetrics = metrics.New()
		deps.Metrics = appMetrics
	}

	if cfg.NotificationsEnabled() {
		deps.Notifier = notify.New(
			notify.NewResendSender(cfg.ResendAPIKey), cfg.NotifyFrom, cfg.NotifyTo,
			service.NewSettingsService(db).SchoolName,
		)
		slog.Info("inquiry notifications enabled", "to", cfg.NotifyTo)
	}

	services := service.New(db, deps)
	defer services.Intake.Wait()

	sched := scheduler.New(slog.Default())
	if err := sched.Add(scheduler.EventRetentionJob(services.Events, cfg.EventRetentionDays, slog.Default())); err != nil {
		return fmt.Errorf("registering event retention job: %w", err)
	}
	if deps.GeoIP != nil {
		if err := sched.Add(scheduler.GeoIPReloadJob(deps.GeoIP)); err != nil {
			return fmt.Errorf("registering geoip reload job: %w", err)
		}
	}
	if opts.pruneEvents {
		return sched.TriggerNow(scheduler.JobEventRetention)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		BasePath:       basePath,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit: cfg.LoginRateLimit,
		IPBurst:     cfg.LoginBurst,
	})
	defer loginProtection.Stop()
	formLimiter := middleware.NewFormRateLimiter(cfg.FormRateLimit, cfg.FormBurst)
	slog.Info("rate limiting initialized",
		"login_rate", cfg.LoginRateLimit, "login_burst", cfg.LoginBurst,
		"form_rate", cfg.FormRateLimit, "form_burst", cfg.FormBurst)

	site := handler.Routes(handler.Config{
		DB:         db,
		Renderer:   renderer,
		Sessions:   sessionManager,
		Services:   services,
		BasePath:   basePath,
		UploadsDir: cfg.UploadsDir,
		Static:     staticFS,
		Version:    versionInfo.Version,
		NoIndex:    cfg.IsDevelopment(),
	}, handler.RouteOptions{
		LoginProtection: loginProtection,
		FormLimiter:     formLimiter,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	if appMetrics != nil {
		r.Use(appMetrics.Middleware)
		r.Method(http.MethodGet, "/metrics", appMetrics.Handler())
		slog.Info("prometheus metrics enabled", "path", "/metrics")
	}
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	csrfCfg := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr(), cfg.TrustedOrigins)
	r.Use(middleware.SkipCSRF(basePath + handler.RouteHealth))
	slog.Info("CSRF protection initialized", "trusted_origins", csrfCfg.TrustedOrigins)

	r.Mount("/", sessionManager.LoadAndSave(middleware.CSRF(csrfCfg)(site)))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for image uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "base_path", basePath, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// importLegacy copies the content of the old MySQL-backed site into the
// SQLite database.
func importLegacy(ctx context.Context, cfg *config.Config, db *sql.DB, skipExisting bool) error {
	if cfg.LegacyMySQLDSN == "" {
		return errors.New("SCMS_LEGACY_MYSQL_DSN is required for -import-legacy")
	}

	reader, err := legacy.NewReader(ctx, cfg.LegacyMySQLDSN)
	if err != nil {
		return fmt.Errorf("connecting to legacy database: %w", err)
	}
	defer func() { _ = reader.Close() }()

	result, err := legacy.NewImporter(reader, db, slog.Default()).Import(ctx, legacy.Options{SkipExisting: skipExisting})
	if err != nil {
		return fmt.Errorf("importing legacy content: %w", err)
	}

	slog.Info("legacy import finished", "imported", result.TotalImported(), "tables", result.Imported, "skipped", result.Skipped)
	return nil
}
