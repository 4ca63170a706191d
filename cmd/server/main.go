package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"payday/internal/config"
	"payday/internal/db"
	"payday/internal/domain/company"
	"payday/internal/domain/employee"
	"payday/internal/domain/payrun"
	"payday/internal/domain/reports"
	"payday/internal/domain/settings"
	"payday/internal/domain/tax"
	companyhandler "payday/internal/transport/http/handlers/company"
	employeehandler "payday/internal/transport/http/handlers/employees"
	payrollhandler "payday/internal/transport/http/handlers/payroll"
	settingshandler "payday/internal/transport/http/handlers/settings"
	"payday/internal/transport/http/middleware"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payday"),
		slog.String("env", cfg.Environment),
	)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	settingsSvc := settings.NewService(settings.NewStore(pool))
	taxSvc := tax.NewService(tax.NewStore(pool))
	employeeSvc := employee.NewService(employee.NewStore(pool))
	runsSvc := payrun.NewService(payrun.NewStore(pool), taxSvc, settingsSvc)
	reportsSvc := reports.NewService(reports.NewStore(pool), settingsSvc)
	companySvc := company.NewService(company.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(chimiddleware.CleanPath)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"` + version + `"}`))
		})

		payrollhandler.NewHandler(runsSvc, taxSvc, reportsSvc, companySvc).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc).RegisterRoutes(r)
		companyhandler.NewHandler(companySvc, cfg.UploadsDir).RegisterRoutes(r)
		settingshandler.NewHandler(settingsSvc).RegisterRoutes(r)
	})

	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	router.Get("/uploads/*", uploadsFS.ServeHTTP)

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	logger.Info("payday server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes survive a refresh.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Clean the path against the static root before touching the filesystem.
	name := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
}
