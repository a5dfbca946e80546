// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"datashelf/platform/auth"
	"datashelf/platform/config"
	"datashelf/platform/service"
	"datashelf/platform/shared/logger"
	"datashelf/platform/sources/authors"
	"datashelf/platform/sources/books"
	"datashelf/platform/sources/registry"
	"datashelf/platform/store"
)

const shutdownTimeout = 10 * time.Second

// Run is the exported entry point for the connector service.
//
// It loads configuration, opens the backing store, registers the data
// sources, and serves the HTTP API. The function blocks until the server
// shuts down on SIGINT or SIGTERM.
func Run() {
	log.Println("Starting DataShelf connector...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	if cfg.SeedDemoData {
		if err := st.SeedDemoData(ctx); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	reg := registry.New()
	reg.Register(authors.NewRepository(st))
	reg.Register(books.NewRepository(st))
	log.Printf("Registered data sources: %v", reg.Sources())

	validator := auth.NewValidator(cfg.APIKey, []byte(cfg.JWTSecret))
	svc := service.NewDataService(validator, reg)
	handler := NewHandler(svc)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      requestMiddleware(logger.New("connector"))(c.Handler(r)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("DataShelf connector listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestMiddleware assigns each request an ID, logs it, and records metrics.
// The tenant id shows up in the log once the validation step has verified the
// request's access token.
func requestMiddleware(appLogger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := auth.WithTenantIDHolder(r.Context())
			r = r.WithContext(ctx)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, r)
			duration := time.Since(start)

			appLogger.InfoWithDuration(auth.TenantIDFromContext(ctx), requestID,
				"Request completed",
				float64(duration.Milliseconds()), map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
					"status": recorder.status,
				})
			observeRequest(r.URL.Path, recorder.status, duration)
		})
	}
}
