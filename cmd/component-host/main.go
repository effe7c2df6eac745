// cmd/component-host/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"flow-components/internal/common/config"
	"flow-components/internal/common/errors"
	"flow-components/internal/common/logger"
	"flow-components/internal/common/observability"
	"flow-components/internal/component"

	awic "flow-components/internal/components/tracker/azure-workitem-create"
	awi "flow-components/internal/components/tracker/azure-workitems"
	ji "flow-components/internal/components/tracker/jira-issues"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting component host...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if cfg.Logging.Level != "" {
		zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
		log = logger.NewZapAdapter(zapLog)
	}

	obs := observability.New("component-host")
	defer obs.Shutdown()

	registry := buildRegistry(cfg, log, zapLog)

	zapLog.Info("Component registry ready", zap.Int("components", registry.Len()))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      newRouter(registry, obs, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Component host stopped gracefully")
}

// buildRegistry registers the built-in components plus any descriptor-only
// components found in the manifest directory. Registration failures are
// logged and skipped so one bad component never takes the host down.
func buildRegistry(cfg *config.Config, log logger.Logger, zapLog *zap.Logger) *component.Registry {
	registry := component.NewRegistry(log)

	var builtins []component.Component

	if comp, err := awi.New(awi.Options{AppConfig: cfg, Logger: log}); err != nil {
		zapLog.Error("failed to create work item query component", zap.Error(err))
	} else {
		builtins = append(builtins, comp)
	}

	if comp, err := awic.New(awic.Options{AppConfig: cfg, Logger: log}); err != nil {
		zapLog.Error("failed to create work item create component", zap.Error(err))
	} else {
		builtins = append(builtins, comp)
	}

	if comp, err := ji.New(ji.Options{AppConfig: cfg, Logger: log}); err != nil {
		zapLog.Error("failed to create jira issues component", zap.Error(err))
	} else {
		builtins = append(builtins, comp)
	}

	registered := registry.RegisterCollection(builtins)
	zapLog.Info("Built-in components registered", zap.Int("count", registered))

	if cfg.Registry.ManifestDir != "" {
		descriptors := component.LoadManifestDir(cfg.Registry.ManifestDir, log)
		registry.RegisterCollection(descriptors)
	}

	return registry
}

func newRouter(registry *component.Registry, obs *observability.Observability, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	errHandler := errors.NewErrorHandler(log)

	mux.HandleFunc("GET /components", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":      registry.Len(),
			"components": registry.Catalog(),
		})
	})

	mux.HandleFunc("GET /components/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		comp, ok := registry.Get(name)
		if !ok {
			writeComponentNotFound(w, name)
			return
		}
		writeJSON(w, http.StatusOK, comp.BuildConfig())
	})

	mux.HandleFunc("POST /components/{name}/execute", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		runID := uuid.New().String()

		comp, ok := registry.Get(name)
		if !ok {
			writeComponentNotFound(w, name)
			return
		}

		var inputs map[string]interface{}
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
				stdErr := errHandler.HandleExecutionError(name, runID,
					errors.NewInvalidParameterError("body", err.Error()))
				writeJSON(w, http.StatusBadRequest, component.Failure(stdErr))
				return
			}
		}

		log.Info("Executing component", map[string]interface{}{
			"component": name,
			"runId":     runID,
		})

		start := time.Now()
		result := comp.Execute(r.Context(), inputs)
		obs.RecordRun(r.Context(), name, result.Status)
		obs.RecordRunDuration(r.Context(), name, time.Since(start), result.Status)

		// Execution failures are still HTTP 200: the error is data in the
		// result envelope, not a transport failure.
		writeJSON(w, http.StatusOK, result)
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func writeComponentNotFound(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusNotFound, component.Failure(errors.NewComponentNotFoundError(name)))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
