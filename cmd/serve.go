package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for batch processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := buildRouter(env)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter wires the HTTP API onto a chi router.
func buildRouter(env *pipelineEnv) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/process", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Source  string            `json:"source"`
			Records []model.RawRecord `json:"records"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if len(body.Records) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "records are required"})
			return
		}
		source := body.Source
		if source == "" {
			source = "http"
		}

		run, err := env.Store.CreateRun(req.Context(), source)
		if err != nil {
			zap.L().Error("create run failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create run failed"})
			return
		}

		result, err := env.Pipeline.Run(req.Context(), body.Records)
		if err != nil {
			_ = env.Store.FailRun(req.Context(), run.ID)
			zap.L().Error("pipeline run failed",
				zap.String("run_id", run.ID),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "processing failed"})
			return
		}

		if err := env.Store.SaveCompanies(req.Context(), run.ID, result.Records); err != nil {
			zap.L().Error("save companies failed", zap.String("run_id", run.ID), zap.Error(err))
		}
		if err := env.Store.CompleteRun(req.Context(), run.ID, result.Stats); err != nil {
			zap.L().Error("complete run failed", zap.String("run_id", run.ID), zap.Error(err))
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"run_id":  run.ID,
			"stats":   result.Stats,
			"records": result.Records,
		})
	})

	r.Get("/v1/runs", func(w http.ResponseWriter, req *http.Request) {
		filter := store.RunFilter{
			Status: model.RunStatus(req.URL.Query().Get("status")),
			Source: req.URL.Query().Get("source"),
		}
		runs, err := env.Store.ListRuns(req.Context(), filter)
		if err != nil {
			zap.L().Error("list runs failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list runs failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	})

	r.Get("/v1/runs/{id}/companies", func(w http.ResponseWriter, req *http.Request) {
		runID := chi.URLParam(req, "id")
		records, err := env.Store.ListCompanies(req.Context(), runID)
		if err != nil {
			zap.L().Error("list companies failed", zap.String("run_id", runID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list companies failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"companies": records})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
