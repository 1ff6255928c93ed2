package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sciados/campaign-engine/internal/assemble"
	"github.com/sciados/campaign-engine/internal/enhance"
	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/provider"
	"github.com/sciados/campaign-engine/internal/selector"
	"github.com/sciados/campaign-engine/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Serves enhancement and generation over HTTP: POST /v1/enhance, POST /v1/generate, and run inspection under /v1/runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sel, err := initSelector()
		if err != nil {
			return err
		}

		api := newAPIServer(st, sel, cfg.Generate.MinQualityScore)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.routes(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// generator is the shared shape of the selector used by both pipelines.
type generator interface {
	SelectAndGenerate(ctx context.Context, req provider.GenerationRequest) (provider.GenerationResult, []selector.Attempt, error)
}

// apiServer holds the HTTP handlers and their dependencies.
type apiServer struct {
	store        store.Store
	orchestrator *enhance.Orchestrator
	assembler    *assemble.Assembler
	minQuality   float64
}

func newAPIServer(st store.Store, gen generator, minQuality float64) *apiServer {
	return &apiServer{
		store:        st,
		orchestrator: enhance.NewOrchestrator(gen),
		assembler:    assemble.New(gen),
		minQuality:   minQuality,
	}
}

func (s *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/enhance", s.handleEnhance)
		r.Post("/generate", s.handleGenerate)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var record model.IntelligenceRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if record.ProductName == "" && record.SourceURL == "" {
		writeError(w, http.StatusBadRequest, "record needs product_name or source_url")
		return
	}

	ctx := r.Context()

	run, err := s.store.CreateRun(ctx, model.RunKindEnhance, record)
	if err != nil {
		zap.L().Error("create run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create run failed")
		return
	}
	if err := s.store.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
		zap.L().Error("mark running failed", zap.String("run_id", run.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "update run failed")
		return
	}

	result, err := s.orchestrator.Enhance(ctx, record)
	if err != nil {
		zap.L().Error("enhancement failed", zap.String("run_id", run.ID), zap.Error(err))
		_ = s.store.UpdateRunStatus(ctx, run.ID, model.RunStatusFailed)
		writeError(w, http.StatusInternalServerError, "enhancement failed")
		return
	}

	summary := model.RunSummary{
		Succeeded:       result.Succeeded,
		Failed:          result.Failed,
		ConfidenceDelta: result.ConfidenceDelta,
		CostUSD:         result.TotalCostUSD,
	}
	if err := s.store.SaveEnrichment(ctx, run.ID, result.Enriched, summary); err != nil {
		zap.L().Error("save enrichment failed", zap.String("run_id", run.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "save enrichment failed")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		RunID string `json:"run_id"`
		enhance.RunResult
	}{RunID: run.ID, RunResult: result})
}

// generateRequest is the body of POST /v1/generate. Either a full record or
// the ID of a stored run must be supplied.
type generateRequest struct {
	ContentType model.ContentType         `json:"content_type"`
	Record      *model.IntelligenceRecord `json:"record,omitempty"`
	RunID       string                    `json:"run_id,omitempty"`
}

func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.ContentType.Valid() {
		writeError(w, http.StatusBadRequest, "unsupported content_type")
		return
	}
	if (req.Record == nil) == (req.RunID == "") {
		writeError(w, http.StatusBadRequest, "provide either record or run_id")
		return
	}

	ctx := r.Context()

	var record model.IntelligenceRecord
	if req.RunID != "" {
		source, err := s.store.GetRun(ctx, req.RunID)
		if err != nil {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		record = source.Record
		if source.Enriched != nil {
			record = *source.Enriched
		}
	} else {
		record = *req.Record
	}

	content, err := s.assembler.Generate(ctx, record, req.ContentType)
	if err != nil {
		if perr, ok := assemble.IsParseError(err); ok {
			zap.L().Warn("generation output unparseable",
				zap.String("provider", perr.Provider),
				zap.String("reason", perr.Reason),
			)
			writeError(w, http.StatusBadGateway, "provider output unparseable")
			return
		}
		zap.L().Error("generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	if content.Metadata.PromptQualityScore < s.minQuality {
		zap.L().Warn("prompt built mostly from defaults",
			zap.Float64("quality_score", content.Metadata.PromptQualityScore),
			zap.Float64("threshold", s.minQuality),
		)
	}

	run, err := s.store.CreateRun(ctx, model.RunKindGenerate, record)
	if err != nil {
		zap.L().Error("create run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create run failed")
		return
	}
	if err := s.store.SaveContent(ctx, run.ID, content); err != nil {
		zap.L().Error("save content failed", zap.String("run_id", run.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "save content failed")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		RunID   string                  `json:"run_id"`
		Content model.StructuredContent `json:"content"`
	}{RunID: run.ID, Content: content})
}

func (s *apiServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.RunFilter{
		Kind:      model.RunKind(q.Get("kind")),
		Status:    model.RunStatus(q.Get("status")),
		SourceURL: q.Get("source"),
		Limit:     50,
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *apiServer) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
