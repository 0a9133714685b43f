package diag

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-digi-lib/internal/utils"
	"github.com/MKhiriev/go-digi-lib/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/healthz", s.healthz)
	router.Get("/version", s.version)
	router.Get("/stats", s.stats)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(s.build.Version))
}

// statsResponse bundles the point-in-time snapshots of every subsystem.
type statsResponse struct {
	Build  models.BuildInfo   `json:"build"`
	Cache  models.CacheStats  `json:"cache"`
	Render models.RenderStats `json:"render"`
	Queue  models.QueueStats  `json:"queue"`
	Sync   models.SyncStatus  `json:"sync"`
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp := statsResponse{Build: s.build, Render: s.services.Render.Stats()}

	var err error
	if resp.Cache, err = s.services.Cache.Stats(ctx); err != nil {
		s.fail(w, "cache stats", err)
		return
	}
	if resp.Queue, err = s.services.Queue.Stats(ctx); err != nil {
		s.fail(w, "queue stats", err)
		return
	}
	if resp.Sync, err = s.services.Sync.Status(ctx); err != nil {
		s.fail(w, "sync status", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Error().Err(err).Msgf("diagnostics: %s", what)
	w.WriteHeader(http.StatusInternalServerError)
}
