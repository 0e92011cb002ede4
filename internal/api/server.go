package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

// Option configures the handler.
type Option func(*server)

// WithLogger sets the request logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGatherer sets the registry served on /metrics. Defaults to
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

type server struct {
	session  *Session
	logger   *log.Logger
	gatherer prometheus.Gatherer
}

// NewHandler returns the HTTP handler for session.
func NewHandler(session *Session, opts ...Option) http.Handler {
	s := &server{
		session:  session,
		logger:   log.Default(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.health)
	r.Get("/types", s.listTypes)

	r.Route("/xforms", func(r chi.Router) {
		r.Get("/", s.listXforms)
		r.Post("/", s.createXform)
		r.Get("/{name}", s.getXform)
		r.Delete("/{name}", s.deleteXform)
		r.Put("/{name}/config", s.configureXform)
	})

	r.Get("/connections", s.listConnections)
	r.Post("/connections", s.connect)
	r.Delete("/connections/{xform}/{port}", s.disconnect)

	r.Post("/evaluate", s.evaluate)
	r.Get("/results/{xform}/{port}", s.getResult)

	r.Get("/graph", s.getGraph)
	r.Put("/graph", s.putGraph)
	r.Get("/graph.dot", s.getDOT)
	r.Get("/graph.svg", s.getSVG)

	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid request body")
	}
	return nil
}
