package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mentorhub/application"
	"mentorhub/cache"
	"mentorhub/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server wraps an http.Server with the scheduling API routes.
type Server struct {
	httpServer *http.Server
	metrics    *metrics.Metrics
}

// NewServer builds the router and mounts all handlers. walletCache may be
// nil, in which case balance reads always hit the database.
func NewServer(addr string, uowFactory application.UnitOfWorkFactory, walletCache *cache.WalletCache, m *metrics.Metrics) *Server {
	server := &Server{metrics: m}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	subrouter := router.PathPrefix("/api/v1").Subrouter()
	subrouter.Use(server.instrument)

	appointmentHandler := NewAppointmentHandler(uowFactory, walletCache, m)
	appointmentHandler.RegisterRoutes(subrouter)

	mentorHandler := NewMentorHandler(uowFactory)
	mentorHandler.RegisterRoutes(subrouter)

	walletHandler := NewWalletHandler(uowFactory, walletCache)
	walletHandler.RegisterRoutes(subrouter)

	server.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return server
}

// Start begins serving and blocks until the listener closes
func (s *Server) Start() error {
	logrus.WithField("addr", s.httpServer.Addr).Info("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request latency per route template
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}
		duration := time.Since(start).Seconds()
		s.metrics.HTTPRequestDuration.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Observe(duration)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": duration,
		}).Debug("http request")
	})
}
