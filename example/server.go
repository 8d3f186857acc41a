package main

import (
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sugawarayuuta/sonnet"

	"github.com/theflywheel/chash"
	"github.com/theflywheel/chash/promstats"
)

const maxValueSize = 1 << 20

// Server exposes one string table over HTTP for inspection. The table is not
// safe for concurrent use, so every handler goes through mu.
type Server struct {
	mu       sync.RWMutex
	table    *chash.Table[string, string]
	router   *mux.Router
	registry *prometheus.Registry
}

// NewServer creates a server around a fresh table with the given capacity.
func NewServer(capacity int, logger *log.Logger) *Server {
	resizes := promstats.NewResizeObserver("example")
	s := &Server{
		table: chash.NewWithConfig[string, string](chash.Config[string]{
			Capacity: capacity,
			Logger:   logger,
			Observer: resizes,
		}),
		router:   mux.NewRouter(),
		registry: prometheus.NewRegistry(),
	}
	s.registry.MustRegister(resizes)
	s.registry.MustRegister(promstats.NewCollector("example", promstats.StatsFunc(s.stats)))
	s.routes()
	return s
}

// Router returns the http.Handler to serve.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/keys/{key}", s.handlePut()).Methods("PUT")
	s.router.HandleFunc("/keys/{key}", s.handleGet()).Methods("GET")
	s.router.HandleFunc("/keys/{key}", s.handleDelete()).Methods("DELETE")
	s.router.HandleFunc("/dump", s.handleDump()).Methods("GET")
	s.router.HandleFunc("/stats", s.handleStats()).Methods("GET")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
}

func (s *Server) stats() chash.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Stats()
}

func (s *Server) handlePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["key"]
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxValueSize))
		if err != nil {
			http.Error(w, "read body failed or too large", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		err = s.table.Put(key, string(body))
		s.mu.Unlock()
		if err != nil {
			log.Printf("[PUT] Key=%s failed: %v", key, err)
			http.Error(w, err.Error(), http.StatusInsufficientStorage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["key"]

		s.mu.RLock()
		v, ok := s.table.Get(key)
		s.mu.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.WriteString(w, v)
	}
}

func (s *Server) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["key"]

		s.mu.Lock()
		s.table.Remove(key)
		s.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleDump() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		dump := s.table.Dump()
		s.mu.RUnlock()
		writeJSON(w, dump)
	}
}

func (s *Server) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.stats())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := sonnet.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
