package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/ritzau/graf-editor/pkg/editor"
	"github.com/ritzau/graf-editor/pkg/logging"
	"github.com/ritzau/graf-editor/pkg/pubsub"
	"github.com/ritzau/graf-editor/pkg/templates"
)

//go:embed static/*
var staticFiles embed.FS

// PointerInput is the body of POST /api/input/pointer
type PointerInput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ClickInput is the body of POST /api/input/click
type ClickInput struct {
	Shape string `json:"shape"` // element kind of the clicked shape, e.g. "circle"
	ID    string `json:"id"`    // id of the clicked shape, e.g. "node3.circle"
}

// KeyInput is the body of POST /api/input/key
type KeyInput struct {
	Key string `json:"key"`
}

// Server represents the web server
type Server struct {
	router    *mux.Router
	session   *editor.Session
	publisher pubsub.Publisher
	templates *templates.Store
}

// NewServer creates a web server for one editing session
func NewServer(session *editor.Session, publisher pubsub.Publisher, store *templates.Store) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		session:   session,
		publisher: publisher,
		templates: store,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	// SSE subscription endpoints
	s.router.HandleFunc("/api/subscribe/scene", s.handleSubscribe(pubsub.TopicScene)).Methods("GET")
	s.router.HandleFunc("/api/subscribe/template", s.handleSubscribe(pubsub.TopicTemplate)).Methods("GET")

	// Input events
	s.router.HandleFunc("/api/input/pointer", s.handlePointer).Methods("POST")
	s.router.HandleFunc("/api/input/click", s.handleClick).Methods("POST")
	s.router.HandleFunc("/api/input/key", s.handleKey).Methods("POST")

	s.router.HandleFunc("/api/state", s.handleState).Methods("GET")
	s.router.HandleFunc("/api/scene", s.handleScene).Methods("GET")
	s.router.HandleFunc("/api/template", s.handleTemplate).Methods("GET")

	// Serve static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("failed to open embedded static files", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleSubscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Set SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		sub, err := s.publisher.Subscribe(r.Context(), topic)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		defer sub.Close()

		flusher, _ := w.(http.Flusher)

		// Send initial comment to establish connection (Safari compatibility)
		fmt.Fprintf(w, ": connected\n\n")
		if flusher != nil {
			flusher.Flush()
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case event, ok := <-sub.Events():
				if !ok {
					return
				}
				if err := pubsub.WriteSSE(w, event); err != nil {
					logging.WarnContext(r.Context(), "failed to write SSE event", "topic", topic, "error", err)
					return
				}
				if flusher != nil {
					flusher.Flush()
				}
			}
		}
	}
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var in PointerInput
	if !decodeInput(w, r, &in) {
		return
	}
	s.session.PointerMove(in.X, in.Y)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var in ClickInput
	if !decodeInput(w, r, &in) {
		return
	}
	s.session.Click(r.Context(), in.Shape, in.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleKey always answers 204: a rejected command leaves the editor as it was
// and is only reported in the log.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var in KeyInput
	if !decodeInput(w, r, &in) {
		return
	}
	_ = s.session.KeyPress(r.Context(), in.Key)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.session.Snapshot()); err != nil {
		logging.ErrorContext(r.Context(), "failed to encode state", "error", err)
	}
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := s.session.WriteSVG(w); err != nil {
		logging.ErrorContext(r.Context(), "failed to render scene", "error", err)
	}
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	data, revision := s.templates.Bytes()
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("ETag", strconv.Quote(strconv.Itoa(revision)))
	w.Write(data)
}

// decodeInput reads a JSON body into v, answering 400 on failure
func decodeInput(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096))
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid input: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// PublishTemplate announces the current template revision on the template topic
func (s *Server) PublishTemplate() error {
	_, revision := s.templates.Bytes()
	return s.publisher.Publish(pubsub.TopicTemplate, pubsub.EventReloaded, pubsub.TemplateData{
		Path:     s.templates.Path(),
		Revision: revision,
	})
}

// Start serves on port until ctx is cancelled
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// Open SSE streams end with the publisher, not here
		srv.Shutdown(shutdownCtx)
	}()

	logging.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}
