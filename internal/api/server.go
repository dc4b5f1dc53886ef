// Package api serves the lesson catalog, drill and quiz sessions, the tutor
// relay and the textbook over HTTP.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/quiz"
	"github.com/xamuil2/digitalludus/internal/shuffle"
	"github.com/xamuil2/digitalludus/internal/tutor"
)

const (
	DefaultAddr       = ":8080"
	DefaultSessionTTL = 30 * time.Minute
	requestTimeout    = 60 * time.Second
)

// Config holds the server settings.
type Config struct {
	Addr        string
	Textbook    string // PDF path; empty disables /textbook.pdf
	CORSOrigins []string
	SessionTTL  time.Duration
}

// ConfigFromEnv reads LUDUS_ADDR, LUDUS_TEXTBOOK, LUDUS_CORS_ORIGINS and
// LUDUS_SESSION_TTL. Unparseable values fall back to the defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:        DefaultAddr,
		Textbook:    os.Getenv("LUDUS_TEXTBOOK"),
		CORSOrigins: []string{"http://localhost:3000"},
		SessionTTL:  DefaultSessionTTL,
	}
	if v := os.Getenv("LUDUS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LUDUS_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("LUDUS_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Server wires the HTTP routes to the catalog and session engines.
type Server struct {
	cfg     Config
	lessons *catalog.Catalog
	tutor   *tutor.Relay
	rng     func() shuffle.Source

	drills  *registry[*drill.Session]
	quizzes *registry[*quiz.Session]
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRand sets the shuffle source given to every new session.
func WithRand(fn func() shuffle.Source) Option {
	return func(s *Server) { s.rng = fn }
}

// New builds a Server. relay may be nil, in which case the tutor route
// answers in demo mode.
func New(cfg Config, lessons *catalog.Catalog, relay *tutor.Relay, opts ...Option) *Server {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if relay == nil {
		relay = tutor.New(nil, lessons)
	}
	s := &Server{
		cfg:     cfg,
		lessons: lessons,
		tutor:   relay,
		rng:     func() shuffle.Source { return shuffle.Default },
		drills:  newRegistry[*drill.Session](cfg.SessionTTL),
		quizzes: newRegistry[*quiz.Session](cfg.SessionTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/textbook.pdf", s.serveTextbook)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/lessons", s.listLessons)
		ar.Get("/lessons/{id}", s.getLesson)
		ar.Get("/lessons/{id}/quiz", s.getLessonQuiz)
		ar.Get("/vocabulary", s.listVocabulary)
		ar.Get("/textbook/view", s.textbookView)
		ar.HandleFunc("/ai-tutor", s.askTutor)

		ar.Route("/drills", func(dr chi.Router) {
			dr.Post("/", s.createDrill)
			dr.Route("/{id}", func(dr chi.Router) {
				dr.Get("/", s.drillStep(nil))
				dr.Delete("/", s.deleteDrill)
				dr.Post("/reveal", s.drillStep((*drill.Session).Reveal))
				dr.Post("/mark", s.markDrill)
				dr.Post("/mode", s.drillStep(func(d *drill.Session) error {
					d.ToggleMode()
					return nil
				}))
				dr.Post("/reset", s.drillStep((*drill.Session).Reset))
				dr.Post("/selection", s.changeDrillSelection)
			})
		})

		ar.Route("/quizzes", func(qr chi.Router) {
			qr.Post("/", s.createQuiz)
			qr.Route("/{id}", func(qr chi.Router) {
				qr.Get("/", s.quizStep(nil))
				qr.Delete("/", s.deleteQuiz)
				qr.Post("/select", s.selectAnswer)
				qr.Post("/submit", s.quizStep((*quiz.Session).Submit))
				qr.Post("/advance", s.quizStep((*quiz.Session).Advance))
				qr.Post("/reset", s.quizStep((*quiz.Session).Reset))
				qr.Post("/selection", s.changeQuizSelection)
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.drills.janitor(ctx, s.cfg.SessionTTL/2)
	go s.quizzes.janitor(ctx, s.cfg.SessionTTL/2)

	errc := make(chan error, 1)
	go func() {
		log.Printf("ludus api listening on %s", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
