package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/hover"
	"github.com/umputun/cardfilter/pkg/service"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/filter.go -pkg mocks -skip-ensure -fmt goimports . Filter
//go:generate moq -out mocks/page.go -pkg mocks -skip-ensure -fmt goimports . Page
//go:generate moq -out mocks/advisor.go -pkg mocks -skip-ensure -fmt goimports . Advisor
//go:generate moq -out mocks/loop.go -pkg mocks -skip-ensure -fmt goimports . Loop

// Server is the management panel HTTP server
type Server struct {
	config  ConfigProvider
	filter  Filter
	page    Page
	advisor Advisor
	loop    Loop
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Filter is the rule management surface
type Filter interface {
	AddKeyword(ctx context.Context, keyword string) bool
	RemoveKeyword(ctx context.Context, keyword string)
	AddAuthor(ctx context.Context, input string) (domain.BlockedAuthor, bool)
	RemoveAuthor(ctx context.Context, id string)
	Rules() service.RulesView
	Stats() domain.Stats
}

// Page is the host document
type Page interface {
	HTML() (string, error)
	AppendCards(fragment string) (int, error)
	RemoveCard(i int) bool
}

// Advisor receives pointer events
type Advisor interface {
	Handle(ctx context.Context, ev domain.PointerEvent) error
	Status() hover.Status
}

// Loop runs engine work on the single event loop goroutine
type Loop interface {
	Do(ctx context.Context, fn func()) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Deps groups the engine collaborators the server drives
type Deps struct {
	Filter  Filter
	Page    Page
	Advisor Advisor
	Loop    Loop
}

// New initializes a new server instance
func New(cfg ConfigProvider, deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		filter:  deps.Filter,
		page:    deps.Page,
		advisor: deps.Advisor,
		loop:    deps.Loop,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting panel server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down panel server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("cardfilter", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.pageHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /rules", s.rulesHandler)
		r.HandleFunc("GET /stats", s.statsHandler)

		r.HandleFunc("POST /keywords", s.addKeywordHandler)
		r.HandleFunc("DELETE /keywords/{keyword}", s.removeKeywordHandler)
		r.HandleFunc("POST /authors", s.addAuthorHandler)
		r.HandleFunc("DELETE /authors/{id}", s.removeAuthorHandler)

		r.HandleFunc("POST /cards", s.appendCardsHandler)
		r.HandleFunc("DELETE /cards/{index}", s.removeCardHandler)

		r.HandleFunc("POST /pointer", s.pointerHandler)
		r.HandleFunc("GET /hover", s.hoverHandler)
	})
}

// onLoop runs fn on the event loop, rendering an error if the loop can't take it
func (s *Server) onLoop(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := s.loop.Do(r.Context(), fn); err != nil {
		log.Printf("[WARN] event loop unavailable: %v", err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return false
	}
	return true
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
