package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cardapio/internal/application"
	"cardapio/internal/application/commands"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// Server exposes a Backend over the REST contract the clients consume and
// renders the list pages as plain HTML.
type Server struct {
	backend ports.Backend
	log     *zap.Logger
	perPage int
	token   string
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithPerPage sets the page size used when a request does not ask for one
func WithPerPage(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.perPage = n
		}
	}
}

// WithToken requires a bearer token on every /api request
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// NewServer creates a server over backend
func NewServer(backend ports.Backend, opts ...Option) *Server {
	s := &Server{
		backend: backend,
		log:     zap.NewNop(),
		perPage: domain.DefaultPerPage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with the common middleware applied
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(withRequestID, s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	if s.token != "" {
		api.Use(s.requireToken)
	}
	api.Methods(http.MethodGet).Path("/categories").HandlerFunc(s.listCategories)
	api.Methods(http.MethodGet).Path("/diet-tags").HandlerFunc(s.listDietTags)
	api.Methods(http.MethodGet).Path("/{kind}").HandlerFunc(s.listItems)
	api.Methods(http.MethodPost).Path("/{kind}/{id:[0-9]+}/favorite").HandlerFunc(s.setFavorite)
	api.Methods(http.MethodDelete).Path("/{kind}/{id:[0-9]+}").HandlerFunc(s.deleteItem)

	r.Methods(http.MethodGet).Path("/").Handler(http.RedirectHandler("/"+domain.KindRecipe.Path(), http.StatusFound))
	r.Methods(http.MethodGet).Path("/{kind}").HandlerFunc(s.listPage)

	return withCommonHeaders(r)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

type favoriteRequest struct {
	Favorited *bool `json:"favorited"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindVar(w, r)
	if !ok {
		return
	}

	cmd := s.listCommand(kind, domain.FilterStateFromValues(r.URL.Query()))
	page, err := cmd.Execute(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, page)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.backend.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, listEnvelope[domain.Category]{Data: categories})
}

func (s *Server) listDietTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.backend.ListDietTags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, listEnvelope[domain.DietTag]{Data: tags})
}

func (s *Server) setFavorite(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindVar(w, r)
	if !ok {
		return
	}
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Favorited == nil {
		writeJSONStatus(w, http.StatusBadRequest, errorResponse{Error: `body must be {"favorited": bool}`})
		return
	}

	res, err := commands.NewSetFavoriteCommand(s.backend, kind, id, *req.Favorited).Execute(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Debug(res.Message, zap.Int64("id", res.ID), zap.Bool("favorited", res.Favorited))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindVar(w, r)
	if !ok {
		return
	}
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	res, err := commands.NewDeleteCommand(s.backend, kind, id).Execute(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Debug(res.Message, zap.Int64("id", res.DeletedID))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCommand(kind domain.Kind, filters domain.FilterState) *commands.ListCommand {
	cmd := commands.NewListCommand(s.backend, kind, filters)
	if cmd.PerPage == 0 {
		cmd.PerPage = s.perPage
	}
	return cmd
}

func kindVar(w http.ResponseWriter, r *http.Request) (domain.Kind, bool) {
	kind := domain.ParseKind(mux.Vars(r)["kind"])
	if kind == domain.KindUnknown {
		http.NotFound(w, r)
		return kind, false
	}
	return kind, true
}

// statusFor maps application errors onto HTTP status codes
func statusFor(err error) int {
	var validationErr *application.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrUnavailable), errors.Is(err, application.ErrBadPagination):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.String("request_id", r.Header.Get(RequestIDHeader)), zap.Error(err))
	}
	writeJSONStatus(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
