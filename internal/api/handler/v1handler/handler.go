// Package v1handler serves the v1 intake wizard API. Every wizard lives in an
// in-memory session; handlers translate requests into intake operations and
// semantic errors into HTTP statuses.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"finplan/internal/config"
	"finplan/internal/refdata"
	"finplan/internal/report"
	"finplan/pkg/logger"
	"finplan/pkg/metrics"
	"finplan/pkg/planner"
	"finplan/pkg/serrors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

// Deps are the collaborators of the handler.
type Deps struct {
	Planner     planner.Client
	Loader      *refdata.Loader
	Exporter    *report.Exporter
	Instruments *metrics.Instruments
}

// Options configure session lifecycle.
type Options struct {
	// IdleTTL is how long an untouched session is kept.
	IdleTTL time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{IdleTTL: cfg.Session.IdleTTL}
}

// Handler implements the v1 routes.
type Handler struct {
	deps     Deps
	sessions *Registry
}

// New returns a Handler with an empty session registry.
func New(deps Deps, opts Options) *Handler {
	return &Handler{
		deps:     deps,
		sessions: NewRegistry(opts.IdleTTL),
	}
}

// Sessions returns the session registry, for running its sweeper.
func (h *Handler) Sessions() *Registry { return h.sessions }

// Routes returns the v1 router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(h.withSession)

			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Get("/options", h.GetOptions)

			r.Patch("/business", h.UpdateBusiness)
			r.Post("/business/submit", h.SubmitBusiness)

			r.Patch("/financial", h.UpdateFinancial)
			r.Post("/financial/debts", h.AddDebt)
			r.Delete("/financial/debts/{index}", h.RemoveDebt)
			r.Post("/financial/goals", h.AddGoal)
			r.Delete("/financial/goals/{timeline}/{index}", h.RemoveGoal)
			r.Post("/financial/submit", h.SubmitFinancial)

			r.Post("/back", h.Back)
			r.Post("/reset", h.Reset)

			r.Get("/dashboard", h.GetDashboard)
			r.Post("/report", h.ExportReport)
		})
	})

	return r
}

type sessionKey struct{}

func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
		if err != nil {
			h.writeError(r.Context(), w, serrors.With(serrors.ErrNotFound, "session not found"))

			return
		}
		s, err := h.sessions.get(id)
		if err != nil {
			h.writeError(r.Context(), w, err)

			return
		}

		ctx := logger.WithFields(r.Context(), zap.Stringer("session", id))
		ctx = context.WithValue(ctx, sessionKey{}, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) *session {
	s, _ := ctx.Value(sessionKey{}).(*session)

	return s
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// NewError maps err to a status code and an error body. Unknown errors are
// logged and reported as internal errors without details.
func (h *Handler) NewError(ctx context.Context, err error) (int, ErrorResponse) {
	type mapping struct {
		kind     serrors.Kind
		status   int
		fallback string
	}
	for _, m := range []mapping{
		{serrors.ErrNotFound, http.StatusNotFound, "resource not found"},
		{serrors.ErrBadRequest, http.StatusBadRequest, "bad request"},
		{serrors.ErrConflict, http.StatusConflict, "operation not allowed now"},
		{serrors.ErrStale, http.StatusConflict, "session was reset"},
		{serrors.ErrRejected, http.StatusUnprocessableEntity, "request rejected by planning service"},
		{serrors.ErrUnavailable, http.StatusBadGateway, "planning service unavailable"},
	} {
		if errors.Is(err, m.kind) {
			if m.status >= http.StatusInternalServerError {
				logger.Warn(ctx, "planning service failure", zap.Error(err))
			}

			return m.status, ErrorResponse{Code: m.kind.Error(), Error: serrors.UserMessage(err, m.fallback)}
		}
	}

	logger.Error(ctx, "internal error", zap.Error(err))

	return http.StatusInternalServerError, ErrorResponse{Code: serrors.ErrInternal.Error(), Error: "internal error"}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := h.NewError(ctx, err)
	writeJSON(ctx, w, status, body)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// decodeBody decodes the JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
