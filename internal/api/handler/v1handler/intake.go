package v1handler

import (
	"context"
	"finplan/internal/dashboard"
	"finplan/internal/intake"
	"finplan/pkg/domain"
	"finplan/pkg/logger"
	"finplan/pkg/serrors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionResponse is a session snapshot along with the export state.
type SessionResponse struct {
	intake.Snapshot

	// Exporting is set while a report export is in flight.
	Exporting bool `json:"exporting"`
}

// CreateSessionResponse is returned when a session is created.
type CreateSessionResponse struct {
	ID      string                  `json:"id"`
	Options domain.ReferenceOptions `json:"options"`
	Session SessionResponse         `json:"session"`
}

// CreateSession starts a new intake session and loads the reference data
// for its selectors. Lists that cannot be loaded are returned empty.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	options := h.deps.Loader.Load(ctx)
	o := intake.New(h.deps.Planner, intake.Options{Instruments: h.deps.Instruments})
	s := h.sessions.add(o, options)
	logger.Debug(ctx, "session created", zap.Stringer("session", s.id))

	writeJSON(ctx, w, http.StatusCreated, CreateSessionResponse{
		ID:      s.id.String(),
		Options: options,
		Session: s.view(),
	})
}

// GetSession returns a snapshot of the session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, s.view())
}

// DeleteSession discards the session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	h.sessions.remove(s.id)
	w.WriteHeader(http.StatusNoContent)
}

// GetOptions returns the reference lists loaded for the session.
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, s.options)
}

// FieldUpdate sets one business field addressed by its dotted path.
type FieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateBusiness applies a list of field updates. Either all updates are
// applied or none.
func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	var updates []FieldUpdate
	if err := decodeBody(r, &updates); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	fields := make([]intake.BusinessField, len(updates))
	for i, u := range updates {
		f, err := intake.ParseBusinessField(u.Field)
		if err != nil {
			h.writeError(ctx, w, err)

			return
		}
		fields[i] = f
	}

	err := s.orchestrator.EditBusiness(func(c *intake.BusinessCollector) error {
		for i, f := range fields {
			c.Set(f, updates[i].Value)
		}

		return nil
	})
	h.respondSnapshot(ctx, w, s, err)
}

// SubmitBusiness completes the business step.
func (h *Handler) SubmitBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	_, err := s.orchestrator.SubmitBusiness(ctx)
	h.respondSnapshot(ctx, w, s, err)
}

// GoalUpdate edits the pending goal.
type GoalUpdate struct {
	Text     *string `json:"text,omitempty"`
	Timeline *string `json:"timeline,omitempty"`
}

// FinancialUpdate edits the financial step. Absent fields are left alone.
type FinancialUpdate struct {
	CurrentSavings *string           `json:"currentSavings,omitempty"`
	Investments    *string           `json:"investments,omitempty"`
	Debt           map[string]string `json:"debt,omitempty"`
	Goal           *GoalUpdate       `json:"goal,omitempty"`
}

type debtChange struct {
	field intake.DebtField
	value string
}

func parseDebtChanges(debt map[string]string) ([]debtChange, error) {
	changes := make([]debtChange, 0, len(debt))
	for name, value := range debt {
		f, err := intake.ParseDebtField(name)
		if err != nil {
			return nil, err
		}
		if f == intake.DebtFieldType && value != "" {
			if _, ok := domain.ParseDebtType(value); !ok {
				return nil, serrors.With(serrors.ErrBadRequest, "unknown debt type %q", value)
			}
		}
		changes = append(changes, debtChange{field: f, value: value})
	}

	return changes, nil
}

func parseTimeline(s *string) (*domain.Timeline, error) {
	if s == nil {
		return nil, nil //nolint: nilnil
	}
	tl, ok := domain.ParseTimeline(*s)
	if !ok {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown timeline %q", *s)
	}

	return &tl, nil
}

// applyFinancial validates u and then applies it to c. Nothing is applied
// if any part is invalid.
func applyFinancial(u FinancialUpdate) (func(c *intake.FinancialCollector) error, error) {
	changes, err := parseDebtChanges(u.Debt)
	if err != nil {
		return nil, err
	}
	var timeline *domain.Timeline
	if u.Goal != nil {
		if timeline, err = parseTimeline(u.Goal.Timeline); err != nil {
			return nil, err
		}
	}

	return func(c *intake.FinancialCollector) error {
		if u.CurrentSavings != nil {
			c.SetCurrentSavings(*u.CurrentSavings)
		}
		if u.Investments != nil {
			c.SetInvestments(*u.Investments)
		}
		for _, ch := range changes {
			if err := c.SetDebtField(ch.field, ch.value); err != nil {
				return err
			}
		}
		if u.Goal != nil && u.Goal.Text != nil {
			c.SetGoalText(*u.Goal.Text)
		}
		if timeline != nil {
			return c.SelectTimeline(*timeline)
		}

		return nil
	}, nil
}

// UpdateFinancial edits savings, investments and the pending debt and goal.
func (h *Handler) UpdateFinancial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	var u FinancialUpdate
	if err := decodeBody(r, &u); err != nil {
		h.writeError(ctx, w, err)

		return
	}
	apply, err := applyFinancial(u)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	h.respondSnapshot(ctx, w, s, s.orchestrator.EditFinancial(apply))
}

// AddedResponse tells whether an add operation appended an entry.
type AddedResponse struct {
	Added   bool            `json:"added"`
	Session SessionResponse `json:"session"`
}

// AddDebt appends the pending debt entry. The body may carry debt fields to
// set first. An incomplete entry is not added and added is false.
func (h *Handler) AddDebt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	var debt map[string]string
	if err := decodeBody(r, &debt); err != nil {
		h.writeError(ctx, w, err)

		return
	}
	apply, err := applyFinancial(FinancialUpdate{Debt: debt})
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	var added bool
	err = s.orchestrator.EditFinancial(func(c *intake.FinancialCollector) error {
		if err := apply(c); err != nil {
			return err
		}
		added = c.AddDebt()

		return nil
	})
	h.respondAdded(ctx, w, s, added, err)
}

// RemoveDebt removes a debt entry by index.
func (h *Handler) RemoveDebt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	i, err := indexParam(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	err = s.orchestrator.EditFinancial(func(c *intake.FinancialCollector) error {
		c.RemoveDebt(i)

		return nil
	})
	h.respondSnapshot(ctx, w, s, err)
}

// AddGoal appends the pending goal to its timeline. The body may carry the
// goal text and timeline to set first.
func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	var goal GoalUpdate
	if err := decodeBody(r, &goal); err != nil {
		h.writeError(ctx, w, err)

		return
	}
	apply, err := applyFinancial(FinancialUpdate{Goal: &goal})
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	var added bool
	err = s.orchestrator.EditFinancial(func(c *intake.FinancialCollector) error {
		if err := apply(c); err != nil {
			return err
		}
		added = c.AddGoal()

		return nil
	})
	h.respondAdded(ctx, w, s, added, err)
}

// RemoveGoal removes a goal by timeline and index.
func (h *Handler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	i, err := indexParam(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}
	tl := domain.Timeline(chi.URLParam(r, "timeline"))

	err = s.orchestrator.EditFinancial(func(c *intake.FinancialCollector) error {
		return c.RemoveGoal(tl, i)
	})
	h.respondSnapshot(ctx, w, s, err)
}

// SubmitFinancial sends the collected data to the planning service. Only one
// submission per generation may be in flight, so a reset session can submit
// again while the discarded call is still pending. The call is not cancelled
// when the client goes away, so that its outcome still lands in the session.
func (h *Handler) SubmitFinancial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	gen := s.orchestrator.Generation()
	if !s.beginSubmit(gen) {
		h.writeError(ctx, w, serrors.With(serrors.ErrConflict, "a submission is already in progress"))

		return
	}
	defer s.endSubmit(gen)

	_, err := s.orchestrator.SubmitFinancial(context.WithoutCancel(ctx))
	h.respondSnapshot(ctx, w, s, err)
}

// Back returns to the business step.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	h.respondSnapshot(ctx, w, s, s.orchestrator.Back(ctx))
}

// Reset clears the session.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	s.orchestrator.Reset(ctx)
	h.respondSnapshot(ctx, w, s, nil)
}

// GetDashboard returns the normalized recommendations.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	outcome, err := s.orchestrator.Outcome()
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, dashboard.Normalize(outcome.Recommendations, outcome.Business, outcome.Financial))
}

// ExportReport downloads a report of the dashboard in the format given by
// the format query parameter. Only one export per session may be in flight.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := sessionFrom(ctx)

	format, ok := domain.ParseReportFormat(r.URL.Query().Get("format"))
	if !ok {
		h.writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "unsupported report format %q", r.URL.Query().Get("format")))

		return
	}

	outcome, err := s.orchestrator.Outcome()
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	if !s.exporting.CompareAndSwap(false, true) {
		h.writeError(ctx, w, serrors.With(serrors.ErrConflict, "an export is already in progress"))

		return
	}
	defer s.exporting.Store(false)

	download, err := h.deps.Exporter.Export(ctx, outcome.Business, outcome.Recommendations, format)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}
	if s.orchestrator.Generation() != outcome.Generation {
		h.writeError(ctx, w, serrors.With(serrors.ErrStale, "session was reset while the report was generated"))

		return
	}

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+download.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(download.Data); err != nil {
		logger.Warn(ctx, "could not write report", zap.Error(err))
	}
}

func (h *Handler) respondSnapshot(ctx context.Context, w http.ResponseWriter, s *session, err error) {
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}
	writeJSON(ctx, w, http.StatusOK, s.view())
}

func (h *Handler) respondAdded(ctx context.Context, w http.ResponseWriter, s *session, added bool, err error) {
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}
	writeJSON(ctx, w, http.StatusOK, AddedResponse{Added: added, Session: s.view()})
}

func indexParam(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrBadRequest, err, "index must be an integer")
	}

	return i, nil
}
