// Package intake implements the multi-step intake flow: the business and
// financial collectors and the state machine that sequences them and asks
// the planning service for recommendations.
package intake

import (
	"context"
	"finplan/pkg/domain"
	"finplan/pkg/logger"
	"finplan/pkg/metrics"
	"finplan/pkg/planner"
	"finplan/pkg/serrors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is a step of the intake flow.
type State string

const (
	CollectingBusinessInfo  State = "COLLECTING_BUSINESS_INFO"
	CollectingFinancialInfo State = "COLLECTING_FINANCIAL_INFO"
	AwaitingRecommendations State = "AWAITING_RECOMMENDATIONS"
	ShowingDashboard        State = "SHOWING_DASHBOARD"
)

// DefaultFailureMessage is surfaced when a failed recommendation request
// carries no message of its own.
const DefaultFailureMessage = "could not calculate recommendations"

// Options configure an Orchestrator.
type Options struct {
	// Instruments counts transitions. Optional.
	Instruments *metrics.Instruments
}

// Snapshot is a read-only copy of an intake session.
type Snapshot struct {
	State      State     `json:"state"`
	Generation uuid.UUID `json:"generation"`

	BusinessDraft  BusinessDraft  `json:"businessDraft"`
	FinancialDraft FinancialDraft `json:"financialDraft"`

	Business        *domain.BusinessProfile   `json:"business,omitempty"`
	Financial       *domain.FinancialProfile  `json:"financial,omitempty"`
	Recommendations *domain.RecommendationSet `json:"recommendations,omitempty"`

	// Error is the message of the last failed recommendation request.
	Error string `json:"error,omitempty"`
}

// Outcome is what the dashboard shows: the submitted profiles and the
// recommendations computed for them.
type Outcome struct {
	Generation      uuid.UUID
	Business        domain.BusinessProfile
	Financial       domain.FinancialProfile
	Recommendations *domain.RecommendationSet
}

// Orchestrator owns one intake session and moves it through its states.
// It is safe for concurrent use; the planning service is called without
// holding the lock, and a response that arrives after a Reset is discarded.
type Orchestrator struct {
	planner     planner.Client
	instruments *metrics.Instruments

	mu              sync.Mutex
	state           State
	generation      uuid.UUID
	business        *BusinessCollector
	financial       *FinancialCollector
	businessProfile *domain.BusinessProfile
	financialResult *domain.FinancialProfile
	recommendations *domain.RecommendationSet
	lastError       string
}

// New returns an orchestrator holding an empty session.
func New(client planner.Client, options Options) *Orchestrator {
	o := &Orchestrator{
		planner:     client,
		instruments: options.Instruments,
	}
	o.clear()

	return o
}

func (o *Orchestrator) clear() {
	o.state = CollectingBusinessInfo
	o.generation = uuid.New()
	o.business = NewBusinessCollector()
	o.financial = NewFinancialCollector()
	o.businessProfile = nil
	o.financialResult = nil
	o.recommendations = nil
	o.lastError = ""
}

func (o *Orchestrator) transition(ctx context.Context, to State) {
	from := o.state
	o.state = to
	o.instruments.CountTransition(ctx, string(from), string(to))
	logger.Debug(ctx, "intake transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Stringer("generation", o.generation))
}

func (o *Orchestrator) requireState(want State, op string) error {
	if o.state != want {
		return serrors.With(serrors.ErrConflict, "cannot %s while %s", op, o.state)
	}

	return nil
}

// EditBusiness runs fn against the business collector. It is only allowed
// while collecting business info.
func (o *Orchestrator) EditBusiness(fn func(c *BusinessCollector) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireState(CollectingBusinessInfo, "edit business info"); err != nil {
		return err
	}

	return fn(o.business)
}

// EditFinancial runs fn against the financial collector. It is only allowed
// while collecting financial info.
func (o *Orchestrator) EditFinancial(fn func(c *FinancialCollector) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireState(CollectingFinancialInfo, "edit financial info"); err != nil {
		return err
	}

	return fn(o.financial)
}

// SubmitBusiness coerces the business draft and moves on to the financial step.
func (o *Orchestrator) SubmitBusiness(ctx context.Context) (domain.BusinessProfile, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireState(CollectingBusinessInfo, "submit business info"); err != nil {
		return domain.BusinessProfile{}, err
	}

	p := o.business.Submit()
	o.businessProfile = &p
	o.transition(ctx, CollectingFinancialInfo)

	return p, nil
}

// SubmitFinancial coerces the financial draft, sends the merged submission to
// the planning service and, on success, shows the dashboard. On failure the
// session returns to the financial step with its data intact and the error
// message is kept in the snapshot. If the session was reset while the request
// was in flight, the response is dropped and serrors.ErrStale is returned.
func (o *Orchestrator) SubmitFinancial(ctx context.Context) (*domain.RecommendationSet, error) {
	o.mu.Lock()
	if err := o.requireState(CollectingFinancialInfo, "submit financial info"); err != nil {
		o.mu.Unlock()

		return nil, err
	}
	profile := o.financial.Submit()
	submission := domain.Submission{Business: *o.businessProfile, Financial: profile}
	o.financialResult = &profile
	o.lastError = ""
	generation := o.generation
	o.transition(ctx, AwaitingRecommendations)
	o.mu.Unlock()

	rs, err := o.planner.CalculateRecommendations(ctx, submission)
	if err == nil && rs == nil {
		err = serrors.With(serrors.ErrUnavailable, "planning service returned no recommendations")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.generation != generation {
		logger.Info(ctx, "discarding recommendations for a reset session",
			zap.Stringer("generation", generation))

		return nil, serrors.With(serrors.ErrStale, "session was reset while recommendations were calculated")
	}

	if err != nil {
		o.lastError = serrors.UserMessage(err, DefaultFailureMessage)
		o.transition(ctx, CollectingFinancialInfo)
		logger.Warn(ctx, "recommendation request failed", zap.Error(err))

		return nil, fmt.Errorf("could not calculate recommendations: %w", err)
	}

	o.recommendations = rs
	o.transition(ctx, ShowingDashboard)

	return rs, nil
}

// Back returns from the financial step to the business step. Nothing that
// was entered is discarded.
func (o *Orchestrator) Back(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireState(CollectingFinancialInfo, "go back"); err != nil {
		return err
	}
	o.lastError = ""
	o.transition(ctx, CollectingBusinessInfo)

	return nil
}

// Reset discards everything and starts a new session generation. It is
// allowed from any state; a recommendation request still in flight will have
// its response discarded.
func (o *Orchestrator) Reset(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	from := o.state
	previous := o.generation
	o.clear()
	o.instruments.CountTransition(ctx, string(from), string(o.state))
	logger.Debug(ctx, "intake reset",
		zap.Stringer("previous_generation", previous),
		zap.Stringer("generation", o.generation))
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Generation identifies the current session contents. It changes on Reset.
func (o *Orchestrator) Generation() uuid.UUID {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.generation
}

// Outcome returns the dashboard data. It is only available while the
// dashboard is shown.
func (o *Orchestrator) Outcome() (Outcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireState(ShowingDashboard, "show the dashboard"); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Generation:      o.generation,
		Business:        *o.businessProfile,
		Financial:       o.financialResult.Clone(),
		Recommendations: o.recommendations,
	}, nil
}

// Snapshot returns a copy of the session.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Snapshot{
		State:           o.state,
		Generation:      o.generation,
		BusinessDraft:   o.business.Draft(),
		FinancialDraft:  o.financial.Draft(),
		Recommendations: o.recommendations,
		Error:           o.lastError,
	}
	if o.businessProfile != nil {
		p := *o.businessProfile
		s.Business = &p
	}
	if o.financialResult != nil {
		p := o.financialResult.Clone()
		s.Financial = &p
	}

	return s
}
