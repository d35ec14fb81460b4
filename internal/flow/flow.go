// Package flow owns all client-visible session state: the view the user is
// in, the recipe awaiting payment, the unlock ledger, and the one-at-a-time
// gate on suspending operations.
package flow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sabores-de-africa/sabores/internal/catalog"
	"github.com/sabores-de-africa/sabores/internal/models"
	"github.com/sabores-de-africa/sabores/internal/payment"
	"github.com/sabores-de-africa/sabores/internal/providers"
	"github.com/sabores-de-africa/sabores/internal/storage"
)

// ViewState mirrors the single-view UI. ViewingDetail implies the active
// recipe's detail resolved successfully; AwaitingPayment implies the active
// recipe is premium and not yet unlocked.
type ViewState string

const (
	StateBrowsing        ViewState = "browsing"
	StateViewingDetail   ViewState = "viewing_detail"
	StateAwaitingPayment ViewState = "awaiting_payment"
)

// PaymentState tracks the checkout sub-machine. There is no failed state:
// every submitted payment eventually succeeds in the simulation.
type PaymentState string

const (
	PaymentIdle       PaymentState = "idle"
	PaymentAwaiting   PaymentState = "awaiting"
	PaymentProcessing PaymentState = "processing"
	PaymentSucceeded  PaymentState = "succeeded"
)

// DefaultFetchTimeout bounds a single detail fetch so a hung provider call
// cannot pin the busy indicator forever.
const DefaultFetchTimeout = 60 * time.Second

var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrBusy             = errors.New("another operation is in flight")
	ErrNoPaymentPending = errors.New("no payment awaiting submission")
)

// Outcome is the result of selecting a recipe: either the gate closed and
// payment is required, or the detail view resolved.
type Outcome struct {
	PaymentRequired bool
	Recipe          models.RecipeSummary
	Detail          *models.RecipeDetail
}

// Snapshot is a point-in-time view of session state, for the UI.
type Snapshot struct {
	State          ViewState    `json:"state"`
	PaymentState   PaymentState `json:"payment_state"`
	Busy           bool         `json:"busy"`
	ActiveRecipeID string       `json:"active_recipe_id,omitempty"`
	Unlocked       []string     `json:"unlocked"`
}

// Option configures a Session.
type Option func(*Session)

// WithDetailCache enables per-recipe caching of fetched detail. Off by
// default: the stock behavior re-fetches on every detail view.
func WithDetailCache(enabled bool) Option {
	return func(s *Session) {
		if enabled {
			s.cache = make(map[string]*models.RecipeDetail)
		} else {
			s.cache = nil
		}
	}
}

// WithFetchTimeout overrides the per-fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.fetchTimeout = d
	}
}

// Session is the owning controller for one browsing session. All state is
// mutated under one mutex; suspending operations (the detail fetch, the
// payment delays) run outside it behind the busy gate, so at most one is in
// flight at a time.
type Session struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	source  providers.RecipeSource
	unlocks *storage.UnlockStore
	sim     *payment.Simulator

	state    ViewState
	payState PaymentState
	busy     bool
	active   *models.RecipeSummary
	detail   *models.RecipeDetail

	fetchTimeout time.Duration
	cache        map[string]*models.RecipeDetail
}

// NewSession builds a session in the Browsing state with an empty ledger.
func NewSession(cat *catalog.Catalog, source providers.RecipeSource, sim *payment.Simulator, opts ...Option) *Session {
	s := &Session{
		catalog:      cat,
		source:       source,
		unlocks:      storage.New(),
		sim:          sim,
		state:        StateBrowsing,
		payState:     PaymentIdle,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsUnlocked reports whether the session has paid for the recipe.
func (s *Session) IsUnlocked(id string) bool {
	return s.unlocks.IsUnlocked(id)
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:        s.state,
		PaymentState: s.payState,
		Busy:         s.busy,
		Unlocked:     s.unlocks.IDs(),
	}
	if s.active != nil {
		snap.ActiveRecipeID = s.active.ID
	}
	return snap
}

// SelectRecipe routes a recipe click. Free or already-unlocked recipes go
// straight to a detail fetch; locked premium recipes move the session to
// AwaitingPayment without ever calling the fetcher. A failed fetch restores
// the prior view and is not retried.
func (s *Session) SelectRecipe(ctx context.Context, id string) (*Outcome, error) {
	s.mu.Lock()

	recipe, ok := s.catalog.Get(id)
	if !ok {
		s.mu.Unlock()
		return nil, ErrRecipeNotFound
	}
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	if recipe.Premium && !s.unlocks.IsUnlocked(recipe.ID) {
		s.state = StateAwaitingPayment
		s.payState = PaymentAwaiting
		s.active = &recipe
		s.mu.Unlock()
		slog.Info("Premium recipe locked, awaiting payment", "recipe", recipe.ID, "price", recipe.Price)
		return &Outcome{PaymentRequired: true, Recipe: recipe}, nil
	}

	if cached, ok := s.cache[recipe.ID]; ok {
		s.state = StateViewingDetail
		s.detail = cached
		s.mu.Unlock()
		return &Outcome{Recipe: recipe, Detail: cached}, nil
	}

	prior := s.state
	s.busy = true
	s.mu.Unlock()

	detail, err := s.fetchDetail(ctx, recipe)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		// The prior view survives a failed fetch; no automatic retry.
		s.state = prior
		slog.Error("Failed to fetch recipe detail", "recipe", recipe.ID, "err", err)
		return nil, err
	}

	s.state = StateViewingDetail
	s.detail = detail
	if s.cache != nil {
		s.cache[recipe.ID] = detail
	}
	return &Outcome{Recipe: recipe, Detail: detail}, nil
}

func (s *Session) fetchDetail(ctx context.Context, recipe models.RecipeSummary) (*models.RecipeDetail, error) {
	fctx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	detail, err := s.source.FetchRecipeDetail(fctx, recipe)
	if err != nil {
		var dfe *providers.DetailFetchError
		if !errors.As(err, &dfe) {
			err = &providers.DetailFetchError{RecipeID: recipe.ID, Err: err}
		}
		return nil, err
	}
	return detail, nil
}

// SubmitPayment drives AwaitingPayment → Processing → Succeeded, unlocks the
// active recipe, and after the confirmation delay re-invokes the detail path
// for it — automatically, exactly once. A form validation failure returns
// the session to the checkout form.
func (s *Session) SubmitPayment(ctx context.Context, info models.PaymentInfo) (*payment.Receipt, *Outcome, error) {
	s.mu.Lock()
	if s.state != StateAwaitingPayment || s.active == nil {
		s.mu.Unlock()
		return nil, nil, ErrNoPaymentPending
	}
	if s.busy {
		s.mu.Unlock()
		return nil, nil, ErrBusy
	}
	recipe := *s.active
	s.busy = true
	s.payState = PaymentProcessing
	s.mu.Unlock()

	receipt, err := s.sim.Process(ctx, recipe, info)
	if err != nil {
		s.mu.Lock()
		s.busy = false
		s.payState = PaymentAwaiting
		s.mu.Unlock()
		return nil, nil, err
	}

	s.mu.Lock()
	s.unlocks.Unlock(recipe.ID)
	s.payState = PaymentSucceeded
	s.mu.Unlock()
	slog.Info("Payment succeeded", "recipe", recipe.ID, "transaction", receipt.TransactionID)

	if err := s.sim.Settle(ctx); err != nil {
		s.finishPayment()
		return receipt, nil, err
	}
	s.finishPayment()

	// The single automatic retry: re-enter the same click path now that the
	// recipe is unlocked.
	outcome, err := s.SelectRecipe(ctx, recipe.ID)
	if err != nil {
		return receipt, nil, err
	}
	return receipt, outcome, nil
}

func (s *Session) finishPayment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payState = PaymentIdle
	s.state = StateBrowsing
	s.active = nil
	s.busy = false
}

// CancelPayment abandons the checkout form. The ledger is untouched.
func (s *Session) CancelPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPayment {
		return ErrNoPaymentPending
	}
	s.state = StateBrowsing
	s.payState = PaymentIdle
	s.active = nil
	return nil
}
