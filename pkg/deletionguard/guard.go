package deletionguard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/workspacebilling/pkg/logger"
	"github.com/dmitrymomot/workspacebilling/pkg/statemachine"
)

// State of the confirmation prompt.
type State string

const (
	StateIdle       State = "idle"
	StatePromptOpen State = "prompt_open"
)

// Event drives the prompt state machine.
type Event string

const (
	EventRequestDeletion Event = "request_deletion"
	EventConfirm         Event = "confirm"
	EventCancel          Event = "cancel"
)

// DefaultSettlementRoute is where confirm sends the user to pay the balance.
const DefaultSettlementRoute = "/settings/subscription"

// WouldBlock reports whether deleting a workspace must be intercepted:
// the account owes money and this is its only paid workspace.
// Zero paid workspaces never block.
func WouldBlock(outstandingBalance int64, ownedPaidPolicies int) bool {
	return outstandingBalance > 0 && ownedPaidPolicies == 1
}

// Inputs are recomputed by the caller on every snapshot change.
type Inputs struct {
	OwnedPaidPolicies  int
	OutstandingBalance int64
}

func (in Inputs) WouldBlock() bool {
	return WouldBlock(in.OutstandingBalance, in.OwnedPaidPolicies)
}

// Guard intercepts workspace deletion while a balance is outstanding on the
// last paid workspace. One Guard belongs to one UI context.
type Guard struct {
	machine *statemachine.Machine[State, Event]
	nav     Navigator
	texts   Texts
	route   string
	logger  *slog.Logger

	mu     sync.RWMutex
	inputs Inputs
}

// New creates a guard in the idle state. nav receives the settlement
// navigation on confirm; a nil nav makes confirm a plain close.
func New(nav Navigator, opts ...Option) *Guard {
	g := &Guard{
		nav:    nav,
		texts:  DefaultTexts(),
		route:  DefaultSettlementRoute,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}

	blocked := statemachine.WithGuard[State, Event](func(context.Context, State, Event, any) bool {
		return g.WouldBlock()
	})
	g.machine = statemachine.New(StateIdle,
		statemachine.WithTransition(StateIdle, StatePromptOpen, EventRequestDeletion, blocked),
		statemachine.WithTransition(StatePromptOpen, StatePromptOpen, EventRequestDeletion, blocked),
		statemachine.WithTransition[State, Event](StatePromptOpen, StateIdle, EventConfirm),
		statemachine.WithTransition[State, Event](StatePromptOpen, StateIdle, EventCancel),
	)
	return g
}

// Update replaces the inputs. It never changes the prompt state.
func (g *Guard) Update(in Inputs) {
	g.mu.Lock()
	g.inputs = in
	g.mu.Unlock()
}

// Inputs returns the current inputs.
func (g *Guard) Inputs() Inputs {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inputs
}

// WouldBlock is side-effect free; use it to pre-render menu affordances.
func (g *Guard) WouldBlock() bool {
	return g.Inputs().WouldBlock()
}

// State returns the current prompt state.
func (g *Guard) State() State {
	return g.machine.Current()
}

// IsPromptOpen reports whether the confirmation prompt is showing.
func (g *Guard) IsPromptOpen() bool {
	return g.machine.Is(StatePromptOpen)
}

// SettlementRoute returns the navigation target used by Confirm.
func (g *Guard) SettlementRoute() string {
	return g.route
}

// RequestDeletion returns true when the deletion is blocked, opening the
// prompt (or keeping it open). When false the caller proceeds with deletion.
func (g *Guard) RequestDeletion(ctx context.Context) bool {
	if !g.WouldBlock() {
		return false
	}
	if err := g.machine.Fire(ctx, EventRequestDeletion, nil); err != nil {
		// inputs changed between the check and the transition
		g.logger.DebugContext(ctx, "deletion not blocked",
			logger.Event(string(EventRequestDeletion)),
			logger.Error(err),
		)
		return false
	}

	in := g.Inputs()
	g.logger.InfoContext(ctx, "workspace deletion blocked by outstanding balance",
		logger.Event(string(EventRequestDeletion)),
		logger.Balance(in.OutstandingBalance),
	)
	return true
}

// Confirm closes the prompt and navigates once to the settlement route.
// Returns false without side effects when no prompt is open.
func (g *Guard) Confirm(ctx context.Context) bool {
	if err := g.machine.Fire(ctx, EventConfirm, nil); err != nil {
		g.logger.DebugContext(ctx, "confirm ignored", logger.Event(string(EventConfirm)), logger.Error(err))
		return false
	}

	g.logger.InfoContext(ctx, "navigating to balance settlement",
		logger.Event(string(EventConfirm)),
		logger.Route(g.route),
	)
	if g.nav != nil {
		g.nav.Navigate(ctx, g.route)
	}
	return true
}

// Cancel closes the prompt without navigating.
// Returns false when no prompt is open.
func (g *Guard) Cancel(ctx context.Context) bool {
	if err := g.machine.Fire(ctx, EventCancel, nil); err != nil {
		g.logger.DebugContext(ctx, "cancel ignored", logger.Event(string(EventCancel)), logger.Error(err))
		return false
	}
	g.logger.DebugContext(ctx, "deletion prompt dismissed", logger.Event(string(EventCancel)))
	return true
}
