package deletionguard

import (
	"log/slog"
)

// Option configures a Guard.
type Option func(*Guard)

// WithSettlementRoute overrides DefaultSettlementRoute. Empty routes are ignored.
func WithSettlementRoute(route string) Option {
	return func(g *Guard) {
		if route != "" {
			g.route = route
		}
	}
}

// WithTexts sets the resolver for the prompt text slots.
func WithTexts(t Texts) Option {
	return func(g *Guard) {
		if t != nil {
			g.texts = t
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithInputs seeds the initial inputs.
func WithInputs(in Inputs) Option {
	return func(g *Guard) {
		g.inputs = in
	}
}
