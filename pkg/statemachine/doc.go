// Package statemachine implements a small, typed finite state machine.
//
// States and events are any comparable types, typically string enums:
//
//	type State string
//	type Event string
//
//	m := statemachine.New[State, Event]("idle",
//		statemachine.WithTransition[State, Event]("idle", "open", "request"),
//		statemachine.WithTransition[State, Event]("open", "idle", "close",
//			statemachine.WithAction[State, Event](logTransition),
//		),
//	)
//	err := m.Fire(ctx, "request", nil)
//
// Guards veto transitions; when several transitions share the same
// state/event pair the first one whose guards pass wins. Actions run in order
// before the state changes and abort the transition by returning an error.
//
// Fire reports undefined transitions with ErrNoTransitionAvailable and
// vetoed ones with ErrTransitionRejected; use IsNoTransitionAvailableError
// and IsTransitionRejectedError to tell them apart.
package statemachine
