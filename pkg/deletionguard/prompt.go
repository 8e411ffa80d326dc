package deletionguard

import (
	"context"
)

// Translation keys of the prompt text slots.
const (
	KeyTitle         = "workspace.common.delete"
	KeyPrompt        = "workspace.common.deleteWithBalance"
	KeySettleBalance = "workspace.common.settleBalance"
	KeyCancel        = "common.cancel"
)

// Prompt is a renderable confirmation dialog.
type Prompt struct {
	Visible     bool   `json:"visible"`
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	ConfirmText string `json:"confirm_text"`
	CancelText  string `json:"cancel_text"`

	// OnConfirm and OnCancel take the context of the action that fires them,
	// not the one the prompt was rendered with.
	OnConfirm func(ctx context.Context) bool `json:"-"`
	OnCancel  func(ctx context.Context) bool `json:"-"`
}

// Prompt describes the dialog for the current state, with texts resolved in
// the locale carried by ctx.
func (g *Guard) Prompt(ctx context.Context) Prompt {
	return Prompt{
		Visible:     g.IsPromptOpen(),
		Title:       g.texts.Tc(ctx, KeyTitle),
		Prompt:      g.texts.Tc(ctx, KeyPrompt),
		ConfirmText: g.texts.Tc(ctx, KeySettleBalance),
		CancelText:  g.texts.Tc(ctx, KeyCancel),
		OnConfirm:   g.Confirm,
		OnCancel:    g.Cancel,
	}
}
