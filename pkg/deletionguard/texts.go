package deletionguard

import (
	"context"
	"embed"
)

// Locales holds the prompt translations in i18n YAML layout, one file per
// language, under the "locales" directory.
//
//go:embed locales/*.yaml
var Locales embed.FS

// Texts resolves translation keys. *i18n.Translator satisfies it.
type Texts interface {
	Tc(ctx context.Context, key string, args ...string) string
}

// StaticTexts resolves keys from a flat map, returning the key when missing.
type StaticTexts map[string]string

func (s StaticTexts) Tc(_ context.Context, key string, _ ...string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

// DefaultTexts returns the English texts used when no translator is configured.
func DefaultTexts() StaticTexts {
	return StaticTexts{
		KeyTitle:         "Delete workspace",
		KeyPrompt:        "You have an outstanding balance on your last paid workspace. Settle the balance before deleting this workspace.",
		KeySettleBalance: "Settle balance",
		KeyCancel:        "Cancel",
	}
}
