// Package i18n resolves user-facing strings from YAML or JSON locale files.
//
// Translations are nested maps addressed with dot-separated keys. Values may
// contain %{name} placeholders filled from key/value arguments:
//
//	t, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	title := t.T("es", "workspace.common.delete")
//
// A key missing in the requested language falls back to the default
// language, then to the key itself (disable with WithFallbackToKey(false)).
//
// Language negotiation uses golang.org/x/text/language; Middleware stores the
// negotiated language in the request context for Tc.
package i18n
