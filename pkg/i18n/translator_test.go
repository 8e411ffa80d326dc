package i18n_test

import (
	"context"
	"testing"

	"github.com/dmitrymomot/workspacebilling/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()

	adapter := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {
			"common": map[string]any{"cancel": "Cancel"},
			"workspace": map[string]any{
				"common": map[string]any{
					"delete":  "Delete workspace",
					"greet":   "Hello, %{name}!",
					"onlyEn":  "English only",
					"deleted": "%{count} deleted",
				},
			},
		},
		"es": {
			"common": map[string]any{"cancel": "Cancelar"},
			"workspace": map[string]any{
				"common": map[string]any{
					"delete": "Eliminar espacio de trabajo",
					"greet":  "¡Hola, %{name}!",
				},
			},
		},
	}}

	tr, err := i18n.NewTranslator(context.Background(), adapter, opts...)
	require.NoError(t, err)
	return tr
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("nil adapter", func(t *testing.T) {
		t.Parallel()
		tr, err := i18n.NewTranslator(context.Background(), nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
		assert.Nil(t, tr)
	})

	t.Run("nil language map is rejected", func(t *testing.T) {
		t.Parallel()
		adapter := &i18n.MapAdapter{Data: map[string]map[string]any{"en": nil}}
		_, err := i18n.NewTranslator(context.Background(), adapter)
		assert.ErrorIs(t, err, i18n.ErrInvalidTranslations)
	})

	t.Run("supported languages are sorted", func(t *testing.T) {
		t.Parallel()
		tr := newTestTranslator(t)
		assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())
		assert.Equal(t, i18n.DefaultLanguage, tr.DefaultLanguage())
	})
}

func TestTranslatorT(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)

	tests := []struct {
		name string
		lang string
		key  string
		args []string
		want string
	}{
		{"nested key", "en", "workspace.common.delete", nil, "Delete workspace"},
		{"other language", "es", "common.cancel", nil, "Cancelar"},
		{"placeholder", "es", "workspace.common.greet", []string{"name", "Ana"}, "¡Hola, Ana!"},
		{"unknown placeholder kept", "en", "workspace.common.greet", []string{"other", "x"}, "Hello, %{name}!"},
		{"falls back to default language", "es", "workspace.common.onlyEn", nil, "English only"},
		{"unknown language uses default", "de", "common.cancel", nil, "Cancel"},
		{"missing key returns key", "en", "workspace.missing", nil, "workspace.missing"},
		{"partial path returns key", "en", "workspace.common", nil, "workspace.common"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tr.T(tt.lang, tt.key, tt.args...))
		})
	}
}

func TestTranslatorWithoutKeyFallback(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, tr.T("en", "workspace.missing"))
	assert.Equal(t, "Cancel", tr.T("en", "common.cancel"))
}

func TestTranslatorDefaultLanguageOption(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, i18n.WithDefaultLanguage("es"))
	assert.Equal(t, "Cancelar", tr.T("fr", "common.cancel"))
	assert.Equal(t, "es", tr.Match("fr"))
}

func TestTranslatorHasTranslation(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	assert.True(t, tr.HasTranslation("en", "workspace.common.onlyEn"))
	assert.False(t, tr.HasTranslation("es", "workspace.common.onlyEn"))
	assert.False(t, tr.HasTranslation("fr", "common.cancel"))
}

func TestTranslatorTc(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)

	ctx := i18n.SetLocale(context.Background(), "es")
	assert.Equal(t, "Cancelar", tr.Tc(ctx, "common.cancel"))
	assert.Equal(t, "Cancel", tr.Tc(context.Background(), "common.cancel"))
}

func TestTranslatorMatch(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	assert.Equal(t, "es", tr.Match("es-MX"))
	assert.Equal(t, "en", tr.Match("en-GB", "es"))
	assert.Equal(t, "en", tr.Match("ja"))
	assert.Equal(t, "en", tr.Match())
	assert.Equal(t, "en", tr.Match("not a tag!!"))
}
