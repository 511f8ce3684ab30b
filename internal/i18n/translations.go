// Package i18n renders operator facing diagnostics in Chinese or English. The
// catalogs are embedded TOML files loaded into a go-i18n bundle.
package i18n

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

var catalogFiles = []string{"active.en.toml", "active.zh.toml"}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer bound to one
// operator language.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// NewTranslator builds a Translator for lang ("zh" or "en"). English is the
// fallback for unknown tags and missing messages.
func NewTranslator(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range catalogFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	return &Translator{
		lang:      tag.String(),
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}, nil
}

// Lang returns the language the translator was built for.
func (t *Translator) Lang() string {
	return t.lang
}

// T renders the message identified by key. If the key is unknown the key
// itself is returned so the operator still sees something meaningful.
func (t *Translator) T(key string, data map[string]any) string {
	msg, err := t.Localize(key, data)
	if err != nil {
		return key
	}
	return msg
}

// Localize is T with the lookup error exposed.
func (t *Translator) Localize(key string, data map[string]any) (string, error) {
	if key == "" {
		return "", nil
	}
	return t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
}

// LocaleName returns the display name of a content locale ("zh"/"en") in the
// translator's language.
func (t *Translator) LocaleName(locale string) string {
	switch locale {
	case "zh":
		return t.T(MsgLocaleZH, nil)
	case "en":
		return t.T(MsgLocaleEN, nil)
	default:
		return locale
	}
}
