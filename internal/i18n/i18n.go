// Package i18n localizes the text embedded in the rendered SVGs: the
// document title, the accessible per-day labels, and the legend.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys for one configured language.
type Translator struct {
	localizer *i18n.Localizer

	// Detected lists the languages found in the embedded locale files.
	Detected []string
}

// New loads the embedded locale bundle and returns a Translator for the
// given language. The language must be backed by an embedded locale file.
func New(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrLocaleLoad, err)
		}
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	found := false
	for _, l := range detected {
		if l == lang {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: %q", config.ErrLangUnknown, lang)
	}

	return &Translator{
		localizer: i18n.NewLocalizer(bundle, lang),
		Detected:  detected,
	}, nil
}

// CellLabel produces the accessible description for one day square.
func (t *Translator) CellLabel(date string, count int) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyCellLabel,
		TemplateData: map[string]interface{}{"Count": count, "Date": date},
		PluralCount:  count,
	})
	if err != nil {
		return fmt.Sprintf(config.FallbackCellLabel, count, date)
	}
	return msg
}

// Title produces the SVG document title.
func (t *Translator) Title(user string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyTitle,
		TemplateData: map[string]interface{}{"User": user},
	})
	if err != nil {
		return fmt.Sprintf(config.FallbackTitle, user)
	}
	return msg
}

// LegendLess returns the label at the faint end of the intensity ramp.
func (t *Translator) LegendLess() string {
	return t.plain(config.TKeyLegendLess, config.FallbackLegendLess)
}

// LegendMore returns the label at the strong end of the intensity ramp.
func (t *Translator) LegendMore() string {
	return t.plain(config.TKeyLegendMore, config.FallbackLegendMore)
}

func (t *Translator) plain(key, fallback string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return fallback
	}
	return msg
}
