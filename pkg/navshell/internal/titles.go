package internal

import (
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
)

func getBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			GetInternalLogger().Error("Failed to list locale files", "error", err)
			return
		}
		for _, entry := range entries {
			if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
				GetInternalLogger().Error("Failed to load locale file", "file", entry.Name(), "error", err)
			}
		}
	})
	return bundle
}

// Titles localises screen titles and shell strings.
type Titles struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewTitles creates a localiser for lang, falling back to English for
// unknown languages and missing messages.
func NewTitles(lang string) *Titles {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Titles{
		localizer: i18n.NewLocalizer(getBundle(), tag.String(), language.English.String()),
		tag:       tag,
	}
}

// Language returns the requested language tag.
func (t *Titles) Language() language.Tag {
	return t.tag
}

// Screen returns the title of the screen with the given kebab-case name.
// Unknown names return the name itself.
func (t *Titles) Screen(name string) string {
	return t.localize("screen_"+name, nil, name)
}

// BackTo returns the accessibility label for going back to a screen title.
func (t *Titles) BackTo(title string) string {
	return t.localize("back_to", map[string]string{"Title": title}, title)
}

// Loading returns the label of the fallback view.
func (t *Titles) Loading() string {
	return t.localize("loading", nil, "Loading…")
}

func (t *Titles) localize(id string, data map[string]string, fallback string) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if data != nil {
		cfg.TemplateData = data
	}
	msg, err := t.localizer.Localize(cfg)
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
