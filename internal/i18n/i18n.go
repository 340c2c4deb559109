// Package i18n translates player-facing text. Message ids are the English
// strings themselves, so the English catalog is empty and lookups fall back
// to the id.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

const DefaultLocale = "en"

type Catalog struct {
	locale string
	po     *gotext.Po
}

// New loads the catalog for locale. Region-less names pick the bundled
// regional catalog ("pt" loads pt_BR).
func New(locale string) (*Catalog, error) {
	locale = normalize(locale)
	po := gotext.NewPo()
	if locale == DefaultLocale {
		return &Catalog{locale: locale, po: po}, nil
	}

	data, err := locales.ReadFile("locales/" + locale + ".po")
	if err != nil {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	po.Parse(data)
	return &Catalog{locale: locale, po: po}, nil
}

// MustNew is New for locales known to be bundled.
func MustNew(locale string) *Catalog {
	c, err := New(locale)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Locale() string {
	return c.locale
}

// T translates msg and formats it with vars.
func (c *Catalog) T(msg string, vars ...any) string {
	return c.po.Get(msg, vars...)
}

// Available lists the bundled locales.
func Available() []string {
	out := []string{DefaultLocale}
	entries, _ := locales.ReadDir("locales")
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".po"))
	}
	return out
}

func normalize(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "-", "_")
	switch strings.ToLower(locale) {
	case "", "c", "posix", "en", "en_us", "en_gb":
		return DefaultLocale
	case "pt", "pt_br":
		return "pt_BR"
	}
	return locale
}
