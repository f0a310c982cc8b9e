// Package i18n renders user-facing messages for domain error codes.
package i18n

import (
	"bytes"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors errors.Code as a plain string so this package stays import-free.
type Code = string

// Catalog maps error codes to message templates for one locale.
type Catalog struct {
	locale   language.Tag
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[language.Tag]*Catalog{}
)

func init() {
	RegisterCatalog(NewCatalog(language.AmericanEnglish, enUS))
	RegisterCatalog(NewCatalog(language.BrazilianPortuguese, ptBR))
}

// NewCatalog creates a catalog for locale, copying messages.
func NewCatalog(locale language.Tag, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for k, v := range messages {
		cloned[k] = v
	}
	return &Catalog{locale: locale, messages: cloned}
}

// RegisterCatalog adds or replaces the catalog for its locale.
func RegisterCatalog(cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[cat.locale] = cat
}

// GetCatalog returns the catalog best matching locale (a BCP 47 string).
// Unparseable or unsupported locales resolve to en-US.
func GetCatalog(locale string) *Catalog {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()

	tags := make([]language.Tag, 0, len(catalogs))
	tags = append(tags, language.AmericanEnglish)
	for tag := range catalogs {
		if tag != language.AmericanEnglish {
			tags = append(tags, tag)
		}
	}
	requested, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(requested) == 0 {
		return catalogs[language.AmericanEnglish]
	}
	_, index, confidence := language.NewMatcher(tags).Match(requested...)
	if confidence == language.No {
		return catalogs[language.AmericanEnglish]
	}
	return catalogs[tags[index]]
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() language.Tag {
	return c.locale
}

// Format renders the template for code with metadata. Missing templates
// render as the code itself; broken templates render verbatim.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	t, err := template.New("msg").Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
