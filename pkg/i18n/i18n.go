package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the display languages. The first one is the fallback.
var Supported = []language.Tag{
	language.English,
	language.German,
	language.French,
}

var (
	matcher = language.NewMatcher(Supported)
	cat     = newCatalog()
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, table := range translations {
		for src, msg := range table {
			// Only fails on malformed messages, which the tables do not contain.
			_ = b.SetString(tag, src, msg)
			// English is registered so the printer matches it exactly.
			_ = b.SetString(language.English, src, src)
		}
	}
	return b
}

// Localizer translates source strings into one display language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a localizer for the best supported match of the
// Accept-Language value. Unparsable values fall back to English.
func New(acceptLanguage string) *Localizer {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, idx, _ := matcher.Match(tags...)
	return ForTag(Supported[idx])
}

// ForTag returns a localizer for the tag.
func ForTag(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// FromRequest returns the localizer for the request's Accept-Language header.
func FromRequest(r *http.Request) *Localizer {
	if r == nil {
		return ForTag(Supported[0])
	}
	return New(r.Header.Get("Accept-Language"))
}

// T returns msg in the localizer's language, or msg itself when no
// translation exists.
func (l *Localizer) T(msg string) string {
	return l.printer.Sprintf(message.Key(msg, msg))
}

// Lang returns the BCP 47 code of the localizer's language.
func (l *Localizer) Lang() string {
	return l.tag.String()
}
