package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnknownLocale is returned for language tags the site does not serve.
var ErrUnknownLocale = errors.New("i18n: unknown locale")

// Locale is one of the two languages the site is written in.
type Locale string

const (
	English Locale = "en"
	Chinese Locale = "zh"
)

// Locales lists the supported locales, English first.
var Locales = []Locale{English, Chinese}

var supportedTags = []language.Tag{language.English, language.SimplifiedChinese}

var matcher = language.NewMatcher(supportedTags)

// ParseLocale accepts "en", "zh" and region-qualified forms such as "zh-CN".
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownLocale)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "zh":
		return Chinese, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
}

// Toggle returns the other locale. It backs the header language switch.
func (l Locale) Toggle() Locale {
	if l == Chinese {
		return English
	}
	return Chinese
}

// DateTag is the tag used for long-form dates in booking messages.
func (l Locale) DateTag() string {
	if l == Chinese {
		return "zh-CN"
	}
	return "en-SG"
}

// HeaderTag is the tag used for the calendar header and the date button.
func (l Locale) HeaderTag() string {
	if l == Chinese {
		return "zh-CN"
	}
	return "en-US"
}

func (l Locale) String() string { return string(l) }

// Negotiate picks the display locale. An explicit query value wins over the
// cookie, the cookie over Accept-Language, and fallback applies last.
func Negotiate(query, cookie, acceptLanguage string, fallback Locale) Locale {
	if l, err := ParseLocale(query); err == nil {
		return l
	}
	if l, err := ParseLocale(cookie); err == nil {
		return l
	}
	if strings.TrimSpace(acceptLanguage) != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return Locales[idx]
			}
		}
	}
	if fallback == "" {
		return English
	}
	return fallback
}
