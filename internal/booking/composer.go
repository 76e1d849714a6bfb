package booking

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/wolfman30/jwbeauty-studio/internal/calendar"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

// DefaultWhatsAppBaseURL is the click-to-chat endpoint.
const DefaultWhatsAppBaseURL = "https://wa.me"

// timestampLayout matches the en-SG short date-time rendering,
// e.g. "1/6/2024, 3:04:05 pm".
const timestampLayout = "2/1/2006, 3:04:05 pm"

const messageEN = `Hello {{.Studio}}!

I would like to request an appointment.

*Name:* {{.Name}}
*Phone:* {{.Phone}}
*Service:* {{.Service}}
*Preferred Date:* {{.Date}}
*Preferred Time:* {{.Time}}

Please let me know your availability.
Thank you!`

const messageZH = `你好 {{.Studio}}！

我想预约一项服务。

*姓名:* {{.Name}}
*电话:* {{.Phone}}
*服务项目:* {{.Service}}
*首选日期:* {{.Date}}
*首选时间:* {{.Time}}

请告知您的可约时间。
谢谢！`

var messageTemplates = map[i18n.Locale]*template.Template{
	i18n.English: template.Must(template.New("message_en").Option("missingkey=error").Parse(messageEN)),
	i18n.Chinese: template.Must(template.New("message_zh").Option("missingkey=error").Parse(messageZH)),
}

// Composer builds the WhatsApp message and deep link for a draft.
type Composer struct {
	number  string
	baseURL string
}

// NewComposer creates a composer for the studio's WhatsApp number. An empty
// baseURL uses wa.me.
func NewComposer(number, baseURL string) (*Composer, error) {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	if number == "" {
		return nil, errors.New("booking: whatsapp number required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultWhatsAppBaseURL
	}
	return &Composer{number: number, baseURL: baseURL}, nil
}

// ChatURL links to the studio's chat without a pre-filled message.
func (c *Composer) ChatURL() string {
	return c.baseURL + "/" + c.number
}

// Compose renders the localized request message. The studio name, date and
// slot are localized; name, phone and service are embedded verbatim.
func (c *Composer) Compose(d Draft, tr i18n.Translator) (string, error) {
	date, err := calendar.ParseDate(d.Date)
	if err != nil {
		return "", fmt.Errorf("booking: compose: %w", err)
	}
	tmpl, ok := messageTemplates[tr.Locale]
	if !ok {
		tmpl = messageTemplates[i18n.English]
	}
	data := map[string]string{
		"Studio":  tr.T(i18n.KeyContactStudioName),
		"Name":    d.Name,
		"Phone":   d.Phone,
		"Service": d.Service,
		"Date":    calendar.FormatLong(date, tr.Locale),
		"Time":    SlotPhrase(tr, d.Time),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("booking: compose: %w", err)
	}
	return buf.String(), nil
}

// DeepLink returns the click-to-chat URL carrying message as its text.
func (c *Composer) DeepLink(message string) string {
	return c.ChatURL() + "?text=" + EncodeURIComponent(message)
}

// SlotPhrase is the translated full phrase for s, or the raw value when s
// is not a known slot.
func SlotPhrase(tr i18n.Translator, s TimeSlot) string {
	if key, ok := s.PhraseKey(); ok {
		return tr.T(key)
	}
	return string(s)
}

// FormatTimestamp renders t in loc the way the record sheet expects.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(timestampLayout)
}

// EncodeURIComponent escapes s like the JavaScript function of the same
// name: everything except A-Z a-z 0-9 and -_.!~*'() is percent-encoded as
// UTF-8, and spaces become %20.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func uriUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
