package site

import (
	"html/template"
	"time"

	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	"github.com/wolfman30/jwbeauty-studio/internal/booking"
	"github.com/wolfman30/jwbeauty-studio/internal/calendar"
	"github.com/wolfman30/jwbeauty-studio/internal/catalog"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

type serviceCard struct {
	ID       string
	Image    string
	Title    string
	Desc     string
	Price    string
	OldPrice string
	Promo    bool
	Wide     bool
}

type timeOption struct {
	Value   booking.TimeSlot
	Label   string
	Checked bool
}

type navItem struct {
	Section string
	Label   string
}

type formView struct {
	Draft     booking.Draft
	Services  []catalog.Option
	Times     []timeOption
	DateLabel string
	Errors    map[string]string
}

type calendarView struct {
	Open  bool
	Month calendar.Month
}

type feedbackView struct {
	Text  string
	Style booking.Style
}

var funcs = template.FuncMap{
	// iterate yields n empty items, for the blank cells before day 1.
	"iterate": func(n int) []struct{} { return make([]struct{}, n) },
}

// pageData is the view model of the single page. Display text is resolved
// in the template through T so every label follows the active locale.
type pageData struct {
	tr i18n.Translator

	Lang         string
	ToggleLocale string
	HeaderOffset int
	Year         int

	Nav      []navItem
	Services []serviceCard

	Form     formView
	Calendar calendarView
	Feedback feedbackView
	Loading  bool
	Dialog   string
	DeepLink string

	Advisor []advisor.Message

	ChatURL         string
	WhatsAppNumber  string
	ReviewsWidgetID string
}

// T resolves a translation key.
func (p pageData) T(key i18n.Key) string { return p.tr.T(key) }

// HTML resolves a translation key whose value carries inline markup. The
// dictionaries are compiled into the binary and trusted.
func (p pageData) HTML(key i18n.Key) template.HTML { return template.HTML(p.tr.T(key)) }

func newPageData(tr i18n.Translator, now time.Time) pageData {
	p := pageData{
		tr:           tr,
		Lang:         tr.Locale.String(),
		ToggleLocale: tr.Locale.Toggle().String(),
		HeaderOffset: HeaderOffset,
		Year:         now.Year(),
	}
	for _, l := range navLinks {
		p.Nav = append(p.Nav, navItem{Section: l.Section, Label: tr.T(l.Key)})
	}
	for _, s := range catalog.Services() {
		card := serviceCard{
			ID:    s.ID,
			Image: s.Image,
			Title: tr.T(s.TitleKey),
			Desc:  tr.T(s.DescriptionKey),
			Price: tr.T(s.PriceKey),
			Promo: s.Promo,
			Wide:  s.Wide,
		}
		if s.HasOldPrice() {
			card.OldPrice = tr.T(s.OldPriceKey)
		}
		p.Services = append(p.Services, card)
	}
	return p
}

func (p *pageData) applySnapshot(snap booking.Snapshot) {
	tr := p.tr
	p.Form.Draft = snap.Draft
	p.Form.Services = catalog.Options(tr)
	p.Form.Times = p.Form.Times[:0]
	for _, slot := range booking.TimeSlots {
		key, _ := slot.LabelKey()
		p.Form.Times = append(p.Form.Times, timeOption{
			Value:   slot,
			Label:   tr.T(key),
			Checked: snap.Draft.Time == slot,
		})
	}
	if d, err := calendar.ParseDate(snap.Draft.Date); err == nil {
		p.Form.DateLabel = calendar.FormatDisplay(d, tr.Locale)
	}
	if snap.Feedback.Key != "" {
		p.Feedback = feedbackView{Text: tr.T(snap.Feedback.Key), Style: snap.Feedback.Style}
	}
	p.Loading = snap.Loading
	if snap.Dialog != "" {
		p.Dialog = tr.T(snap.Dialog)
	}
}

func (p *pageData) applyValidation(errs booking.ValidationErrors) {
	p.Form.Errors = make(map[string]string, len(errs))
	for _, f := range errs.Fields() {
		p.Form.Errors[f] = p.tr.T(i18n.KeyFormFieldRequired)
	}
}
