// Package catalog lists the treatments offered by the studio.
package catalog

import "github.com/wolfman30/jwbeauty-studio/internal/i18n"

// NotSureID is the option value for visitors who want a consultation first.
const NotSureID = "not-sure"

// Service is one treatment card. All visible text is looked up through the
// translation keys so a card renders in either locale.
type Service struct {
	ID             string
	Image          string
	TitleKey       i18n.Key
	DescriptionKey i18n.Key
	PriceKey       i18n.Key
	OldPriceKey    i18n.Key
	Promo          bool
	Wide           bool
}

// HasOldPrice reports whether the card shows a struck-through price.
func (s Service) HasOldPrice() bool { return s.OldPriceKey != "" }

// Option is an entry of the booking form's service select. Value is the
// translated label; the booking draft stores labels, not ids.
type Option struct {
	ID    string
	Value string
}

var services = []Service{
	{
		ID:             "power-lift-hifu",
		Image:          "/static/img/hifu.webp",
		TitleKey:       i18n.KeyServiceHifuTitle,
		DescriptionKey: i18n.KeyServiceHifuDesc,
		PriceKey:       i18n.KeyServiceHifuPrice,
		OldPriceKey:    i18n.KeyServiceHifuOldPrice,
		Promo:          true,
		Wide:           true,
	},
	{
		ID:             "mts-booster",
		Image:          "/static/img/mts.webp",
		TitleKey:       i18n.KeyServiceMtsTitle,
		DescriptionKey: i18n.KeyServiceMtsDesc,
		PriceKey:       i18n.KeyServiceMtsPrice,
	},
	{
		ID:             "rf-lift",
		Image:          "/static/img/rf-lift.webp",
		TitleKey:       i18n.KeyServiceRfLiftTitle,
		DescriptionKey: i18n.KeyServiceRfLiftDesc,
		PriceKey:       i18n.KeyServiceRfLiftPrice,
	},
	{
		ID:             "acne",
		Image:          "/static/img/acne.webp",
		TitleKey:       i18n.KeyServiceAcneTitle,
		DescriptionKey: i18n.KeyServiceAcneDesc,
		PriceKey:       i18n.KeyServiceAcnePrice,
	},
	{
		ID:             "pure-glow",
		Image:          "/static/img/pure-glow.webp",
		TitleKey:       i18n.KeyServicePureGlowTitle,
		DescriptionKey: i18n.KeyServicePureGlowDesc,
		PriceKey:       i18n.KeyServicePureGlowPrice,
	},
	{
		ID:             "deep-detox",
		Image:          "/static/img/detox.webp",
		TitleKey:       i18n.KeyServiceDetoxTitle,
		DescriptionKey: i18n.KeyServiceDetoxDesc,
		PriceKey:       i18n.KeyServiceDetoxPrice,
	},
}

// Services returns the treatments in display order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// ByID finds a treatment by its id.
func ByID(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// Options returns the service select entries: every treatment title in the
// active locale followed by the "not sure" option.
func Options(tr i18n.Translator) []Option {
	opts := make([]Option, 0, len(services)+1)
	for _, s := range services {
		opts = append(opts, Option{ID: s.ID, Value: tr.T(s.TitleKey)})
	}
	return append(opts, Option{ID: NotSureID, Value: tr.T(i18n.KeyFormServiceOptionNotSure)})
}

// Label resolves the select value for id in the active locale. It backs the
// "book this treatment" shortcut.
func Label(tr i18n.Translator, id string) (string, bool) {
	if id == NotSureID {
		return tr.T(i18n.KeyFormServiceOptionNotSure), true
	}
	s, ok := ByID(id)
	if !ok {
		return "", false
	}
	return tr.T(s.TitleKey), true
}
