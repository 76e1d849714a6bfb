package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

func translator(t *testing.T, locale i18n.Locale) i18n.Translator {
	t.Helper()
	dict, err := i18n.Embedded()
	require.NoError(t, err)
	return i18n.NewTranslator(dict, locale)
}

func TestServicesHaveUniqueIDsAndValidKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Services() {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.True(t, s.TitleKey.Valid())
		assert.True(t, s.DescriptionKey.Valid())
		assert.True(t, s.PriceKey.Valid())
		if s.HasOldPrice() {
			assert.True(t, s.OldPriceKey.Valid())
		}
	}
	assert.Len(t, seen, 6)
}

func TestServicesReturnsCopy(t *testing.T) {
	list := Services()
	list[0].ID = "changed"
	s, ok := ByID("power-lift-hifu")
	require.True(t, ok)
	assert.True(t, s.Promo)
}

func TestOptionsEndWithNotSure(t *testing.T) {
	opts := Options(translator(t, i18n.English))
	require.Len(t, opts, 7)
	assert.Equal(t, Option{ID: "power-lift-hifu", Value: "Power Lift HIFU"}, opts[0])
	assert.Equal(t, NotSureID, opts[6].ID)
	assert.Equal(t, "Not sure, need a consultation", opts[6].Value)

	zh := Options(translator(t, i18n.Chinese))
	assert.Equal(t, "不确定，需要咨询", zh[6].Value)
}

func TestLabel(t *testing.T) {
	tr := translator(t, i18n.English)
	label, ok := Label(tr, "power-lift-hifu")
	require.True(t, ok)
	assert.Equal(t, "Power Lift HIFU", label)

	label, ok = Label(tr, NotSureID)
	require.True(t, ok)
	assert.Equal(t, "Not sure, need a consultation", label)

	_, ok = Label(tr, "botox")
	assert.False(t, ok)
}
