package i18n

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDictionaryCoversEveryKey(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)
	assert.Empty(t, d.Missing(), "every declared key must exist in both locales")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.toml": {Data: []byte(`navHome = "Home"` + "\n" + `navHomee = "typo"`)},
		"locales/zh.toml": {Data: []byte(`navHome = "首页"`)},
	}
	_, err := Load(fsys, "locales")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navHomee")
}

func TestLoadMissingLocaleFile(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.toml": {Data: []byte(`navHome = "Home"`)},
	}
	_, err := Load(fsys, "locales")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zh.toml")
}

func TestMissingReportsPerLocale(t *testing.T) {
	d := NewDictionary(map[Locale]map[Key]string{
		English: {KeyNavHome: "Home"},
		Chinese: {},
	})
	missing := d.Missing()
	assert.NotContains(t, missing[English], KeyNavHome)
	assert.Contains(t, missing[Chinese], KeyNavHome)
	assert.Len(t, missing[Chinese], len(AllKeys))
}

func TestTranslatorFallbackPolicy(t *testing.T) {
	d := NewDictionary(map[Locale]map[Key]string{
		English: {KeyNavHome: "Home", KeyNavAbout: "About"},
		Chinese: {KeyNavHome: "首页"},
	})

	zh := NewTranslator(d, Chinese)
	assert.Equal(t, "首页", zh.T(KeyNavHome))
	assert.Equal(t, "About", zh.T(KeyNavAbout), "missing zh entry falls back to English")
	assert.Equal(t, "navContact", zh.T(KeyNavContact), "missing everywhere falls back to the key")

	en := NewTranslator(d, English)
	assert.Equal(t, "navContact", en.T(KeyNavContact))
}

func TestTranslatorNilDictionary(t *testing.T) {
	tr := Translator{Locale: English}
	assert.Equal(t, "aiError", tr.T(KeyAIError))
}

func TestKeyValid(t *testing.T) {
	assert.True(t, KeyFeedbackProcessing.Valid())
	assert.False(t, Key("notAKey").Valid())
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
		err  bool
	}{
		{"en", English, false},
		{"en-SG", English, false},
		{"zh", Chinese, false},
		{"zh-CN", Chinese, false},
		{" zh-Hans ", Chinese, false},
		{"fr", "", true},
		{"", "", true},
		{"!!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocale(tt.in)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownLocale))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocaleTags(t *testing.T) {
	assert.Equal(t, Chinese, English.Toggle())
	assert.Equal(t, English, Chinese.Toggle())
	assert.Equal(t, "en-SG", English.DateTag())
	assert.Equal(t, "zh-CN", Chinese.DateTag())
	assert.Equal(t, "en-US", English.HeaderTag())
	assert.Equal(t, "zh-CN", Chinese.HeaderTag())
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name, query, cookie, accept string
		fallback                    Locale
		want                        Locale
	}{
		{"query wins", "zh", "en", "en-US", English, Chinese},
		{"cookie over header", "", "zh", "en-US,en;q=0.9", English, Chinese},
		{"invalid query ignored", "fr", "", "zh-CN,zh;q=0.9", English, Chinese},
		{"accept-language english", "", "", "en-GB,en;q=0.8", Chinese, English},
		{"unsupported header uses fallback", "", "", "de-DE", Chinese, Chinese},
		{"nothing set", "", "", "", "", English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.query, tt.cookie, tt.accept, tt.fallback))
		})
	}
}
