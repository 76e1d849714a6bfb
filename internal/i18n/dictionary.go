package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed locales/*.toml
var embedded embed.FS

// Dictionary holds the translated strings of every locale. It is read-only
// once loaded.
type Dictionary struct {
	entries map[Locale]map[Key]string
}

// Embedded loads the dictionaries compiled into the binary.
func Embedded() (*Dictionary, error) {
	return Load(embedded, "locales")
}

// Load reads <dir>/<locale>.toml for every supported locale. Keys that are
// not declared in AllKeys are rejected.
func Load(fsys fs.FS, dir string) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[Locale]map[Key]string, len(Locales))}
	for _, locale := range Locales {
		name := path.Join(dir, string(locale)+".toml")
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		entries, err := parseEntries(raw)
		if err != nil {
			return nil, fmt.Errorf("i18n: %s: %w", name, err)
		}
		d.entries[locale] = entries
	}
	return d, nil
}

// NewDictionary builds a dictionary from in-memory maps. Mostly for tests.
func NewDictionary(entries map[Locale]map[Key]string) *Dictionary {
	d := &Dictionary{entries: make(map[Locale]map[Key]string, len(entries))}
	for locale, m := range entries {
		cp := make(map[Key]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		d.entries[locale] = cp
	}
	return d
}

func parseEntries(raw []byte) (map[Key]string, error) {
	var flat map[string]string
	if _, err := toml.Decode(string(raw), &flat); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	entries := make(map[Key]string, len(flat))
	for k, v := range flat {
		key := Key(k)
		if !key.Valid() {
			return nil, fmt.Errorf("unknown key %q", k)
		}
		entries[key] = v
	}
	return entries, nil
}

// Lookup returns the raw entry for locale and key.
func (d *Dictionary) Lookup(locale Locale, key Key) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.entries[locale][key]
	return v, ok
}

// Missing lists, per locale, the declared keys that have no entry.
func (d *Dictionary) Missing() map[Locale][]Key {
	out := make(map[Locale][]Key)
	for _, locale := range Locales {
		for _, key := range AllKeys {
			if _, ok := d.Lookup(locale, key); !ok {
				out[locale] = append(out[locale], key)
			}
		}
		sort.Slice(out[locale], func(i, j int) bool { return out[locale][i] < out[locale][j] })
	}
	for locale, keys := range out {
		if len(keys) == 0 {
			delete(out, locale)
		}
	}
	return out
}

// Translator binds a dictionary to the active locale. It is the explicit
// configuration object handed to everything that produces display text.
type Translator struct {
	Locale     Locale
	Dictionary *Dictionary
}

// NewTranslator returns a translator for locale.
func NewTranslator(d *Dictionary, locale Locale) Translator {
	return Translator{Locale: locale, Dictionary: d}
}

// T resolves key in the active locale, then English, then falls back to the
// key identifier itself. It never returns an empty string for a missing key.
func (t Translator) T(key Key) string {
	if v, ok := t.Dictionary.Lookup(t.Locale, key); ok {
		return v
	}
	if t.Locale != English {
		if v, ok := t.Dictionary.Lookup(English, key); ok {
			return v
		}
	}
	return string(key)
}
