// Package localization maps the fixed recurrence vocabulary onto text for
// each supported language.
//
// The static tables are compiled into the binary. Deployments can replace
// individual entries through Overrides loaded from a YAML file or from the
// translations table of the database; a missing override always falls back
// to the static entry.
package localization

import "fmt"

// Translator resolves a vocabulary key to text in the requested language.
type Translator interface {
	Translate(key Key, lang Language) string
}

// Overrides replaces static entries per language.
type Overrides map[Language]map[Key]string

// Set records a single override, allocating the language map on demand.
func (o Overrides) Set(lang Language, key Key, text string) {
	if o[lang] == nil {
		o[lang] = make(map[Key]string)
	}
	o[lang][key] = text
}

// Merge copies every entry of other into o, replacing existing entries.
func (o Overrides) Merge(other Overrides) {
	for lang, entries := range other {
		for key, text := range entries {
			o.Set(lang, key, text)
		}
	}
}

// Len returns the total number of overridden entries.
func (o Overrides) Len() int {
	n := 0
	for _, entries := range o {
		n += len(entries)
	}
	return n
}

// Catalog is a read-only Translator backed by the static tables plus an
// optional set of overrides. It is safe for concurrent use.
type Catalog struct {
	overrides Overrides
}

var defaultCatalog = &Catalog{}

// Default returns the catalog built from the static tables only.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog returns a catalog layered with the provided overrides. The
// overrides are copied so later mutation by the caller is not observed.
func NewCatalog(overrides Overrides) *Catalog {
	if overrides.Len() == 0 {
		return &Catalog{}
	}
	copied := make(Overrides, len(overrides))
	copied.Merge(overrides)
	return &Catalog{overrides: copied}
}

// WithOverrides returns a new catalog whose overrides are the receiver's
// merged with extra. Entries in extra win.
func (c *Catalog) WithOverrides(extra Overrides) *Catalog {
	merged := make(Overrides)
	if c != nil {
		merged.Merge(c.overrides)
	}
	merged.Merge(extra)
	return NewCatalog(merged)
}

// Translate implements Translator. Passing a key or language outside the
// vocabulary is a programming error and panics.
func (c *Catalog) Translate(key Key, lang Language) string {
	if !key.Valid() {
		panic(fmt.Sprintf("localization: translate called with invalid key %d", int(key)))
	}
	if !lang.Valid() {
		panic(fmt.Sprintf("localization: translate called with invalid language %d", int(lang)))
	}
	if c != nil {
		if text, ok := c.overrides[lang][key]; ok {
			return text
		}
	}
	return tables[lang][key]
}
