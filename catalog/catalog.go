// Package catalog describes the resource catalog the exporters read from.
//
// A catalog is a set of entities. Each entity declares the locales it
// supports and owns an ordered list of entries. Each entry maps locales to
// string values.
package catalog

import "sort"

// Catalog is a read-only view of a set of resource entities.
type Catalog interface {
	Entities() []Entity
}

// Entity is a named group of entries sharing a declared set of locales.
// Declaring a locale does not imply any entry has a value for it.
type Entity interface {
	Name() string
	Languages() []Locale
	Entries() []Entry
}

// Entry is a single translatable key.
type Entry interface {
	Key() string
	// Languages lists the locales present in the value lookup.
	Languages() []Locale
	// Value returns false when the entry has no value for the locale.
	Value(locale Locale) (string, bool)
}

// Resources is an in-memory Catalog.
type Resources struct {
	entities []*ResourceEntity
}

// New creates an empty in-memory catalog.
func New() *Resources {
	return &Resources{}
}

// NewEntity appends a new entity declaring the given locales and returns it.
func (r *Resources) NewEntity(name string, locales ...Locale) *ResourceEntity {
	e := &ResourceEntity{name: name, languages: locales}
	r.entities = append(r.entities, e)
	return e
}

func (r *Resources) Entities() []Entity {
	out := make([]Entity, len(r.entities))
	for i, e := range r.entities {
		out[i] = e
	}
	return out
}

// ResourceEntity is the in-memory Entity.
type ResourceEntity struct {
	name      string
	languages []Locale
	entries   []*ResourceEntry
}

func (e *ResourceEntity) Name() string { return e.name }

func (e *ResourceEntity) Languages() []Locale { return e.languages }

func (e *ResourceEntity) Entries() []Entry {
	out := make([]Entry, len(e.entries))
	for i, en := range e.entries {
		out[i] = en
	}
	return out
}

// Declare adds a locale to the declared set unless it is already present.
func (e *ResourceEntity) Declare(locale Locale) {
	for _, l := range e.languages {
		if l == locale {
			return
		}
	}
	e.languages = append(e.languages, locale)
}

// Add appends an entry. Adding an existing key replaces its values.
func (e *ResourceEntity) Add(key string, values map[Locale]string) *ResourceEntry {
	copied := make(map[Locale]string, len(values))
	for l, v := range values {
		copied[l] = v
	}
	for _, en := range e.entries {
		if en.key == key {
			en.values = copied
			return en
		}
	}
	en := &ResourceEntry{key: key, values: copied}
	e.entries = append(e.entries, en)
	return en
}

// ResourceEntry is the in-memory Entry.
type ResourceEntry struct {
	key     string
	values  map[Locale]string
	Comment string
}

func (e *ResourceEntry) Key() string { return e.key }

func (e *ResourceEntry) Languages() []Locale {
	out := make([]Locale, 0, len(e.values))
	for l := range e.values {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})
	return out
}

func (e *ResourceEntry) Value(locale Locale) (string, bool) {
	v, ok := e.values[locale]
	return v, ok
}
