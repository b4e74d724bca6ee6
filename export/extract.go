package export

import (
	"github.com/bleeding182/stringsexport/catalog"
	"github.com/bleeding182/stringsexport/writer"
)

// Conflict records a key written to the same locale bucket by more than one
// entry. The later write wins.
type Conflict struct {
	Locale   string
	Key      string
	Entity   string
	Previous string
	Value    string
}

// Extract groups every value of the catalog by locale code. Each locale
// declared by an entity gets a bucket even when no entry has a value for it.
// Missing values resolve to the empty string.
func Extract(c catalog.Catalog) map[string]writer.Bucket {
	buckets, _ := extract(c)
	return buckets
}

func extract(c catalog.Catalog) (map[string]writer.Bucket, []Conflict) {
	buckets := make(map[string]writer.Bucket)
	var conflicts []Conflict

	bucket := func(code string) writer.Bucket {
		b, ok := buckets[code]
		if !ok {
			b = make(writer.Bucket)
			buckets[code] = b
		}
		return b
	}

	for _, entity := range c.Entities() {
		for _, l := range entity.Languages() {
			bucket(l.Code())
		}

		for _, entry := range entity.Entries() {
			for _, l := range entry.Languages() {
				value, _ := entry.Value(l)
				code := l.Code()
				b := bucket(code)
				if prev, ok := b[entry.Key()]; ok {
					conflicts = append(conflicts, Conflict{
						Locale:   code,
						Key:      entry.Key(),
						Entity:   entity.Name(),
						Previous: prev,
						Value:    value,
					})
				}
				b[entry.Key()] = value
			}
		}
	}
	return buckets, conflicts
}
