// Package room models bilingual room content. Entries arrive in several
// legacy field shapes, so the raw JSON document is retained and fields are
// located tolerantly at read time.
package room

import (
	"strings"

	"github.com/tidwall/gjson"

	domerrors "github.com/mercyblade/roomhost-go/internal/errors"
)

// Bilingual holds an English/Vietnamese text pair.
type Bilingual struct {
	En string
	Vi string
}

// Empty reports whether both sides are blank after trimming.
func (b Bilingual) Empty() bool {
	return strings.TrimSpace(b.En) == "" && strings.TrimSpace(b.Vi) == ""
}

// KeywordGroup is a named cluster of English/Vietnamese synonyms that
// routes a message to one entry. Source declaration order is preserved
// because matching resolves ties by it.
type KeywordGroup struct {
	Key    string
	En     []string
	Vi     []string
	SlugVi []string
}

// Candidates returns every matchable keyword for the group. The group key
// itself is matchable too.
func (g KeywordGroup) Candidates() []string {
	out := make([]string, 0, len(g.En)+len(g.Vi)+len(g.SlugVi)+1)
	out = append(out, g.En...)
	out = append(out, g.Vi...)
	out = append(out, g.SlugVi...)
	out = append(out, g.Key)
	return out
}

// Room is a topical content bucket containing keyword groups and entries.
// A parsed Room is read-only; the matching engine never mutates it.
type Room struct {
	ID     string
	Groups []KeywordGroup

	raw   gjson.Result
	list  []Entry
	keyed map[string]Entry
}

// Parse builds a Room from a raw JSON document. Keyword groups are read
// from "keywords" (or the older "keywords_dict") preserving document
// order. Entries may be an ordered array (legacy) or an object keyed by
// group key (newer schema); both are tolerated, as is their absence.
func Parse(id string, data []byte) (*Room, error) {
	if !gjson.ValidBytes(data) {
		return nil, domerrors.NewRoomDataError(id, domerrors.ErrInvalidInput)
	}
	raw := gjson.ParseBytes(data)
	if !raw.IsObject() {
		return nil, domerrors.NewRoomDataError(id, domerrors.ErrInvalidInput)
	}

	rm := &Room{ID: id, raw: raw}

	kw := raw.Get("keywords")
	if !kw.Exists() {
		kw = raw.Get("keywords_dict")
	}
	if kw.IsObject() {
		kw.ForEach(func(key, val gjson.Result) bool {
			rm.Groups = append(rm.Groups, KeywordGroup{
				Key:    key.String(),
				En:     stringList(val.Get("en")),
				Vi:     stringList(val.Get("vi")),
				SlugVi: stringList(val.Get("slug_vi")),
			})
			return true
		})
	}

	entries := raw.Get("entries")
	switch {
	case entries.IsArray():
		for _, e := range entries.Array() {
			rm.list = append(rm.list, Entry{res: e})
		}
	case entries.IsObject():
		rm.keyed = make(map[string]Entry)
		entries.ForEach(func(key, val gjson.Result) bool {
			rm.keyed[key.String()] = Entry{res: val}
			return true
		})
	}

	return rm, nil
}

// Keyed reports whether entries use the mapping-keyed schema.
func (r *Room) Keyed() bool {
	return r.keyed != nil
}

// Entries returns the ordered entry list (legacy schema). Empty for
// keyed rooms.
func (r *Room) Entries() []Entry {
	return r.list
}

// EntryForKey looks up an entry by group key in the mapping-keyed schema.
func (r *Room) EntryForKey(key string) (Entry, bool) {
	e, ok := r.keyed[key]
	return e, ok
}

// GroupByKey returns the keyword group with the given key.
func (r *Room) GroupByKey(key string) (KeywordGroup, bool) {
	for _, g := range r.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return KeywordGroup{}, false
}

// Description returns the room-level bilingual description.
func (r *Room) Description() Bilingual {
	return GetBilingual(r.raw, "description")
}

// Essay returns the room-level bilingual essay.
func (r *Room) Essay() Bilingual {
	return GetBilingual(r.raw, "room_essay")
}

// SafetyDisclaimer returns the room-level bilingual safety disclaimer.
func (r *Room) SafetyDisclaimer() Bilingual {
	return GetBilingual(r.raw, "safety_disclaimer")
}

// stringList collects string elements from a JSON array result.
// Non-arrays and non-string elements yield nothing.
func stringList(res gjson.Result) []string {
	if !res.IsArray() {
		return nil
	}
	var out []string
	for _, v := range res.Array() {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
	}
	return out
}
