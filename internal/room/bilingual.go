package room

import (
	"strings"

	"github.com/tidwall/gjson"
)

// An extraction strategy names one legacy field-pair convention. Entries
// written by different content generations use different conventions, so
// extraction walks the list in priority order and takes the first pair
// with at least one non-empty side.
type extraction struct {
	en string
	vi string
}

var extractions = []extraction{
	// Nested {en, vi} object pairs.
	{en: "essay.en", vi: "essay.vi"},
	{en: "copy.en", vi: "copy.vi"},
	{en: "content.en", vi: "content.vi"},
	{en: "body.en", vi: "body.vi"},
	{en: "description.en", vi: "description.vi"},
	// Flat suffixed sibling pairs.
	{en: "essay_en", vi: "essay_vi"},
	{en: "copy_en", vi: "copy_vi"},
	{en: "content_en", vi: "content_vi"},
	{en: "body_en", vi: "body_vi"},
	{en: "vi_en", vi: "vi_vi"},
}

// ExtractBilingual tolerantly locates an entry's bilingual prose. Missing
// intermediate objects read as "no value", never as an error. Root-level
// "en"/"vi" string fields are the last resort; an entry with none of the
// known shapes yields an empty pair.
func ExtractBilingual(e Entry) Bilingual {
	for _, x := range extractions {
		en := trimmedString(e.res.Get(x.en))
		vi := trimmedString(e.res.Get(x.vi))
		if en != "" || vi != "" {
			return Bilingual{En: en, Vi: vi}
		}
	}

	enRes := e.res.Get("en")
	viRes := e.res.Get("vi")
	if enRes.Type == gjson.String || viRes.Type == gjson.String {
		return Bilingual{En: stringValue(enRes), Vi: stringValue(viRes)}
	}

	return Bilingual{}
}

// GetBilingual reads a room-level bilingual field. When the base field is
// an object its en/vi members are used; otherwise the base field is read
// as English with "<base>_vi" (or the camelCase "<base>Vi") as Vietnamese.
func GetBilingual(obj gjson.Result, base string) Bilingual {
	val := obj.Get(base)
	if val.IsObject() {
		return Bilingual{
			En: stringValue(val.Get("en")),
			Vi: stringValue(val.Get("vi")),
		}
	}

	vi := obj.Get(base + "_vi")
	if vi.Type != gjson.String {
		vi = obj.Get(base + "Vi")
	}
	return Bilingual{
		En: stringValue(val),
		Vi: stringValue(vi),
	}
}

// ExtractEntryBilingual is like ExtractBilingual with the legacy flat
// copy/content/body backfill applied per side. Used by the response
// builder, which needs each language independently recoverable.
func ExtractEntryBilingual(e Entry) Bilingual {
	b := ExtractBilingual(e)
	if b.En == "" {
		b.En = firstString(e.res, "copy_en", "content_en", "body_en")
	}
	if b.Vi == "" {
		b.Vi = firstString(e.res, "copy_vi", "content_vi", "body_vi")
	}
	return b
}

// EntryBilingualField reads an entry-level bilingual field such as
// "summary" or "essay", with the same object-or-suffix tolerance as
// room-level fields.
func EntryBilingualField(e Entry, base string) Bilingual {
	return GetBilingual(e.res, base)
}

func stringValue(res gjson.Result) string {
	if res.Type == gjson.String {
		return res.String()
	}
	return ""
}

func trimmedString(res gjson.Result) string {
	return strings.TrimSpace(stringValue(res))
}

func firstString(res gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := res.Get(p); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
