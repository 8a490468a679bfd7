package room

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Entry represents one topical answer unit within a room. It wraps the raw
// JSON value because entry shapes vary across content generations.
type Entry struct {
	res gjson.Result
}

// NewEntry wraps a raw JSON document as an Entry. Intended for tests and
// tooling; rooms build their entries during Parse.
func NewEntry(data []byte) Entry {
	return Entry{res: gjson.ParseBytes(data)}
}

// Exists reports whether the entry holds any value.
func (e Entry) Exists() bool {
	return e.res.Exists()
}

// ID returns the entry identifier: "id", then "artifact_id", then the
// title as a last resort.
func (e Entry) ID() string {
	for _, field := range []string{"id", "artifact_id"} {
		if v := e.res.Get(field); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return e.Title()
}

// Title returns the entry title. The title may be a plain string or a
// {en, vi} object; English wins when both sides are present.
func (e Entry) Title() string {
	t := e.res.Get("title")
	if t.Type == gjson.String {
		return t.String()
	}
	if t.IsObject() {
		if en := t.Get("en"); en.Type == gjson.String && en.String() != "" {
			return en.String()
		}
		if vi := t.Get("vi"); vi.Type == gjson.String {
			return vi.String()
		}
	}
	return ""
}

// audioFields lists the places an audio reference may live, in priority
// order.
var audioFields = []string{"audio", "audio_file", "meta.audio_file", "audioEn", "audio_en"}

// AudioRef returns the entry's raw audio reference, or "" when absent.
// The value may be a plain string or a {en, vi} object; English wins.
func (e Entry) AudioRef() string {
	for _, field := range audioFields {
		v := e.res.Get(field)
		if v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
		if v.IsObject() {
			if en := v.Get("en"); en.Type == gjson.String && en.String() != "" {
				return en.String()
			}
			if vi := v.Get("vi"); vi.Type == gjson.String && vi.String() != "" {
				return vi.String()
			}
		}
	}
	return ""
}

// Has reports whether the entry carries a value under the given path.
func (e Entry) Has(path string) bool {
	return e.res.Get(path).Exists()
}

// CleanAudioRef normalizes an audio reference to a bare filename by
// stripping leading slashes and the "public/" and "audio/" directory
// prefixes. Playback resolution happens downstream.
func CleanAudioRef(ref string) string {
	ref = strings.TrimLeft(ref, "/")
	ref = strings.TrimPrefix(ref, "public/")
	ref = strings.TrimPrefix(ref, "audio/")
	return ref
}
