package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/mercyblade/roomhost-go/internal/errors"
)

const sleepRoomJSON = `{
	"description": {"en": "Sleep and rest", "vi": "Giấc ngủ và nghỉ ngơi"},
	"room_essay": "A long essay about sleep.",
	"room_essay_vi": "Một bài luận dài về giấc ngủ.",
	"safety_disclaimer": {"en": "Not medical advice.", "vi": "Không phải lời khuyên y tế."},
	"keywords": {
		"insomnia": {"en": ["insomnia", "can't sleep"], "vi": ["mất ngủ"], "slug_vi": ["mat ngu"]},
		"naps": {"en": ["nap", "napping"], "vi": ["ngủ trưa"]}
	},
	"entries": [
		{"id": "e1", "title": "Insomnia basics", "essay": {"en": "Essay EN", "vi": "Essay VI"}, "audio": "/audio/insomnia.mp3"},
		{"artifact_id": "e2", "title": {"en": "Napping well", "vi": "Ngủ trưa tốt"}, "copy_en": "Flat copy", "copy_vi": "Bản sao"}
	]
}`

func TestParse(t *testing.T) {
	rm, err := Parse("sleep", []byte(sleepRoomJSON))
	require.NoError(t, err)

	assert.Equal(t, "sleep", rm.ID)
	require.Len(t, rm.Groups, 2)
	assert.Equal(t, "insomnia", rm.Groups[0].Key, "group order must follow the document")
	assert.Equal(t, "naps", rm.Groups[1].Key)
	assert.Equal(t, []string{"insomnia", "can't sleep"}, rm.Groups[0].En)
	assert.Equal(t, []string{"mất ngủ"}, rm.Groups[0].Vi)
	assert.Equal(t, []string{"mat ngu"}, rm.Groups[0].SlugVi)

	assert.False(t, rm.Keyed())
	require.Len(t, rm.Entries(), 2)
}

func TestParseKeywordsDict(t *testing.T) {
	rm, err := Parse("old", []byte(`{"keywords_dict": {"stress": {"en": ["stress"]}}}`))
	require.NoError(t, err)
	require.Len(t, rm.Groups, 1)
	assert.Equal(t, "stress", rm.Groups[0].Key)
}

func TestParseKeyedEntries(t *testing.T) {
	rm, err := Parse("keyed", []byte(`{
		"keywords": {"anger": {"en": ["angry"]}},
		"entries": {"anger": {"title": "On anger", "en": "Calm down."}}
	}`))
	require.NoError(t, err)

	assert.True(t, rm.Keyed())
	assert.Empty(t, rm.Entries())

	e, ok := rm.EntryForKey("anger")
	require.True(t, ok)
	assert.Equal(t, "On anger", e.Title())

	_, ok = rm.EntryForKey("joy")
	assert.False(t, ok)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"keywords":`},
		{"non-object root", `["a", "b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad", []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, domerrors.ErrInvalidInput)

			var rde *domerrors.RoomDataError
			require.ErrorAs(t, err, &rde)
			assert.Equal(t, "bad", rde.RoomID)
		})
	}
}

func TestCandidates(t *testing.T) {
	g := KeywordGroup{Key: "insomnia", En: []string{"insomnia"}, Vi: []string{"mất ngủ"}, SlugVi: []string{"mat ngu"}}
	assert.Equal(t, []string{"insomnia", "mất ngủ", "mat ngu", "insomnia"}, g.Candidates())
}

func TestRoomLevelFields(t *testing.T) {
	rm, err := Parse("sleep", []byte(sleepRoomJSON))
	require.NoError(t, err)

	desc := rm.Description()
	assert.Equal(t, "Sleep and rest", desc.En)
	assert.Equal(t, "Giấc ngủ và nghỉ ngơi", desc.Vi)

	essay := rm.Essay()
	assert.Equal(t, "A long essay about sleep.", essay.En, "flat base field read as English")
	assert.Equal(t, "Một bài luận dài về giấc ngủ.", essay.Vi, "suffixed sibling read as Vietnamese")

	safety := rm.SafetyDisclaimer()
	assert.Equal(t, "Not medical advice.", safety.En)
}

func TestEntryIdentity(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantID    string
		wantTitle string
	}{
		{"explicit id", `{"id": "e1", "title": "T"}`, "e1", "T"},
		{"artifact id", `{"artifact_id": "a7", "title": "T"}`, "a7", "T"},
		{"title fallback", `{"title": "Just a title"}`, "Just a title", "Just a title"},
		{"bilingual title en wins", `{"title": {"en": "EN", "vi": "VI"}}`, "EN", "EN"},
		{"bilingual title vi only", `{"title": {"vi": "VI"}}`, "VI", "VI"},
		{"nothing", `{}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry([]byte(tt.data))
			assert.Equal(t, tt.wantID, e.ID())
			assert.Equal(t, tt.wantTitle, e.Title())
		})
	}
}

func TestAudioRef(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"audio string", `{"audio": "/audio/a.mp3"}`, "/audio/a.mp3"},
		{"audio_file", `{"audio_file": "b.mp3"}`, "b.mp3"},
		{"meta nested", `{"meta": {"audio_file": "c.mp3"}}`, "c.mp3"},
		{"bilingual en wins", `{"audio": {"en": "en.mp3", "vi": "vi.mp3"}}`, "en.mp3"},
		{"bilingual vi fallback", `{"audio": {"vi": "vi.mp3"}}`, "vi.mp3"},
		{"priority order", `{"audio_file": "second.mp3", "audio": "first.mp3"}`, "first.mp3"},
		{"none", `{"title": "T"}`, ""},
		{"non-string ignored", `{"audio": 42}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewEntry([]byte(tt.data)).AudioRef())
		})
	}
}

func TestCleanAudioRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/audio/sleep.mp3", "sleep.mp3"},
		{"public/audio/sleep.mp3", "sleep.mp3"},
		{"/public/audio/sleep.mp3", "sleep.mp3"},
		{"audio/sleep.mp3", "sleep.mp3"},
		{"sleep.mp3", "sleep.mp3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanAudioRef(tt.in), "input %q", tt.in)
	}
}

func TestExtractBilingual(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		wantEn string
		wantVi string
	}{
		{"nested essay", `{"essay": {"en": "E", "vi": "V"}}`, "E", "V"},
		{"nested copy", `{"copy": {"en": "C"}}`, "C", ""},
		{"nested beats flat", `{"essay": {"en": "nested"}, "essay_en": "flat"}`, "nested", ""},
		{"flat pair", `{"essay_en": "E", "essay_vi": "V"}`, "E", "V"},
		{"vi_en pair", `{"vi_en": "E", "vi_vi": "V"}`, "E", "V"},
		{"root last resort", `{"en": "Root EN", "vi": "Root VI"}`, "Root EN", "Root VI"},
		{"one-sided pair kept", `{"content": {"vi": "Chỉ tiếng Việt"}}`, "", "Chỉ tiếng Việt"},
		{"whitespace only skipped", `{"essay": {"en": "   "}, "copy": {"en": "Real"}}`, "Real", ""},
		{"object values ignored", `{"essay": {"en": {"oops": true}}, "en": "Root"}`, "Root", ""},
		{"nothing", `{"title": "T"}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ExtractBilingual(NewEntry([]byte(tt.data)))
			assert.Equal(t, tt.wantEn, b.En)
			assert.Equal(t, tt.wantVi, b.Vi)
		})
	}
}

func TestExtractEntryBilingualBackfill(t *testing.T) {
	e := NewEntry([]byte(`{"essay": {"vi": "Chỉ VI"}, "copy_en": "Backfilled EN"}`))
	b := ExtractEntryBilingual(e)
	assert.Equal(t, "Backfilled EN", b.En)
	assert.Equal(t, "Chỉ VI", b.Vi)
}

func TestEntryBilingualField(t *testing.T) {
	e := NewEntry([]byte(`{"summary": {"en": "S-EN", "vi": "S-VI"}, "essay": "Plain", "essay_vi": "VI side"}`))

	sum := EntryBilingualField(e, "summary")
	assert.Equal(t, "S-EN", sum.En)
	assert.Equal(t, "S-VI", sum.Vi)

	essay := EntryBilingualField(e, "essay")
	assert.Equal(t, "Plain", essay.En)
	assert.Equal(t, "VI side", essay.Vi)
}

func TestBilingualEmpty(t *testing.T) {
	assert.True(t, Bilingual{}.Empty())
	assert.True(t, Bilingual{En: "  ", Vi: "\n"}.Empty())
	assert.False(t, Bilingual{Vi: "x"}.Empty())
}
