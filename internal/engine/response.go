package engine

import (
	"regexp"
	"strings"

	"github.com/mercyblade/roomhost-go/internal/room"
)

// languageSeparator divides the English and Vietnamese halves of a reply.
const languageSeparator = "\n\n---\n\n"

var footerRes = []*regexp.Regexp{
	regexp.MustCompile(`\*Word count: \d+\*\s*`),
	regexp.MustCompile(`\*Số từ: \d+\*\s*`),
}

// StripFooters removes word-count footers the content pipeline appends to
// generated prose, in both languages, then trims surrounding whitespace.
func StripFooters(text string) string {
	for _, re := range footerRes {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// BuildEntryResponse renders an entry's bilingual text as a single reply
// string. Entries carrying both a summary and an essay reply with the
// essay; all other shapes go through flexible extraction. Both languages
// are joined with the language separator when both are present.
func BuildEntryResponse(e room.Entry) string {
	var b room.Bilingual
	if e.Has("summary") && e.Has("essay") {
		b = room.EntryBilingualField(e, "essay")
	} else {
		b = room.ExtractEntryBilingual(e)
	}

	en := StripFooters(b.En)
	vi := StripFooters(b.Vi)

	switch {
	case en != "" && vi != "":
		return en + languageSeparator + vi
	case en != "":
		return en
	default:
		return vi
	}
}

// joinSections joins non-empty trimmed sections with blank lines.
func joinSections(sections ...string) string {
	var kept []string
	for _, s := range sections {
		if t := strings.TrimSpace(s); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n\n")
}
