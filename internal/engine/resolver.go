package engine

import (
	"regexp"
	"strings"

	"github.com/mercyblade/roomhost-go/internal/room"
	"github.com/mercyblade/roomhost-go/internal/textnorm"
)

const (
	// scoreFloor is the minimum similarity for a list entry to count as
	// resolved. Below it the group match stands but no entry is chosen.
	scoreFloor = 0.2

	// audioWeight discounts scores derived from audio filenames, which
	// carry less signal than titles.
	audioWeight = 0.9

	// containBonus rewards an entry title that wholly contains the
	// matched keyword.
	containBonus = 0.2
)

var audioExtRe = regexp.MustCompile(`(?i)\.[a-z0-9]+$`)
var audioSepRe = regexp.MustCompile(`[_.-]+`)

// ResolveEntry picks the entry for a matched group. Keyed rooms resolve
// by direct lookup under the group key with no similarity fallback. List
// rooms score every entry against the matched keyword and each keyword
// of the matched group, by title and by audio filename, and take the
// best entry at or above the score floor. A weak best match resolves to
// nothing rather than a low-confidence guess.
func ResolveEntry(rm *room.Room, match GroupMatch) (room.Entry, bool) {
	if rm.Keyed() {
		return rm.EntryForKey(match.GroupKey)
	}

	entries := rm.Entries()
	if len(entries) == 0 {
		return room.Entry{}, false
	}

	mkTokens := textnorm.Tokenize(match.MatchedKeyword)
	groupSets := groupTokenSets(rm, match.GroupKey)

	var best room.Entry
	bestScore := -1.0

	for _, e := range entries {
		titleTokens := textnorm.Tokenize(e.Title())
		audioTokens := audioTokenSet(e.AudioRef())

		score := textnorm.Jaccard(titleTokens, mkTokens)
		for _, g := range groupSets {
			if s := textnorm.Jaccard(titleTokens, g); s > score {
				score = s
			}
		}
		if s := audioWeight * textnorm.Jaccard(audioTokens, mkTokens); s > score {
			score = s
		}
		for _, g := range groupSets {
			if s := audioWeight * textnorm.Jaccard(audioTokens, g); s > score {
				score = s
			}
		}

		if mk := mkTokens.Joined(); mk != "" && strings.Contains(titleTokens.Joined(), mk) {
			score += containBonus
		}

		if score > bestScore {
			best = e
			bestScore = score
		}
	}

	if bestScore < scoreFloor {
		return room.Entry{}, false
	}
	return best, true
}

// groupTokenSets tokenizes each English and Vietnamese keyword of the
// matched group individually; scoring takes the max over them rather
// than diluting into one union set.
func groupTokenSets(rm *room.Room, key string) []*textnorm.TokenSet {
	g, ok := rm.GroupByKey(key)
	if !ok {
		return nil
	}
	kws := make([]string, 0, len(g.En)+len(g.Vi))
	kws = append(kws, g.En...)
	kws = append(kws, g.Vi...)

	sets := make([]*textnorm.TokenSet, 0, len(kws))
	for _, kw := range kws {
		sets = append(sets, textnorm.Tokenize(kw))
	}
	return sets
}

// audioTokenSet tokenizes an audio reference for similarity scoring. The
// directory prefix and file extension are dropped and separator runs
// become word boundaries.
func audioTokenSet(ref string) *textnorm.TokenSet {
	if ref == "" {
		return textnorm.NewTokenSet()
	}
	name := ref
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = audioExtRe.ReplaceAllString(name, "")
	name = audioSepRe.ReplaceAllString(name, " ")
	return textnorm.Tokenize(name)
}
