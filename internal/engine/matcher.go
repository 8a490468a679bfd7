// Package engine implements keyword-driven conversational responses over
// room content: matching a message to a keyword group, resolving the
// group to an entry, building the bilingual reply, and escalating when no
// keyword matches.
package engine

import (
	"strings"

	"github.com/mercyblade/roomhost-go/internal/room"
	"github.com/mercyblade/roomhost-go/internal/textnorm"
)

// GroupMatch identifies which keyword group a message hit and via which
// keyword. MatchedKeyword holds the normalized form, which is what the
// entry resolver scores against.
type GroupMatch struct {
	GroupKey       string
	MatchedKeyword string
}

// FindMatchingGroup scans keyword groups in declaration order and returns
// the first group with a candidate keyword related to the message by
// substring in either direction, comparing normalized forms. Candidates
// that normalize to nothing are skipped so they cannot match every
// message vacuously.
func FindMatchingGroup(message string, groups []room.KeywordGroup) (GroupMatch, bool) {
	normMsg := textnorm.Normalize(message)
	if normMsg == "" {
		return GroupMatch{}, false
	}

	for _, g := range groups {
		for _, kw := range g.Candidates() {
			normKw := textnorm.Normalize(kw)
			if normKw == "" {
				continue
			}
			if strings.Contains(normMsg, normKw) || strings.Contains(normKw, normMsg) {
				return GroupMatch{GroupKey: g.Key, MatchedKeyword: normKw}, true
			}
		}
	}

	return GroupMatch{}, false
}
