package engine

import (
	"github.com/mercyblade/roomhost-go/internal/room"
)

// Outcome classifies what kind of reply the engine produced. Used for
// metrics labels and logging.
type Outcome string

const (
	OutcomeMatched     Outcome = "matched"
	OutcomeEssayReveal Outcome = "essay_reveal"
	OutcomeGuidance    Outcome = "guidance"
	OutcomeFiller      Outcome = "filler"
)

// Counters carries the per-visitor conversation state the client reports
// with each message. The engine is stateless; escalation depends only on
// these counts.
type Counters struct {
	// NoKeyword is how many consecutive messages produced no keyword
	// match.
	NoKeyword int
	// MatchedEntries is how many entries the visitor has matched in the
	// room so far.
	MatchedEntries int
}

// Reply is the engine's answer to one visitor message.
type Reply struct {
	Text         string   `json:"text"`
	Matched      bool     `json:"matched"`
	RelatedRooms []string `json:"related_rooms,omitempty"`
	AudioFile    string   `json:"audio_file,omitempty"`
	EntryID      string   `json:"entry_id,omitempty"`
}

// Recommender suggests other rooms related to a message. The engine
// attaches its suggestions to every reply.
type Recommender interface {
	FindRelatedRooms(message, currentRoomID string) []string
}

// Engine turns visitor messages into bilingual replies using a room's
// keyword groups and entries.
type Engine struct {
	rec Recommender
}

// New constructs an Engine. The recommender may be nil, in which case
// replies carry no related-room suggestions.
func New(rec Recommender) *Engine {
	return &Engine{rec: rec}
}

// Respond produces the reply for one visitor message in a room.
//
// A keyword match that resolves to an entry yields that entry's bilingual
// text. Otherwise the message escalates: questions get the room essay
// once enough entries have been matched, keyword guidance before that;
// non-questions get a listening prompt scaled to the no-keyword streak.
func (e *Engine) Respond(rm *room.Room, message string, c Counters) (Reply, Outcome) {
	related := e.relatedRooms(message, rm.ID)

	if match, ok := FindMatchingGroup(message, rm.Groups); ok {
		if entry, found := ResolveEntry(rm, match); found {
			reply := Reply{
				Text:         BuildEntryResponse(entry),
				Matched:      true,
				RelatedRooms: related,
				EntryID:      entry.ID(),
			}
			if ref := entry.AudioRef(); ref != "" {
				reply.AudioFile = room.CleanAudioRef(ref)
			}
			return reply, OutcomeMatched
		}
	}

	if IsQuestion(message) {
		if c.MatchedEntries >= essayRevealThreshold {
			return Reply{
				Text:         buildEssayReveal(rm),
				RelatedRooms: related,
			}, OutcomeEssayReveal
		}
		return Reply{
			Text:         buildGuidance(rm),
			RelatedRooms: related,
		}, OutcomeGuidance
	}

	return Reply{
		Text:         buildFiller(rm, c.NoKeyword),
		RelatedRooms: related,
	}, OutcomeFiller
}

func (e *Engine) relatedRooms(message, roomID string) []string {
	if e.rec == nil {
		return nil
	}
	return e.rec.FindRelatedRooms(message, roomID)
}
