package engine

import (
	"fmt"
	"strings"

	"github.com/mercyblade/roomhost-go/internal/room"
)

// questionTokens are single words that mark a message as a question in
// either language.
var questionTokens = map[string]struct{}{
	"how": {}, "what": {}, "why": {}, "when": {}, "where": {},
	"can": {}, "should": {}, "is": {}, "are": {}, "do": {}, "does": {},
	"could": {}, "would": {}, "will": {},
	"làm": {}, "gì": {}, "khi": {}, "nào": {}, "đâu": {}, "có": {}, "nên": {}, "là": {},
}

// multiWordQuestions are Vietnamese question phrases that only signal as
// whole phrases.
var multiWordQuestions = []string{"tại sao", "khi nào", "ở đâu"}

// fillerPrompts escalate in intensity as the visitor keeps sending
// keyword-free non-questions.
var fillerPrompts = []room.Bilingual{
	{En: "Please tell me more.", Vi: "Vui lòng cho tôi biết thêm."},
	{En: "Please tell me a bit more, my friend.", Vi: "Vui lòng cho tôi biết thêm một chút, bạn của tôi."},
	{En: "Keep saying more, I am listening.", Vi: "Hãy nói thêm, tôi đang lắng nghe."},
}

// essayRevealThreshold is the matched-entry count at which a question
// unlocks the room essay instead of keyword guidance.
const essayRevealThreshold = 10

// IsQuestion reports whether a message reads as a question: three or
// more words, a question mark, a question word anywhere, or a
// Vietnamese question phrase.
func IsQuestion(message string) bool {
	lower := strings.ToLower(message)
	words := strings.Fields(strings.TrimSpace(message))

	if len(words) >= 3 || strings.Contains(lower, "?") {
		return true
	}
	for _, w := range words {
		if _, ok := questionTokens[strings.ToLower(w)]; ok {
			return true
		}
	}
	for _, phrase := range multiWordQuestions {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// buildEssayReveal assembles the full room essay reply: essay (falling
// back to the description) in both languages, followed by the safety
// disclaimer.
func buildEssayReveal(rm *room.Room) string {
	essay := rm.Essay()
	desc := rm.Description()
	safety := rm.SafetyDisclaimer()

	en := essay.En
	if strings.TrimSpace(en) == "" {
		en = desc.En
	}
	vi := essay.Vi
	if strings.TrimSpace(vi) == "" {
		vi = desc.Vi
	}

	return joinSections(en, vi, safety.En, safety.Vi)
}

// guidanceLines renders the bilingual keyword-guidance pair for a room.
func guidanceLines(rm *room.Room) (string, string) {
	desc := rm.Description()
	descEn := desc.En
	if strings.TrimSpace(descEn) == "" {
		descEn = "this topic"
	}
	descVi := desc.Vi
	if strings.TrimSpace(descVi) == "" {
		descVi = "chủ đề này"
	}

	en := fmt.Sprintf("I'm here to help with %s. Try using keywords in the box below (for your English, please type the keyword so you can remember spelling.).", descEn)
	vi := fmt.Sprintf("Tôi ở đây để giúp về %s. Hãy thử dùng từ khóa trong khung bên dưới.", descVi)
	return en, vi
}

// buildGuidance renders the keyword-guidance reply for questions that
// have not yet unlocked the essay.
func buildGuidance(rm *room.Room) string {
	en, vi := guidanceLines(rm)
	return en + "\n\n" + vi
}

// buildFiller renders the listening-prompt reply for keyword-free
// non-questions. The prompt intensity follows the visitor's no-keyword
// streak, capped at the final prompt.
func buildFiller(rm *room.Room, noKeywordCount int) string {
	idx := noKeywordCount
	if idx < 0 {
		idx = 0
	}
	if idx >= len(fillerPrompts) {
		idx = len(fillerPrompts) - 1
	}
	prompt := fillerPrompts[idx]

	en, vi := guidanceLines(rm)
	return strings.Join([]string{prompt.En, prompt.Vi, "\n" + en, vi}, "\n\n")
}
