package app

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"millionaire-game-service/internal/domain"
)

// UseLifeline consumes a lifeline for the current question. Each kind
// is available once per session; using it records the kind on the
// session and stores the payload on the current question without
// touching level, prize, or finished state.
func (s *Session) UseLifeline(kind domain.LifelineKind) (domain.LifelineResult, error) {
	if !domain.ValidLifeline(kind) {
		return domain.LifelineResult{}, domain.ErrUnknownLifeline
	}
	if s.Finished() {
		return domain.LifelineResult{}, domain.ErrInvalidState
	}
	if _, used := s.usedLifelines[kind]; used {
		return domain.LifelineResult{}, domain.ErrLifelineUsed
	}

	question := s.CurrentQuestion()
	var result domain.LifelineResult
	switch kind {
	case domain.LifelineFiftyFifty:
		result = fiftyFifty(question, s.rnd)
	case domain.LifelineAudienceHelp:
		result = audienceHelp(question, s.rnd)
	case domain.LifelineFriendCall:
		result = friendCall(question, s.rnd)
	}

	s.usedLifelines[kind] = struct{}{}
	question.recordHelp(kind, result)
	return result, nil
}

// fiftyFifty keeps the correct slot and one random wrong slot,
// eliminating the other two.
func fiftyFifty(q *SessionQuestion, rnd *rand.Rand) domain.LifelineResult {
	correct := q.CorrectSlot()
	wrong := make([]domain.SlotKey, 0, 3)
	for _, key := range domain.SlotKeys {
		if key != correct {
			wrong = append(wrong, key)
		}
	}

	kept := []domain.SlotKey{correct, wrong[rnd.Intn(len(wrong))]}
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
	return domain.LifelineResult{
		Kind:      domain.LifelineFiftyFifty,
		KeptSlots: kept,
	}
}

// audienceHelp votes every slot an integer percentage summing to 100.
// The correct slot always gets more than half, so it holds the
// plurality no matter how the remainder splits.
func audienceHelp(q *SessionQuestion, rnd *rand.Rand) domain.LifelineResult {
	correct := q.CorrectSlot()
	votes := make(map[domain.SlotKey]int, len(domain.SlotKeys))
	remaining := 100 - (51 + rnd.Intn(20))
	votes[correct] = 100 - remaining

	wrong := make([]domain.SlotKey, 0, 3)
	for _, key := range domain.SlotKeys {
		if key != correct {
			wrong = append(wrong, key)
		}
	}
	for i, key := range wrong {
		if i == len(wrong)-1 {
			votes[key] = remaining
			break
		}
		share := rnd.Intn(remaining + 1)
		votes[key] = share
		remaining -= share
	}
	return domain.LifelineResult{
		Kind:          domain.LifelineAudienceHelp,
		AudienceVotes: votes,
	}
}

var friendPhrases = []string{
	"I watched this show last week, I'm almost sure it's %s.",
	"Hmm, tough one... if I had to bet, I'd go with %s.",
	"My gut says %s, but don't blame me if it's wrong!",
	"I remember reading about this, try %s.",
}

// friendCall phones a friend who hints at the correct slot letter
// without flatly stating the answer.
func friendCall(q *SessionQuestion, rnd *rand.Rand) domain.LifelineResult {
	letter := strings.ToUpper(string(q.CorrectSlot()))
	return domain.LifelineResult{
		Kind:       domain.LifelineFriendCall,
		FriendHint: fmt.Sprintf(friendPhrases[rnd.Intn(len(friendPhrases))], letter),
	}
}
