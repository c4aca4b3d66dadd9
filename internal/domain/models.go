package domain

// QuestionLevels is the number of difficulty levels in a game ladder.
// Questions carry levels 0..QuestionLevels-1.
const QuestionLevels = 15

// Question is a four-answer trivia question owned by the question bank.
// Answers[0] is the canonical correct answer; the engine never mutates
// a Question.
type Question struct {
	ID      string    `json:"id"`
	Level   int       `json:"level"`
	Text    string    `json:"text"`
	Answers [4]string `json:"answers"`
}

// CorrectAnswer returns the canonical correct answer text.
func (q Question) CorrectAnswer() string {
	return q.Answers[0]
}

// SlotKey identifies one of the four fixed display positions an answer
// can occupy.
type SlotKey string

const (
	SlotA SlotKey = "a"
	SlotB SlotKey = "b"
	SlotC SlotKey = "c"
	SlotD SlotKey = "d"
)

// SlotKeys lists all display slots in presentation order.
var SlotKeys = [4]SlotKey{SlotA, SlotB, SlotC, SlotD}

// ValidSlot reports whether key names one of the four display slots.
func ValidSlot(key SlotKey) bool {
	switch key {
	case SlotA, SlotB, SlotC, SlotD:
		return true
	}
	return false
}

// LifelineKind enumerates the one-shot aids available once per game.
type LifelineKind string

const (
	LifelineFiftyFifty   LifelineKind = "fifty_fifty"
	LifelineAudienceHelp LifelineKind = "audience_help"
	LifelineFriendCall   LifelineKind = "friend_call"
)

// LifelineKinds lists every lifeline a fresh game starts with.
var LifelineKinds = [3]LifelineKind{LifelineFiftyFifty, LifelineAudienceHelp, LifelineFriendCall}

// ValidLifeline reports whether kind names a known lifeline.
func ValidLifeline(kind LifelineKind) bool {
	switch kind {
	case LifelineFiftyFifty, LifelineAudienceHelp, LifelineFriendCall:
		return true
	}
	return false
}

// LifelineResult carries the outcome of one lifeline invocation. Kind
// selects which payload field is populated; the other fields stay zero.
// The tagged struct replaces a loosely typed help bag so callers never
// have to guess the payload shape behind a map key.
type LifelineResult struct {
	Kind LifelineKind `json:"kind"`
	// KeptSlots is set for fifty_fifty: the correct slot plus one
	// random wrong slot, sorted by slot key.
	KeptSlots []SlotKey `json:"keptSlots,omitempty"`
	// AudienceVotes is set for audience_help: every slot mapped to an
	// integer percentage, summing to 100.
	AudienceVotes map[SlotKey]int `json:"audienceVotes,omitempty"`
	// FriendHint is set for friend_call: free-form advice naming the
	// suggested slot letter in uppercase.
	FriendHint string `json:"friendHint,omitempty"`
}

// SessionStatus is the derived state of a game session.
type SessionStatus string

const (
	StatusInProgress      SessionStatus = "in_progress"
	StatusWon             SessionStatus = "won"
	StatusLostWrongAnswer SessionStatus = "lost_wrong_answer"
	StatusLostTimeout     SessionStatus = "lost_timeout"
	StatusCashedOut       SessionStatus = "cashed_out"
)

// Finished reports whether the status is terminal.
func (s SessionStatus) Finished() bool {
	return s != StatusInProgress
}
