package domain

import "errors"

var (
	// ErrInsufficientPool is returned when the question bank cannot
	// supply one unused question for every ladder level.
	ErrInsufficientPool = errors.New("question pool cannot fill every level")
	// ErrSessionNotFound is returned when a player has no active game session.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionActive is returned when starting a game for a player
	// who already has an unfinished one.
	ErrSessionActive = errors.New("player already has an active game session")
	// ErrInvalidState is returned when an operation requires an
	// in-progress session but the session has already finished.
	ErrInvalidState = errors.New("game session already finished")
	// ErrLifelineUsed is returned when a lifeline kind is invoked a
	// second time within the same session.
	ErrLifelineUsed = errors.New("lifeline already used this session")
	// ErrUnknownSlot indicates a submitted answer slot is not one of a/b/c/d.
	ErrUnknownSlot = errors.New("unknown answer slot")
	// ErrUnknownLifeline indicates a submitted lifeline kind is not recognized.
	ErrUnknownLifeline = errors.New("unknown lifeline kind")
	// ErrNoUnusedQuestions is returned by question banks when a level
	// has no unused questions left.
	ErrNoUnusedQuestions = errors.New("no unused questions at level")
)
