package memory

import (
	"context"
	"sync"
)

// AccountLedger is an in-memory implementation of app.AccountService,
// useful for demos and tests where the identity service is external.
type AccountLedger struct {
	mu       sync.Mutex
	balances map[string]int
}

func NewAccountLedger() *AccountLedger {
	return &AccountLedger{balances: make(map[string]int)}
}

// Credit adds the amount to the player's balance.
func (l *AccountLedger) Credit(_ context.Context, playerID string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[playerID] += amount
	return nil
}

// Balance returns the player's accumulated winnings.
func (l *AccountLedger) Balance(playerID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[playerID]
}
