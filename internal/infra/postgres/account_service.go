package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// AccountService credits prize money to player balances in Postgres.
type AccountService struct {
	pool *pgxpool.Pool
}

func NewAccountService(pool *pgxpool.Pool) *AccountService {
	return &AccountService{pool: pool}
}

func (s *AccountService) Credit(ctx context.Context, playerID string, amount int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (player_id, balance) VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`,
		playerID, amount)
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}
	return nil
}

// Balance reads a player's accumulated winnings.
func (s *AccountService) Balance(ctx context.Context, playerID string) (int, error) {
	var balance int
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(
		(SELECT balance FROM accounts WHERE player_id=$1), 0)`, playerID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}
