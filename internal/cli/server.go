package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/config"
	"millionaire-game-service/internal/domain"
	"millionaire-game-service/internal/infra/memory"
	pginfra "millionaire-game-service/internal/infra/postgres"
	redisinfra "millionaire-game-service/internal/infra/redis"
	transport "millionaire-game-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.Duration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader redisinfra.QuestionLoader = memory.NewStaticQuestionLoader(sampleQuestions())
	if pool != nil {
		loader = pginfra.NewQuestionLoader(pool)
	}

	bankTTL := config.Duration(cfg.Bank.TTL, 10*time.Minute)
	var bank app.QuestionBank
	if redisClient != nil {
		bank = redisinfra.NewQuestionBank(redisClient, loader, bankTTL)
	} else {
		memBank, err := loadMemoryBank(ctx, loader)
		if err != nil {
			return err
		}
		bank = memBank
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}

	var accounts app.AccountService = memory.NewAccountLedger()
	if pool != nil {
		accounts = pginfra.NewAccountService(pool)
	}

	rules := app.Rules{
		Ladder:          cfg.Game.Prizes,
		FireproofLevels: cfg.Game.FireproofLevels,
		TimeBudget:      config.Duration(cfg.Game.TimeBudget, 0),
	}

	service := app.NewGameService(store, bank, accounts, rules)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting game service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadMemoryBank drains the loader into an in-memory bank when Redis is
// not configured.
func loadMemoryBank(ctx context.Context, loader redisinfra.QuestionLoader) (*memory.QuestionBank, error) {
	var all []domain.Question
	for level := 0; level < domain.QuestionLevels; level++ {
		questions, err := loader.LoadQuestions(ctx, level)
		if err != nil {
			return nil, err
		}
		all = append(all, questions...)
	}
	return memory.NewQuestionBank(all), nil
}

// sampleQuestions provides a minimal pool for running without a
// database; swap in the Postgres loader for real content.
func sampleQuestions() []domain.Question {
	questions := make([]domain.Question, 0, domain.QuestionLevels*2)
	for level := 0; level < domain.QuestionLevels; level++ {
		for n := 1; n <= 2; n++ {
			questions = append(questions, domain.Question{
				ID:    fmt.Sprintf("sample-%d-%d", level, n),
				Level: level,
				Text:  fmt.Sprintf("Demo question %d for level %d: which answer is first?", n, level),
				Answers: [4]string{
					"the first one",
					"the second one",
					"the third one",
					"the fourth one",
				},
			})
		}
	}
	return questions
}
