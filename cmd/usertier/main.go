package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"learnd/internal/adapter/repo"
	"learnd/internal/domain"
	"learnd/internal/infra"
)

// usertier assigns a subscription tier to a user, looked up by ID or email.
func main() {
	var (
		idFlag    string
		emailFlag string
		tierFlag  string
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&tierFlag, "tier", "", "tier to assign (free, team, business, enterprise)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	tier := domain.SubscriptionTier(strings.TrimSpace(strings.ToLower(tierFlag)))

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	if !tier.Valid() {
		exitWithError(fmt.Errorf("unsupported tier %q", tierFlag))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "usertier").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	users := repo.NewUserRepository(runner)

	if userID == "" {
		lookupCtx, cancelLookup := context.WithTimeout(context.Background(), 5*time.Second)
		user, err := users.GetByEmail(lookupCtx, email)
		cancelLookup()
		if err != nil {
			exitWithError(fmt.Errorf("failed to load user: %w", err))
		}
		userID = user.ID
	}

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelUpdate()
	if err := users.SetTier(updateCtx, userID, tier); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			exitWithError(fmt.Errorf("no user with id %s", userID))
		}
		exitWithError(fmt.Errorf("failed to update tier: %w", err))
	}

	fmt.Printf("User %s updated to tier %s\n", userID, tier)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
