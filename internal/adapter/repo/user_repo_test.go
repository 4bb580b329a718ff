package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnd/internal/domain"
	"learnd/internal/sqlinline"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type stubExecutor struct {
	row       stubRow
	execTag   pgconn.CommandTag
	execErr   error
	lastQuery string
	lastArgs  []any
}

func (s *stubExecutor) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.lastQuery, s.lastArgs = query, args
	return s.execTag, s.execErr
}

func (s *stubExecutor) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.lastQuery, s.lastArgs = query, args
	return s.row
}

func (s *stubExecutor) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported in stub")
}

func TestGetByEmailReturnsUser(t *testing.T) {
	now := time.Now().UTC()
	sql := &stubExecutor{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*string) = "user-1"
		*dest[1].(*string) = "google-sub-1"
		*dest[2].(*string) = "maria@example.com"
		*dest[3].(*string) = "Maria"
		*dest[4].(*string) = ""
		*dest[5].(*domain.SubscriptionTier) = domain.TierTeam
		*dest[6].(*time.Time) = now
		*dest[7].(*time.Time) = now
		return nil
	}}}

	users := NewUserRepository(sql)
	user, err := users.GetByEmail(context.Background(), "maria@example.com")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, domain.TierTeam, user.Tier)
	assert.Equal(t, sqlinline.QSelectUserByEmail, sql.lastQuery)
	require.Len(t, sql.lastArgs, 1)
	assert.Equal(t, "maria@example.com", sql.lastArgs[0])
}

func TestGetByEmailNotFound(t *testing.T) {
	users := NewUserRepository(&stubExecutor{})

	_, err := users.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetTierUpdatesRow(t *testing.T) {
	sql := &stubExecutor{execTag: pgconn.NewCommandTag("UPDATE 1")}
	users := NewUserRepository(sql)

	err := users.SetTier(context.Background(), "user-1", domain.TierBusiness)

	require.NoError(t, err)
	assert.Equal(t, sqlinline.QUpdateUserTier, sql.lastQuery)
	require.Len(t, sql.lastArgs, 2)
	assert.Equal(t, "user-1", sql.lastArgs[0])
	assert.Equal(t, "business", sql.lastArgs[1])
}

func TestSetTierRejectsUnknownTier(t *testing.T) {
	sql := &stubExecutor{}
	users := NewUserRepository(sql)

	err := users.SetTier(context.Background(), "user-1", domain.SubscriptionTier("platinum"))

	assert.ErrorIs(t, err, domain.ErrInvalidTier)
	assert.Empty(t, sql.lastQuery)
}

func TestSetTierMissingUser(t *testing.T) {
	sql := &stubExecutor{execTag: pgconn.NewCommandTag("UPDATE 0")}
	users := NewUserRepository(sql)

	err := users.SetTier(context.Background(), "ghost", domain.TierFree)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
