package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnd/internal/domain"
	"learnd/internal/providers/normalize"
	"learnd/internal/sqlinline"
)

type clientListSQL struct {
	clients []string
}

func (c *clientListSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (c *clientListSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return NewSimpleRow(nil)
}

func (c *clientListSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if query != sqlinline.QSelectDistinctClients {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return &stringRows{values: c.clients}, nil
}

type stringRows struct {
	TestRowsBase
	values []string
	idx    int
}

func (s *stringRows) Next() bool {
	if s.idx >= len(s.values) {
		return false
	}
	s.idx++
	return true
}

func (s *stringRows) Scan(dest ...any) error {
	if s.idx == 0 || s.idx > len(s.values) {
		return pgx.ErrNoRows
	}
	if v, ok := dest[0].(*string); ok {
		*v = s.values[s.idx-1]
	}
	return nil
}

func (s *stringRows) Err() error { return nil }

func (s *stringRows) Close() {}

func TestNormalizeBlockedBelowBusiness(t *testing.T) {
	app := &App{
		Logger: nopLogger(),
		Users:  usersWith("user-1", domain.TierTeam),
		Usage:  &fakeUsage{},
	}

	rr := httptest.NewRecorder()
	req := authedRequest("POST", "/v1/normalize/client", "user-1", strings.NewReader(`{"original_name":"acme corp"}`))
	app.NormalizeClient(rr, req)

	require.Equal(t, 403, rr.Code)
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "upgrade_required", resp.Error.Code)
}

func TestNormalizeMatchesExistingClient(t *testing.T) {
	usage := &fakeUsage{}
	app := &App{
		Logger:     nopLogger(),
		SQL:        &clientListSQL{clients: []string{"Acme Corp", "Globex"}},
		Users:      usersWith("user-1", domain.TierBusiness),
		Usage:      usage,
		Normalizer: normalize.NewStaticNormalizer(),
	}

	rr := httptest.NewRecorder()
	req := authedRequest("POST", "/v1/normalize/client", "user-1", strings.NewReader(`{"original_name":"  acme   CORP "}`))
	app.NormalizeClient(rr, req)

	require.Equal(t, 200, rr.Code)
	var resp normalize.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.IsMatch)
	assert.Equal(t, "Acme Corp", resp.SuggestedName)
	assert.GreaterOrEqual(t, resp.Confidence, 80)

	require.Len(t, usage.events, 1)
	assert.Equal(t, domain.UsageNormalizeCalled, usage.events[0].kind)
}

func TestNormalizeUsesCallerSuppliedClients(t *testing.T) {
	// The body list must reach the matcher even when nothing is stored yet.
	app := &App{
		Logger:     nopLogger(),
		SQL:        &clientListSQL{},
		Users:      usersWith("user-1", domain.TierBusiness),
		Usage:      &fakeUsage{},
		Normalizer: normalize.NewStaticNormalizer(),
	}

	rr := httptest.NewRecorder()
	body := `{"original_name":"acme corp","existing_clients":["Acme Corp"]}`
	app.NormalizeClient(rr, authedRequest("POST", "/v1/normalize/client", "user-1", strings.NewReader(body)))

	require.Equal(t, 200, rr.Code)
	var resp normalize.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.IsMatch)
	assert.Equal(t, "Acme Corp", resp.SuggestedName)
}

func TestMergeClientsPrefersStoredOrder(t *testing.T) {
	merged := mergeClients([]string{"Acme Corp", "Globex"}, []string{"  ", "Globex", "Initech"})
	assert.Equal(t, []string{"Acme Corp", "Globex", "Initech"}, merged)
}

func TestNormalizeRequiresName(t *testing.T) {
	app := &App{
		Logger: nopLogger(),
		Users:  usersWith("user-1", domain.TierBusiness),
		Usage:  &fakeUsage{},
	}

	rr := httptest.NewRecorder()
	req := authedRequest("POST", "/v1/normalize/client", "user-1", strings.NewReader(`{"original_name":"  "}`))
	app.NormalizeClient(rr, req)

	assert.Equal(t, 400, rr.Code)
}
