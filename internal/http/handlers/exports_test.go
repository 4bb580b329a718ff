package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnd/internal/domain"
)

func exportTestApp(tier domain.SubscriptionTier, usage *fakeUsage) *App {
	return &App{
		Logger: nopLogger(),
		Users:  usersWith("user-1", tier),
		Usage:  usage,
		Lessons: &fakeLessons{lessons: map[string]*domain.Lesson{
			"lesson-1": {
				ID:           "lesson-1",
				UserID:       "user-1",
				ProjectName:  "Brand Refresh",
				ClientName:   "Acme, Inc.",
				Satisfaction: 5,
				Budget:       domain.BudgetUnder,
				Timeline:     domain.TimelineOnTime,
				Notes:        "notes with \"quotes\"",
				CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		}},
	}
}

func TestExportCSVBlockedOnFreeTier(t *testing.T) {
	app := exportTestApp(domain.TierFree, &fakeUsage{})

	rr := httptest.NewRecorder()
	app.ExportLessonsCSV(rr, authedRequest("GET", "/v1/exports/lessons.csv", "user-1", nil))

	require.Equal(t, 403, rr.Code)
	var resp struct {
		Error struct {
			Code       string `json:"code"`
			Capability string `json:"capability"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "upgrade_required", resp.Error.Code)
	assert.Equal(t, "export", resp.Error.Capability)
}

func TestExportCSVTeamTier(t *testing.T) {
	usage := &fakeUsage{}
	app := exportTestApp(domain.TierTeam, usage)

	rr := httptest.NewRecorder()
	app.ExportLessonsCSV(rr, authedRequest("GET", "/v1/exports/lessons.csv", "user-1", nil))

	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")

	records, err := csv.NewReader(bytes.NewReader(rr.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "project_name", records[0][0])
	assert.Equal(t, "Brand Refresh", records[1][0])
	assert.Equal(t, "Acme, Inc.", records[1][1])

	require.Len(t, usage.events, 1)
	assert.Equal(t, domain.UsageExportRun, usage.events[0].kind)
	assert.Equal(t, "csv", usage.events[0].properties["format"])
}

func TestExportBlockedAtQuota(t *testing.T) {
	// Team tier caps exports at 20 per month.
	usage := &fakeUsage{counters: domain.UsageCounters{ExportsThisPeriod: 20}}
	app := exportTestApp(domain.TierTeam, usage)

	rr := httptest.NewRecorder()
	app.ExportLessonsCSV(rr, authedRequest("GET", "/v1/exports/lessons.csv", "user-1", nil))

	require.Equal(t, 403, rr.Code)
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "quota_exceeded", resp.Error.Code)
	assert.Empty(t, usage.events)
}

func TestExportPDFHasMagicBytes(t *testing.T) {
	app := exportTestApp(domain.TierBusiness, &fakeUsage{})

	rr := httptest.NewRecorder()
	app.ExportLessonsPDF(rr, authedRequest("GET", "/v1/exports/lessons.pdf", "user-1", nil))

	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestExportZipContainsBothFiles(t *testing.T) {
	usage := &fakeUsage{}
	app := exportTestApp(domain.TierBusiness, usage)

	rr := httptest.NewRecorder()
	app.ExportLessonsZip(rr, authedRequest("GET", "/v1/exports/lessons.zip", "user-1", nil))

	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "application/zip", rr.Header().Get("Content-Type"))
	// zip local file header magic
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))

	require.Len(t, usage.events, 1)
	assert.Equal(t, "zip", usage.events[0].properties["format"])
}
