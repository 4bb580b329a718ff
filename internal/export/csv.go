// Package export renders lesson records into the downloadable formats the
// product offers: CSV, PDF, and a zip bundle of both.
package export

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"learnd/internal/domain"
)

var csvBaseHeader = []string{
	"project_name",
	"client_name",
	"satisfaction",
	"budget_status",
	"timeline_status",
	"scope_changed",
	"notes",
	"created_at",
}

// LessonsCSV renders lessons as RFC 4180 CSV with a header row. Custom field
// columns are appended after the base columns, sorted by name, as the union
// of keys across all lessons; lessons missing a key get an empty cell.
func LessonsCSV(lessons []domain.Lesson) ([]byte, error) {
	customKeys := collectCustomKeys(lessons)

	header := append(append([]string{}, csvBaseHeader...), customKeys...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, l := range lessons {
		record := []string{
			l.ProjectName,
			l.ClientName,
			strconv.Itoa(l.Satisfaction),
			string(l.Budget),
			string(l.Timeline),
			strconv.FormatBool(l.ScopeChanged),
			l.Notes,
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, key := range customKeys {
			record = append(record, l.CustomFields[key])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func collectCustomKeys(lessons []domain.Lesson) []string {
	seen := map[string]struct{}{}
	for _, l := range lessons {
		for key := range l.CustomFields {
			if strings.TrimSpace(key) == "" {
				continue
			}
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
