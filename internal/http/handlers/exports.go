package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"learnd/internal/domain"
	"learnd/internal/entitlement"
	"learnd/internal/export"
	"learnd/pkg/zip"
)

// gateExport applies the export capability and quota gates, then loads the
// lessons matching the request filters. A nil slice with ok=false means the
// response has already been written.
func (a *App) gateExport(w http.ResponseWriter, r *http.Request) (string, []domain.Lesson, bool) {
	userID := a.currentUserID(r)
	tier, ok := a.requireCapability(w, r, entitlement.CapabilityExport)
	if !ok {
		return "", nil, false
	}
	if !a.requireQuota(w, r, tier, entitlement.QuotaExports) {
		return "", nil, false
	}
	filter, err := lessonFilterFromQuery(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return "", nil, false
	}
	lessons, err := a.Lessons.List(r.Context(), userID, filter)
	if err != nil {
		a.writeDomainError(w, err, "failed to load lessons")
		return "", nil, false
	}
	return userID, lessons, true
}

func (a *App) ExportLessonsCSV(w http.ResponseWriter, r *http.Request) {
	userID, lessons, ok := a.gateExport(w, r)
	if !ok {
		return
	}
	data, err := export.LessonsCSV(lessons)
	if err != nil {
		a.Logger.Error().Err(err).Msg("csv export failed")
		a.error(w, http.StatusInternalServerError, "internal_error", "failed to build export")
		return
	}
	a.recordUsage(r.Context(), userID, domain.UsageExportRun, map[string]any{"format": "csv", "lessons": len(lessons)})
	serveDownload(w, "text/csv", exportFilename("csv"), data)
}

func (a *App) ExportLessonsPDF(w http.ResponseWriter, r *http.Request) {
	userID, lessons, ok := a.gateExport(w, r)
	if !ok {
		return
	}
	owner, err := a.ownerName(r.Context(), userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load profile")
		return
	}
	data, err := export.NewPDFGenerator().Generate(owner, summarize(lessons), lessons)
	if err != nil {
		a.Logger.Error().Err(err).Msg("pdf export failed")
		a.error(w, http.StatusInternalServerError, "internal_error", "failed to build export")
		return
	}
	a.recordUsage(r.Context(), userID, domain.UsageExportRun, map[string]any{"format": "pdf", "lessons": len(lessons)})
	serveDownload(w, "application/pdf", exportFilename("pdf"), data)
}

func (a *App) ExportLessonsZip(w http.ResponseWriter, r *http.Request) {
	userID, lessons, ok := a.gateExport(w, r)
	if !ok {
		return
	}
	owner, err := a.ownerName(r.Context(), userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load profile")
		return
	}
	csvData, err := export.LessonsCSV(lessons)
	if err != nil {
		a.Logger.Error().Err(err).Msg("csv export failed")
		a.error(w, http.StatusInternalServerError, "internal_error", "failed to build export")
		return
	}
	pdfData, err := export.NewPDFGenerator().Generate(owner, summarize(lessons), lessons)
	if err != nil {
		a.Logger.Error().Err(err).Msg("pdf export failed")
		a.error(w, http.StatusInternalServerError, "internal_error", "failed to build export")
		return
	}
	data, err := zip.Archive([]zip.File{
		{Name: exportFilename("csv"), Data: csvData},
		{Name: exportFilename("pdf"), Data: pdfData},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("zip export failed")
		a.error(w, http.StatusInternalServerError, "internal_error", "failed to build export")
		return
	}
	a.recordUsage(r.Context(), userID, domain.UsageExportRun, map[string]any{"format": "zip", "lessons": len(lessons)})
	serveDownload(w, "application/zip", exportFilename("zip"), data)
}

func (a *App) ownerName(ctx context.Context, userID string) (string, error) {
	user, err := a.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.Name != "" {
		return user.Name, nil
	}
	return user.Email, nil
}

func summarize(lessons []domain.Lesson) export.PDFSummary {
	s := export.PDFSummary{TotalLessons: len(lessons)}
	if len(lessons) == 0 {
		return s
	}
	total := 0
	for _, l := range lessons {
		total += l.Satisfaction
		if l.Budget == domain.BudgetOver {
			s.OverBudget++
		}
		if l.Timeline == domain.TimelineLate {
			s.Late++
		}
		if l.ScopeChanged {
			s.ScopeChanged++
		}
	}
	s.AvgSatisfaction = float64(total) / float64(len(lessons))
	return s
}

func exportFilename(ext string) string {
	return fmt.Sprintf("lessons-%s.%s", time.Now().UTC().Format("2006-01-02"), ext)
}

func serveDownload(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
