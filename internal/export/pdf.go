package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"learnd/internal/domain"
)

var (
	colorPrimary     = [3]int{30, 58, 95}
	colorTextDark    = [3]int{44, 62, 80}
	colorTextMuted   = [3]int{127, 140, 141}
	colorTableHeader = [3]int{30, 58, 95}
	colorTableAlt    = [3]int{241, 245, 249}
)

// PDFSummary is the aggregate block printed above the lesson table.
type PDFSummary struct {
	TotalLessons    int
	AvgSatisfaction float64
	OverBudget      int
	Late            int
	ScopeChanged    int
}

// PDFGenerator renders the lessons report.
type PDFGenerator struct{}

// NewPDFGenerator creates a new PDF generator.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Generate builds a report with a header, a summary section, and the lesson
// table, and returns the finished document bytes.
func (g *PDFGenerator) Generate(owner string, summary PDFSummary, lessons []domain.Lesson) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.writeHeader(pdf, owner)
	g.writeSummary(pdf, summary)
	g.writeTable(pdf, lessons)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) writeHeader(pdf *fpdf.Fpdf, owner string) {
	pageWidth, _ := pdf.GetPageSize()
	pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.Rect(0, 0, pageWidth, 6, "F")

	pdf.SetY(14)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.CellFormat(0, 10, "Learnd - Project Lessons Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.CellFormat(0, 6, fmt.Sprintf("Prepared for %s on %s", owner, time.Now().UTC().Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (g *PDFGenerator) writeSummary(pdf *fpdf.Fpdf, s PDFSummary) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	rows := []string{
		fmt.Sprintf("Lessons captured: %d", s.TotalLessons),
		fmt.Sprintf("Average satisfaction: %.1f / 5", s.AvgSatisfaction),
		fmt.Sprintf("Projects over budget: %d", s.OverBudget),
		fmt.Sprintf("Projects delivered late: %d", s.Late),
		fmt.Sprintf("Projects with scope changes: %d", s.ScopeChanged),
	}
	for _, row := range rows {
		pdf.CellFormat(0, 6, row, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *PDFGenerator) writeTable(pdf *fpdf.Fpdf, lessons []domain.Lesson) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.CellFormat(0, 8, "Lessons", "", 1, "L", false, 0, "")

	headers := []string{"Project", "Client", "Rating", "Budget", "Timeline", "Captured"}
	widths := []float64{45, 40, 16, 22, 24, 33}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(colorTableHeader[0], colorTableHeader[1], colorTableHeader[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	for i, l := range lessons {
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(colorTableAlt[0], colorTableAlt[1], colorTableAlt[2])
		}
		cells := []string{
			truncate(l.ProjectName, 30),
			truncate(l.ClientName, 26),
			fmt.Sprintf("%d/5", l.Satisfaction),
			string(l.Budget),
			string(l.Timeline),
			l.CreatedAt.UTC().Format("2006-01-02"),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, cell, "", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(lessons) == 0 {
		pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
		pdf.CellFormat(0, 6, "No lessons matched the export filters.", "", 1, "L", false, 0, "")
	}
}

// truncate shortens s to at most max runes, marking the cut. Counting runes
// keeps multi-byte names from being sliced mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "~"
}
