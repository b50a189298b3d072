package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/internal/timeutil"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// PDFGenerator generates fasting progress reports
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

var _ service.ProgressReportGenerator = (*PDFGenerator)(nil)

// Generate creates a PDF progress report from the provided data
func (g *PDFGenerator) Generate(data *service.ReportData) ([]byte, error) {
	g.logger.Info("generating progress report",
		zap.Int("total_fasts", data.Summary.TotalFasts),
		zap.Int("recent_sessions", len(data.RecentSessions)),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	pdf.AddPage()

	g.addTitle(pdf, "Fasting Progress Report", data.GeneratedAt)

	g.addSummary(pdf, data.Summary)
	g.addStreaks(pdf, data.Summary)
	g.addMethodDistribution(pdf, data.MethodDistribution)
	g.addAchievements(pdf, data.Achievements)
	g.addRecentSessions(pdf, data.RecentSessions)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("progress report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, title string, generatedAt time.Time) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addSummary adds the overall statistics section
func (g *PDFGenerator) addSummary(pdf *gofpdf.Fpdf, summary service.StatsSummary) {
	g.addSectionHeader(pdf, "Overview")

	if summary.TotalFasts == 0 {
		pdf.CellFormat(0, 8, "No completed fasts recorded yet.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.CellFormat(0, 6, fmt.Sprintf("Completed fasts: %d", summary.TotalFasts), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Completion rate: %d%%", summary.CompletionRate), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Average duration: %s", timeutil.FormatDuration(summary.AverageDuration)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total fasting time: %d hours", summary.TotalHours), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addStreaks adds the streak section
func (g *PDFGenerator) addStreaks(pdf *gofpdf.Fpdf, summary service.StatsSummary) {
	g.addSectionHeader(pdf, "Streaks")

	pdf.CellFormat(0, 6, fmt.Sprintf("Current streak: %d days", summary.CurrentStreak), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Longest streak: %d days", summary.LongestStreak), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addMethodDistribution adds the fasts-per-method section
func (g *PDFGenerator) addMethodDistribution(pdf *gofpdf.Fpdf, distribution map[string]int) {
	g.addSectionHeader(pdf, "Fasting Methods")

	if len(distribution) == 0 {
		pdf.CellFormat(0, 8, "No method data recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, method := range model.FastingMethods {
		if count, ok := distribution[method.Name]; ok {
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d fasts", method.Name, count), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)
}

// addAchievements adds the achievements section
func (g *PDFGenerator) addAchievements(pdf *gofpdf.Fpdf, achievements []model.Achievement) {
	g.addSectionHeader(pdf, "Achievements")

	if len(achievements) == 0 {
		pdf.CellFormat(0, 8, "No achievements evaluated.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, a := range achievements {
		status := "In progress"
		if a.Unlocked {
			status = "Unlocked"
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", a.Title, status), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  %s - %d/%d", a.Description, a.Progress, a.MaxProgress), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

// addRecentSessions adds the recent sessions section
func (g *PDFGenerator) addRecentSessions(pdf *gofpdf.Fpdf, sessions []model.FastingSession) {
	g.addSectionHeader(pdf, "Recent Sessions")

	if len(sessions) == 0 {
		pdf.CellFormat(0, 8, "No sessions recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	maxSessions := 15
	if len(sessions) < maxSessions {
		maxSessions = len(sessions)
	}

	for i := 0; i < maxSessions; i++ {
		session := sessions[i]
		dateStr := session.StartTime.Format("2006-01-02 15:04")

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Method: %s", session.Method.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Duration: %s", timeutil.FormatDuration(session.Duration)), "", 1, "L", false, 0, "")
		if !session.Completed {
			pdf.CellFormat(0, 5, "  Status: in progress", "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
	pdf.Ln(5)
}
