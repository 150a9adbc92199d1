package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"perftrack/internal/domain/leaderboard"
	"perftrack/internal/domain/scoring"
)

// ScoreSource loads one user's scoring inputs.
type ScoreSource interface {
	LoadMember(ctx context.Context, userID string) (leaderboard.CohortMember, error)
}

type Service struct {
	source ScoreSource
	now    func() time.Time
}

func New(source ScoreSource) *Service {
	return &Service{source: source, now: time.Now}
}

// GenerateScorecardPDF renders a user's current score breakdown as a PDF.
func (s *Service) GenerateScorecardPDF(ctx context.Context, userID string) ([]byte, error) {
	member, err := s.source.LoadMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	breakdown := scoring.CalculateUserScore(member.Goals, member.History, now)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Scorecard")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", member.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Role: %s", member.Role))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", now.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Total score: %.3f", breakdown.TotalScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Goal score: %.3f", breakdown.GoalScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Evidence score: %.3f", breakdown.EvidenceScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Trend adjustment: %+.3f (%s)", breakdown.TrendAdjustment, breakdown.Trend.Direction))
	pdf.Ln(10)
	pdf.Cell(0, 8, breakdown.TopReason)
	pdf.Ln(10)

	if len(breakdown.Goals) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Goals")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, g := range breakdown.Goals {
			rating := string(g.Rating)
			if rating == "" {
				rating = "not rated"
			}
			pdf.Cell(0, 7, fmt.Sprintf("%s  (weight %.0f%%, %s): %.3f", g.GoalTitle, g.Weightage, rating, g.Contribution))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
