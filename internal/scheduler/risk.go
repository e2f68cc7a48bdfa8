package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/metrics"
)

const (
	RecommendInsufficientData = "insufficient data to forecast"
	RecommendReviewResourcing = "progress is slow, review resourcing"
	RecommendOnTrack          = "on track"

	// slowProgressPct and slowWorkingDays mark an item that has been
	// staffed for a while without visible progress.
	slowProgressPct = 30
	slowWorkingDays = 5
)

type RiskInput struct {
	Today        time.Time
	ProjectEnd   *time.Time
	EstDays      int
	PredictedEnd time.Time
	ProgressPct  float64
	WorkingDays  int
}

type RiskResult struct {
	Level          domain.RiskLevel
	Recommendation string
	// DaysLate is how far the prediction overruns the project end, 0 if not.
	DaysLate int
}

// ClassifyRisk applies the decision order: inestimable projections are high,
// then overrunning the project end is high, then slow progress after more
// than a few staffed days is medium, otherwise low.
func ClassifyRisk(in RiskInput) RiskResult {
	if in.EstDays >= metrics.Inestimable {
		return RiskResult{Level: domain.RiskHigh, Recommendation: RecommendInsufficientData}
	}

	if in.ProjectEnd != nil && domain.Today(in.PredictedEnd).After(domain.Today(*in.ProjectEnd)) {
		late := domain.DaysBetween(*in.ProjectEnd, in.PredictedEnd)
		return RiskResult{
			Level:          domain.RiskHigh,
			Recommendation: fmt.Sprintf("%d days past planned end", late),
			DaysLate:       late,
		}
	}

	if in.ProgressPct < slowProgressPct && in.WorkingDays > slowWorkingDays {
		return RiskResult{Level: domain.RiskMedium, Recommendation: RecommendReviewResourcing}
	}

	return RiskResult{Level: domain.RiskLow, Recommendation: RecommendOnTrack}
}
