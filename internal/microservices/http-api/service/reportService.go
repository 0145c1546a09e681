package service

import (
	"context"
	"time"

	"foodreview/internal/logging"
	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/monitoring"
)

type ReportService interface {
	Report(ctx context.Context, reviewID, userID, reason string) (models.ReportResult, error)
}

type reportService struct {
	*reviewWriter
}

func NewReportService(repo repository.ReviewRepository, cache repository.ReviewCache, opts ...Option) ReportService {
	return &reportService{reviewWriter: newReviewWriter(repo, cache, opts...)}
}

// Report files userID's report. The review is hidden once it collects
// models.AutoRemoveThreshold distinct reports.
func (s *reportService) Report(ctx context.Context, reviewID, userID, reason string) (models.ReportResult, error) {
	// validate before touching storage so bad input never costs a read
	if userID == "" {
		return models.ReportResult{}, models.ErrMissingUserID
	}
	parsed, err := models.ParseReportReason(reason)
	if err != nil {
		return models.ReportResult{}, err
	}

	var res models.ReportResult
	_, err = s.mutate(ctx, "report", reviewID, func(r *models.Review, now time.Time) error {
		var err error
		res, err = r.AddReport(userID, string(parsed), now)
		return err
	})
	if err != nil {
		return models.ReportResult{}, err
	}

	monitoring.RecordReport(string(parsed), res.RemovedNow)
	if res.RemovedNow {
		logging.LogModeration(reviewID, userID, "auto_remove", res.ReportsCount)
	}
	return res, nil
}
