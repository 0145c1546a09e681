package models

import (
	"strings"
	"time"
)

type ReportReason string

const (
	ReasonSpam        ReportReason = "spam"
	ReasonAbusive     ReportReason = "abusive"
	ReasonOffTopic    ReportReason = "off-topic"
	ReasonPlagiarism  ReportReason = "plagiarism"
	ReasonAdvertising ReportReason = "advertising"
	ReasonOther       ReportReason = "other"
)

var validReasons = map[ReportReason]struct{}{
	ReasonSpam:        {},
	ReasonAbusive:     {},
	ReasonOffTopic:    {},
	ReasonPlagiarism:  {},
	ReasonAdvertising: {},
	ReasonOther:       {},
}

// ParseReportReason validates a raw reason string.
func ParseReportReason(raw string) (ReportReason, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrReasonRequired
	}
	reason := ReportReason(raw)
	if _, ok := validReasons[reason]; !ok {
		return "", ErrInvalidReason
	}
	return reason, nil
}

// Report is one user's moderation flag on a review.
type Report struct {
	UserID    string       `json:"userId" bson:"userId"`
	Reason    ReportReason `json:"reason" bson:"reason"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

type ReportResult struct {
	ReportsCount int
	Removed      bool
	RemovedNow   bool // this report crossed the threshold
}

// HasReported reports whether userID already flagged the review.
func (r *Review) HasReported(userID string) bool {
	for _, rep := range r.Reports {
		if rep.UserID == userID {
			return true
		}
	}
	return false
}

// AddReport records userID's report and hides the review once it has
// AutoRemoveThreshold reports. Removed reviews still accept reports.
func (r *Review) AddReport(userID, rawReason string, now time.Time) (ReportResult, error) {
	if userID == "" {
		return ReportResult{}, ErrMissingUserID
	}
	reason, err := ParseReportReason(rawReason)
	if err != nil {
		return ReportResult{}, err
	}
	if r.HasReported(userID) {
		return ReportResult{}, ErrAlreadyReported
	}

	r.Reports = append(r.Reports, Report{UserID: userID, Reason: reason, CreatedAt: now})

	removedNow := false
	if !r.IsRemoved && len(r.Reports) >= AutoRemoveThreshold {
		r.IsRemoved = true
		r.RemovedAt = &now
		removedNow = true
	}

	return ReportResult{
		ReportsCount: len(r.Reports),
		Removed:      r.IsRemoved,
		RemovedNow:   removedNow,
	}, nil
}
