package models

import (
	"math"
	"time"
)

// Derived-state rules for the OKR aggregate. These are pure functions the
// service applies explicitly before every persist: progress first, then
// status, so the status machine reads freshly computed progress.

// CalculateOverallProgress sets and returns the OKR's overall progress as the
// rounded mean of its Key Results' progress, or 0 when there are none.
func CalculateOverallProgress(okr *OKR) int {
	if len(okr.KeyResults) == 0 {
		okr.OverallProgress = 0
		return 0
	}

	total := 0
	for _, kr := range okr.KeyResults {
		total += kr.Progress
	}
	okr.OverallProgress = int(math.Round(float64(total) / float64(len(okr.KeyResults))))
	return okr.OverallProgress
}

// UpdateOKRStatus advances the OKR status machine. Cancelled is sticky and
// never transitions out. CompletedAt is stamped on the first transition to
// completed and never cleared afterwards.
func UpdateOKRStatus(okr *OKR, now time.Time) {
	if okr.Status == StatusCancelled {
		return
	}

	if okr.OverallProgress >= 100 {
		okr.Status = StatusCompleted
	} else if now.After(okr.EndDate) && okr.Status == StatusActive {
		// Past the end date without reaching 100: the objective closes anyway.
		okr.Status = StatusCompleted
	} else if !now.Before(okr.StartDate) && !now.After(okr.EndDate) && okr.Status == StatusDraft {
		okr.Status = StatusActive
	}

	if okr.Status == StatusCompleted && okr.CompletedAt == nil {
		okr.CompletedAt = &now
	}
}

// RecalculateKeyResultProgress derives the Key Result progress from its
// current and target values, clamped to [0, 100]. A non-positive target
// yields 0.
func RecalculateKeyResultProgress(kr *KeyResult) {
	if kr.TargetValue <= 0 {
		kr.Progress = 0
		return
	}

	progress := int(math.Round(kr.CurrentValue / kr.TargetValue * 100))
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}
	kr.Progress = progress
}

// ApplyKeyResultProgressStatus moves the Key Result status along with its
// progress: 100 means completed (completedAt stamped once), any progress
// moves not_started to in_progress.
func ApplyKeyResultProgressStatus(kr *KeyResult, now time.Time) {
	if kr.Progress >= 100 {
		kr.Status = KRStatusCompleted
		if kr.CompletedAt == nil {
			kr.CompletedAt = &now
		}
	} else if kr.Progress > 0 && kr.Status == KRStatusNotStarted {
		kr.Status = KRStatusInProgress
	}
}

// CompleteKeyResult applies a manual completion: progress is forced to 100,
// the current value snaps to the target and completedAt is stamped.
func CompleteKeyResult(kr *KeyResult, now time.Time) {
	kr.Status = KRStatusCompleted
	kr.Progress = 100
	kr.CurrentValue = kr.TargetValue
	if kr.CompletedAt == nil {
		kr.CompletedAt = &now
	}
}
