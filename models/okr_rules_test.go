package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestRecalculateKeyResultProgress(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		target   float64
		expected int
	}{
		{"zero current", 0, 10, 0},
		{"half way", 5, 10, 50},
		{"exact target", 10, 10, 100},
		{"over target clamps to 100", 15, 10, 100},
		{"negative current clamps to 0", -5, 10, 0},
		{"zero target yields 0", 7, 0, 0},
		{"negative target yields 0", 7, -3, 0},
		{"rounds to nearest", 1, 3, 33},
		{"rounds half up", 1, 8, 13},
		{"fractional values", 2.5, 10, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kr := KeyResult{CurrentValue: tt.current, TargetValue: tt.target}
			RecalculateKeyResultProgress(&kr)
			assert.Equal(t, tt.expected, kr.Progress)
			assert.GreaterOrEqual(t, kr.Progress, 0)
			assert.LessOrEqual(t, kr.Progress, 100)
		})
	}
}

func TestApplyKeyResultProgressStatus(t *testing.T) {
	t.Run("full progress completes and stamps completedAt", func(t *testing.T) {
		kr := KeyResult{Progress: 100, Status: KRStatusInProgress}
		ApplyKeyResultProgressStatus(&kr, testNow)

		assert.Equal(t, KRStatusCompleted, kr.Status)
		require.NotNil(t, kr.CompletedAt)
		assert.Equal(t, testNow, *kr.CompletedAt)
	})

	t.Run("completedAt is stamped only once", func(t *testing.T) {
		first := testNow.Add(-48 * time.Hour)
		kr := KeyResult{Progress: 100, Status: KRStatusCompleted, CompletedAt: &first}
		ApplyKeyResultProgressStatus(&kr, testNow)

		require.NotNil(t, kr.CompletedAt)
		assert.Equal(t, first, *kr.CompletedAt)
	})

	t.Run("any progress moves not_started to in_progress", func(t *testing.T) {
		kr := KeyResult{Progress: 1, Status: KRStatusNotStarted}
		ApplyKeyResultProgressStatus(&kr, testNow)
		assert.Equal(t, KRStatusInProgress, kr.Status)
	})

	t.Run("at_risk is not overwritten by partial progress", func(t *testing.T) {
		kr := KeyResult{Progress: 40, Status: KRStatusAtRisk}
		ApplyKeyResultProgressStatus(&kr, testNow)
		assert.Equal(t, KRStatusAtRisk, kr.Status)
	})

	t.Run("zero progress stays not_started", func(t *testing.T) {
		kr := KeyResult{Progress: 0, Status: KRStatusNotStarted}
		ApplyKeyResultProgressStatus(&kr, testNow)
		assert.Equal(t, KRStatusNotStarted, kr.Status)
	})
}

func TestCompleteKeyResult(t *testing.T) {
	kr := KeyResult{CurrentValue: 4, TargetValue: 10, Progress: 40, Status: KRStatusInProgress}
	CompleteKeyResult(&kr, testNow)

	assert.Equal(t, KRStatusCompleted, kr.Status)
	assert.Equal(t, 100, kr.Progress)
	assert.Equal(t, 10.0, kr.CurrentValue)
	require.NotNil(t, kr.CompletedAt)
	assert.Equal(t, testNow, *kr.CompletedAt)
}

func TestCalculateOverallProgress(t *testing.T) {
	t.Run("no key results yields 0", func(t *testing.T) {
		okr := OKR{OverallProgress: 55}
		assert.Equal(t, 0, CalculateOverallProgress(&okr))
		assert.Equal(t, 0, okr.OverallProgress)
	})

	t.Run("rounded mean of key result progress", func(t *testing.T) {
		okr := OKR{KeyResults: []KeyResult{
			{Progress: 0},
			{Progress: 50},
			{Progress: 100},
		}}
		assert.Equal(t, 50, CalculateOverallProgress(&okr))
	})

	t.Run("rounds the mean", func(t *testing.T) {
		okr := OKR{KeyResults: []KeyResult{
			{Progress: 33},
			{Progress: 33},
			{Progress: 34},
		}}
		// 100/3 rounds to 33
		assert.Equal(t, 33, CalculateOverallProgress(&okr))

		okr = OKR{KeyResults: []KeyResult{
			{Progress: 75},
			{Progress: 50},
		}}
		// 62.5 rounds to 63
		assert.Equal(t, 63, CalculateOverallProgress(&okr))
	})
}

func TestUpdateOKRStatus(t *testing.T) {
	window := func(status string) OKR {
		return OKR{
			Status:    status,
			StartDate: testNow.Add(-30 * 24 * time.Hour),
			EndDate:   testNow.Add(30 * 24 * time.Hour),
		}
	}

	t.Run("cancelled is sticky", func(t *testing.T) {
		okr := window(StatusCancelled)
		okr.OverallProgress = 100
		UpdateOKRStatus(&okr, testNow)

		assert.Equal(t, StatusCancelled, okr.Status)
		assert.Nil(t, okr.CompletedAt)
	})

	t.Run("full progress completes regardless of dates", func(t *testing.T) {
		okr := window(StatusDraft)
		okr.OverallProgress = 100
		UpdateOKRStatus(&okr, testNow)

		assert.Equal(t, StatusCompleted, okr.Status)
		require.NotNil(t, okr.CompletedAt)
		assert.Equal(t, testNow, *okr.CompletedAt)
	})

	t.Run("completedAt is stamped only once", func(t *testing.T) {
		first := testNow.Add(-72 * time.Hour)
		okr := window(StatusCompleted)
		okr.OverallProgress = 100
		okr.CompletedAt = &first
		UpdateOKRStatus(&okr, testNow)

		require.NotNil(t, okr.CompletedAt)
		assert.Equal(t, first, *okr.CompletedAt)
	})

	t.Run("active past end date auto-closes", func(t *testing.T) {
		okr := OKR{
			Status:          StatusActive,
			OverallProgress: 40,
			StartDate:       testNow.Add(-60 * 24 * time.Hour),
			EndDate:         testNow.Add(-24 * time.Hour),
		}
		UpdateOKRStatus(&okr, testNow)
		assert.Equal(t, StatusCompleted, okr.Status)
	})

	t.Run("draft inside window activates", func(t *testing.T) {
		okr := window(StatusDraft)
		UpdateOKRStatus(&okr, testNow)
		assert.Equal(t, StatusActive, okr.Status)
	})

	t.Run("draft before window stays draft", func(t *testing.T) {
		okr := OKR{
			Status:    StatusDraft,
			StartDate: testNow.Add(24 * time.Hour),
			EndDate:   testNow.Add(90 * 24 * time.Hour),
		}
		UpdateOKRStatus(&okr, testNow)
		assert.Equal(t, StatusDraft, okr.Status)
	})

	t.Run("paused is left alone", func(t *testing.T) {
		okr := window(StatusPaused)
		okr.OverallProgress = 60
		UpdateOKRStatus(&okr, testNow)
		assert.Equal(t, StatusPaused, okr.Status)
	})

	t.Run("draft past end date stays draft", func(t *testing.T) {
		okr := OKR{
			Status:          StatusDraft,
			OverallProgress: 10,
			StartDate:       testNow.Add(-90 * 24 * time.Hour),
			EndDate:         testNow.Add(-30 * 24 * time.Hour),
		}
		UpdateOKRStatus(&okr, testNow)
		assert.Equal(t, StatusDraft, okr.Status)
	})
}
