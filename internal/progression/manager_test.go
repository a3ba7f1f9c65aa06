package progression

import (
	"testing"
	"time"

	"progress-service/internal/models"
)

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestStatusForScore(t *testing.T) {
	m := NewManager(nil)

	cases := []struct {
		score int
		want  models.ProgressStatus
	}{
		{100, models.StatusMastered},
		{95, models.StatusMastered},
		{90, models.StatusMastered},
		{89, models.StatusCompleted},
		{70, models.StatusCompleted},
		{69, models.StatusInProgress},
		{0, models.StatusInProgress},
	}

	for _, tc := range cases {
		if got := m.StatusForScore(tc.score); got != tc.want {
			t.Errorf("StatusForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestFirstCompletionMastered(t *testing.T) {
	m := NewManager(nil)

	record := m.ApplyCompletion(nil, "learner-1", "lesson-1", 95, 120, now)

	if record.Status != models.StatusMastered {
		t.Errorf("status = %s, want mastered", record.Status)
	}
	if record.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", record.Attempts)
	}
	if record.CompletedAt == nil {
		t.Error("completed_at should be set on mastery")
	}
	if record.Score == nil || *record.Score != 95 {
		t.Errorf("score = %v, want 95", record.Score)
	}
}

func TestWeakerRetryNeverDowngrades(t *testing.T) {
	m := NewManager(nil)

	record := m.ApplyCompletion(nil, "learner-1", "lesson-1", 92, 100, now)
	record = m.ApplyCompletion(record, "learner-1", "lesson-1", 40, 80, now.Add(time.Hour))

	if record.Status != models.StatusMastered {
		t.Errorf("status after weak retry = %s, want mastered", record.Status)
	}
	if record.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", record.Attempts)
	}
	if record.Score == nil || *record.Score != 92 {
		t.Errorf("best score = %v, want 92", record.Score)
	}
	if record.CompletedAt == nil {
		t.Error("completed_at must survive a weaker retry")
	}
}

func TestUpgradePathStampsCompletedAt(t *testing.T) {
	m := NewManager(nil)

	record := m.ApplyCompletion(nil, "learner-1", "lesson-1", 50, 60, now)
	if record.Status != models.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", record.Status)
	}
	if record.CompletedAt != nil {
		t.Error("completed_at must stay unset while in progress")
	}

	later := now.Add(2 * time.Hour)
	record = m.ApplyCompletion(record, "learner-1", "lesson-1", 75, 90, later)
	if record.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", record.Status)
	}
	if record.CompletedAt == nil || !record.CompletedAt.Equal(later) {
		t.Errorf("completed_at = %v, want %v", record.CompletedAt, later)
	}

	// Re-entering a terminal tier refreshes the stamp.
	latest := later.Add(24 * time.Hour)
	record = m.ApplyCompletion(record, "learner-1", "lesson-1", 91, 90, latest)
	if record.Status != models.StatusMastered {
		t.Fatalf("status = %s, want mastered", record.Status)
	}
	if record.CompletedAt == nil || !record.CompletedAt.Equal(latest) {
		t.Errorf("completed_at = %v, want refreshed to %v", record.CompletedAt, latest)
	}
}

func TestStartDoesNotCountAttempts(t *testing.T) {
	m := NewManager(nil)

	record := m.Start(nil, "learner-1", "lesson-1", now)
	if record.Status != models.StatusInProgress {
		t.Errorf("status = %s, want in_progress", record.Status)
	}
	if record.Attempts != 0 {
		t.Errorf("attempts = %d, want 0 (navigation is not an attempt)", record.Attempts)
	}

	later := now.Add(time.Hour)
	record = m.Start(record, "learner-1", "lesson-1", later)
	if record.Attempts != 0 {
		t.Errorf("attempts after revisit = %d, want 0", record.Attempts)
	}
	if !record.LastAccessedAt.Equal(later) {
		t.Errorf("last_accessed_at = %v, want %v", record.LastAccessedAt, later)
	}
}

func TestTimeSpentAccumulates(t *testing.T) {
	m := NewManager(nil)

	record := m.ApplyCompletion(nil, "learner-1", "lesson-1", 80, 300, now)
	record = m.ApplyCompletion(record, "learner-1", "lesson-1", 85, 240, now.Add(time.Hour))

	if record.TimeSpentSeconds != 540 {
		t.Errorf("time spent = %d, want 540", record.TimeSpentSeconds)
	}
}

func TestResetIsTheOnlyDowngrade(t *testing.T) {
	m := NewManager(nil)

	record := m.ApplyCompletion(nil, "learner-1", "lesson-1", 95, 100, now)
	record = m.Reset(record, now.Add(time.Hour))

	if record.Status != models.StatusInProgress {
		t.Errorf("status after reset = %s, want in_progress", record.Status)
	}
	if record.Score != nil || record.CompletedAt != nil {
		t.Error("reset should clear score and completed_at")
	}
	if record.Attempts != 1 {
		t.Errorf("attempts = %d, want attempt history preserved", record.Attempts)
	}
}
