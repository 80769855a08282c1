package dashboard

import (
	"testing"
	"time"
)

func TestFilterActivities(t *testing.T) {
	t.Parallel()

	activities := []Activity{
		{ID: "1", Action: "Sent Morning Digest", Description: "news roundup"},
		{ID: "2", Action: "Web search", Description: "NIST agent standards"},
		{ID: "3", Action: "Backup", Description: "nightly snapshot"},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"empty query", "", []string{"1", "2", "3"}},
		{"matches action", "digest", []string{"1"}},
		{"matches description", "nist", []string{"2"}},
		{"case-insensitive", "BACKUP", []string{"3"}},
		{"several", "n", []string{"1", "2", "3"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FilterActivities(activities, tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d activities, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestUpcomingOneTime(t *testing.T) {
	t.Parallel()

	tasks := make([]OneTimeTask, 7)
	for i := range tasks {
		tasks[i].ID = string(rune('a' + i))
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"limit five", 5, 5},
		{"limit above length", 10, 7},
		{"no limit", 0, 7},
		{"negative", -1, 7},
	}

	for _, tt := range tests {
		if got := UpcomingOneTime(tasks, tt.limit); len(got) != tt.want {
			t.Errorf("%s: got %d tasks, want %d", tt.name, len(got), tt.want)
		}
	}

	if got := UpcomingOneTime(tasks, 2); got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("order not preserved: %v", got)
	}
}

func claimWith(status, verifiedAt string) Claim {
	return Claim{Verification: Verification{Status: status, VerifiedAt: verifiedAt}}
}

func TestFilterClaims(t *testing.T) {
	t.Parallel()

	claims := []Claim{
		claimWith(ClaimVerified, ""),
		claimWith(ClaimDisputed, ""),
		claimWith(ClaimVerified, ""),
		claimWith(ClaimPending, ""),
	}

	tests := []struct {
		status string
		want   int
	}{
		{"all", 4},
		{"", 4},
		{ClaimVerified, 2},
		{ClaimDisputed, 1},
		{ClaimUnverifiable, 0},
		{ClaimPending, 1},
	}

	for _, tt := range tests {
		if got := FilterClaims(claims, tt.status); len(got) != tt.want {
			t.Errorf("FilterClaims(%q) = %d claims, want %d", tt.status, len(got), tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestComputeClaimStats - Counters, rate and last update
// ---------------------------------------------------------------------------

func TestComputeClaimStats(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		stats := ComputeClaimStats(nil)
		if stats.TotalClaims != 0 || stats.HallucinationRate != 0 || stats.LastUpdated != nil {
			t.Errorf("got %+v, want zero stats", stats)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		t.Parallel()

		claims := []Claim{
			claimWith(ClaimVerified, "2026-02-18T10:00:00Z"),
			claimWith(ClaimDisputed, "2026-02-19T12:30:00Z"),
			claimWith(ClaimUnverifiable, "not a date"),
			claimWith(ClaimPending, ""),
			claimWith("archived", ""),
		}

		stats := ComputeClaimStats(claims)
		if stats.TotalClaims != 5 {
			t.Errorf("TotalClaims = %d, want 5", stats.TotalClaims)
		}
		if stats.Verified != 1 || stats.Disputed != 1 || stats.Unverifiable != 1 || stats.Pending != 1 {
			t.Errorf("counters = %+v", stats)
		}
		if stats.HallucinationRate != 20 {
			t.Errorf("HallucinationRate = %v, want 20", stats.HallucinationRate)
		}
		want := time.Date(2026, 2, 19, 12, 30, 0, 0, time.UTC)
		if stats.LastUpdated == nil || !stats.LastUpdated.Equal(want) {
			t.Errorf("LastUpdated = %v, want %v", stats.LastUpdated, want)
		}
	})
}

func TestWeekDays(t *testing.T) {
	t.Parallel()

	// Thursday
	now := time.Date(2026, time.February, 19, 15, 0, 0, 0, time.UTC)
	days := WeekDays(now)

	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if days[0].Name != "Sun" || days[0].Number != 15 {
		t.Errorf("first day = %+v, want Sun 15", days[0])
	}
	if days[6].Name != "Sat" || days[6].Number != 21 {
		t.Errorf("last day = %+v, want Sat 21", days[6])
	}
	for i, d := range days {
		if d.Today != (i == 4) {
			t.Errorf("days[%d].Today = %v", i, d.Today)
		}
	}
}

func TestWeekDays_AcrossMonths(t *testing.T) {
	t.Parallel()

	// Sunday
	days := WeekDays(time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))
	if days[0].Number != 1 || !days[0].Today {
		t.Errorf("first day = %+v, want today 1", days[0])
	}
	if days[6].Number != 7 {
		t.Errorf("last day = %+v, want 7", days[6])
	}

	// Saturday
	days = WeekDays(time.Date(2026, time.February, 28, 9, 0, 0, 0, time.UTC))
	if days[0].Number != 22 || days[6].Number != 28 || !days[6].Today {
		t.Errorf("week = %+v", days)
	}
}
