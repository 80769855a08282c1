package dashboard

import (
	"strings"
	"time"
)

// FilterActivities keeps activities whose action or description contains
// query, ignoring case. An empty query returns the list unchanged.
func FilterActivities(activities []Activity, query string) []Activity {
	if query == "" {
		return activities
	}
	q := strings.ToLower(query)
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if strings.Contains(strings.ToLower(a.Action), q) ||
			strings.Contains(strings.ToLower(a.Description), q) {
			out = append(out, a)
		}
	}
	return out
}

// UpcomingOneTime returns at most limit tasks, in file order. A limit of
// zero or less returns every task.
func UpcomingOneTime(tasks []OneTimeTask, limit int) []OneTimeTask {
	if limit <= 0 || len(tasks) <= limit {
		return tasks
	}
	return tasks[:limit]
}

// FilterClaims keeps claims with the given verification status. "all" and
// the empty string return the list unchanged.
func FilterClaims(claims []Claim, status string) []Claim {
	if status == "" || status == "all" {
		return claims
	}
	out := make([]Claim, 0, len(claims))
	for _, c := range claims {
		if c.Verification.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// ComputeClaimStats counts claims per status. HallucinationRate is the
// share of disputed claims among all claims, as a percentage; it is zero
// for an empty list. LastUpdated is the latest verification time, nil when
// no claim has been verified.
func ComputeClaimStats(claims []Claim) ClaimStats {
	stats := ClaimStats{TotalClaims: len(claims)}

	var latest time.Time
	for _, c := range claims {
		switch c.Verification.Status {
		case ClaimVerified:
			stats.Verified++
		case ClaimDisputed:
			stats.Disputed++
		case ClaimUnverifiable:
			stats.Unverifiable++
		case ClaimPending:
			stats.Pending++
		}
		if t, ok := c.Verification.VerifiedTime(); ok && t.After(latest) {
			latest = t
		}
	}

	if stats.TotalClaims > 0 {
		stats.HallucinationRate = float64(stats.Disputed) / float64(stats.TotalClaims) * 100
	}
	if !latest.IsZero() {
		stats.LastUpdated = &latest
	}
	return stats
}

// Day is one cell of the calendar week strip.
type Day struct {
	Name   string
	Number int
	Today  bool
}

// WeekDays returns the Sunday-to-Saturday week containing now.
func WeekDays(now time.Time) []Day {
	start := now.AddDate(0, 0, -int(now.Weekday()))
	days := make([]Day, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = Day{
			Name:   d.Weekday().String()[:3],
			Number: d.Day(),
			Today:  d.YearDay() == now.YearDay() && d.Year() == now.Year(),
		}
	}
	return days
}
