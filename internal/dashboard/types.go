package dashboard

import "time"

// Activity types and statuses known to the views. Other values are kept
// and rendered with neutral styling.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Activity is one action taken by the assistant.
type Activity struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// RecurringTask is a cron-like job with a free-text schedule.
type RecurringTask struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	Type     string `json:"type"`
	Source   string `json:"source"`
}

// OneTimeTask is a reminder or job that runs once.
type OneTimeTask struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ScheduledFor time.Time `json:"scheduledFor"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
}

// Schedule is the content of scheduled.json.
type Schedule struct {
	Recurring []RecurringTask `json:"recurring"`
	OneTime   []OneTimeTask   `json:"oneTime"`
}

// Claim verification statuses.
const (
	ClaimVerified     = "verified"
	ClaimDisputed     = "disputed"
	ClaimUnverifiable = "unverifiable"
	ClaimPending      = "pending"
)

// ClaimFilters lists the filter tabs of the fact checker, in display order.
var ClaimFilters = []string{"all", ClaimVerified, ClaimDisputed, ClaimUnverifiable, ClaimPending}

// Claim is a factual statement extracted from a response and checked
// against sources.
type Claim struct {
	ID           string       `json:"id"`
	Claim        string       `json:"claim"`
	Source       ClaimSource  `json:"source"`
	Extraction   Extraction   `json:"extraction"`
	Verification Verification `json:"verification"`
}

// ClaimSource records where a claim came from.
type ClaimSource struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context"`
}

// Extraction holds how worth checking a claim is and what kind it is.
type Extraction struct {
	Checkworthiness float64 `json:"checkworthiness"`
	Category        string  `json:"category"`
}

// Verification is the outcome of checking a claim. VerifiedAt is empty
// while the claim is pending.
type Verification struct {
	Status      string        `json:"status"`
	Confidence  float64       `json:"confidence"`
	Sources     []SourceCheck `json:"sources"`
	Explanation string        `json:"explanation"`
	VerifiedAt  string        `json:"verifiedAt"`
}

// VerifiedTime parses VerifiedAt as RFC 3339.
func (v Verification) VerifiedTime() (time.Time, bool) {
	if v.VerifiedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v.VerifiedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SourceCheck is one source consulted during verification.
type SourceCheck struct {
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
	Agrees  bool   `json:"agrees"`
}

// ClaimStats summarizes a claim list for the fact checker cards.
type ClaimStats struct {
	TotalClaims       int        `json:"totalClaims"`
	Verified          int        `json:"verified"`
	Disputed          int        `json:"disputed"`
	Unverifiable      int        `json:"unverifiable"`
	Pending           int        `json:"pending"`
	HallucinationRate float64    `json:"hallucinationRate"`
	LastUpdated       *time.Time `json:"lastUpdated"`
}

// Explainer is a titled Markdown document. Content is the raw Markdown
// body that follows the front matter.
type Explainer struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"-"`
	Content     string `json:"-"`
}

// Dataset is one consistent snapshot of everything the dashboard shows.
type Dataset struct {
	Activities []Activity
	Schedule   Schedule
	Claims     []Claim
	Explainers []Explainer
	LoadedAt   time.Time
}
