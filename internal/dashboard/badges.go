package dashboard

// CSS classes for record badges. Unknown values get the neutral class.
const neutralClass = "tone-gray"

var typeClasses = map[string]string{
	"email":   "tone-blue",
	"search":  "tone-purple",
	"file":    "tone-green",
	"message": "tone-cyan",
	"cron":    "tone-orange",
	"system":  "tone-gray",
	"api":     "tone-pink",
}

var statusClasses = map[string]string{
	StatusCompleted:   "status-completed",
	StatusPending:     "status-pending",
	StatusFailed:      "status-failed",
	ClaimVerified:     "status-verified",
	ClaimDisputed:     "status-disputed",
	ClaimUnverifiable: "status-unverifiable",
}

var categoryClasses = map[string]string{
	"statistic":   "tone-blue",
	"date":        "tone-purple",
	"quote":       "tone-cyan",
	"event":       "tone-orange",
	"attribution": "tone-pink",
	"other":       "tone-gray",
}

// TypeBadgeClass returns the badge class for an activity type.
func TypeBadgeClass(activityType string) string {
	return lookupClass(typeClasses, activityType, neutralClass)
}

// StatusClass returns the class for an activity or claim status.
func StatusClass(status string) string {
	return lookupClass(statusClasses, status, "status-unknown")
}

// CategoryBadgeClass returns the badge class for a claim category.
func CategoryBadgeClass(category string) string {
	return lookupClass(categoryClasses, category, neutralClass)
}

// StatusIcon returns the glyph shown next to an activity or claim status.
func StatusIcon(status string) string {
	switch status {
	case StatusCompleted, ClaimVerified:
		return "✓"
	case StatusFailed, ClaimDisputed:
		return "✗"
	case StatusPending:
		return "…"
	case ClaimUnverifiable:
		return "?"
	default:
		return "•"
	}
}

func lookupClass(classes map[string]string, key, fallback string) string {
	if c, ok := classes[key]; ok {
		return c
	}
	return fallback
}
