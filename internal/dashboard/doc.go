// Package dashboard holds the records shown by Mission Control: activity
// entries, scheduled tasks, fact-checked claims and explainers. It loads
// them from a data directory or the bundled defaults, keeps the current
// snapshot behind a Store, and provides the filters the views use.
package dashboard
