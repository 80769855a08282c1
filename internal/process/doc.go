// Package process stops the headless browser launched for PDF export
// together with the helper processes it forks.
package process
