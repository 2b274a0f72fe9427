// Package schedule classifies wall-clock time against the NFL game calendar
// and maps the resulting phase to a polling interval.
//
// The classifier is a pure function of time, week number, and season type.
// It carries no state beyond its configured rule table and performs no I/O,
// which keeps the polling cadence decision fully testable with fixed
// timestamps.
package schedule
