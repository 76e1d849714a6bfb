// Package records writes booking requests to best-effort record-keeping
// sinks. Nothing in this package reports back to the visitor: the WhatsApp
// message is the authoritative copy of a request.
package records

import "context"

// Record is the row written for every accepted booking submission.
type Record struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// Sink is one record-keeping destination.
type Sink interface {
	Name() string
	Write(ctx context.Context, submissionID string, rec Record) error
}
