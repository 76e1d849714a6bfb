package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wolfman30/jwbeauty-studio/internal/records"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// Service e-mails studio staff about problems visitors never see.
type Service struct {
	email   EmailSender
	staffTo string
	studio  string
	logger  *logging.Logger
}

// NewService returns nil when there is no sender or no staff address, so
// callers can wire it unconditionally.
func NewService(email EmailSender, staffTo, studioName string, logger *logging.Logger) *Service {
	staffTo = strings.TrimSpace(staffTo)
	if email == nil || staffTo == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if studioName == "" {
		studioName = DefaultFromName
	}
	return &Service{email: email, staffTo: staffTo, studio: studioName, logger: logger}
}

// NotifyRecordFailure tells staff that a booking request did not reach a
// record-keeping sink. The visitor's phone number is left out of the mail.
func (s *Service) NotifyRecordFailure(ctx context.Context, f records.Failure) error {
	if s == nil {
		return errors.New("notify: service not configured")
	}
	subject := fmt.Sprintf("[%s] Booking request not recorded (%s)", s.studio, f.Sink)
	var b strings.Builder
	fmt.Fprintf(&b, "A booking request could not be written to the %s record store.\n\n", f.Sink)
	fmt.Fprintf(&b, "Submission: %s\n", f.SubmissionID)
	fmt.Fprintf(&b, "Submitted: %s\n", f.Record.Timestamp)
	fmt.Fprintf(&b, "Name: %s\n", f.Record.Name)
	fmt.Fprintf(&b, "Service: %s\n", f.Record.Service)
	fmt.Fprintf(&b, "Preferred date: %s\n", f.Record.Date)
	fmt.Fprintf(&b, "Preferred time: %s\n", f.Record.Time)
	if f.Err != nil {
		fmt.Fprintf(&b, "Error: %v\n", f.Err)
	}
	b.WriteString("\nThe visitor was handed off to WhatsApp as usual; check the chat for the full request.\n")

	if err := s.email.Send(ctx, EmailMessage{To: s.staffTo, Subject: subject, Body: b.String()}); err != nil {
		return fmt.Errorf("notify: record failure alert: %w", err)
	}
	s.logger.Info("record failure alert sent", "submission_id", f.SubmissionID, "sink", f.Sink)
	return nil
}

var _ records.FailureNotifier = (*Service)(nil)
