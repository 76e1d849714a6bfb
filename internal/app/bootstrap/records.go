package bootstrap

import (
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/jwbeauty-studio/internal/config"
	"github.com/wolfman30/jwbeauty-studio/internal/notify"
	"github.com/wolfman30/jwbeauty-studio/internal/observability/metrics"
	"github.com/wolfman30/jwbeauty-studio/internal/records"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// BuildEmailSender picks SendGrid, then SES, then the logging stub outside
// production. It returns nil when no sender applies.
func BuildEmailSender(cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		return sg
	}
	if strings.TrimSpace(cfg.SESFromEmail) != "" {
		if ses := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); ses != nil {
			return ses
		}
	}
	if cfg.Env != "production" {
		return notify.NewStubEmailSender(logger)
	}
	return nil
}

// RecordHTTPClient is the client the spreadsheet webhook posts with. It has
// no deadline of its own unless SHEET_WEBHOOK_TIMEOUT is set.
func RecordHTTPClient(cfg *appconfig.Config) *http.Client {
	return &http.Client{Timeout: cfg.SheetWebhookTimeout}
}

// BuildRecordSinks returns the spreadsheet webhook and S3 archive sinks that
// are configured.
func BuildRecordSinks(cfg *appconfig.Config, awsCfg aws.Config, httpClient *http.Client, logger *logging.Logger) []records.Sink {
	if logger == nil {
		logger = logging.Default()
	}
	var sinks []records.Sink
	if sheet, err := records.NewSheetWebhook(cfg.SheetWebhookURL, httpClient); err == nil {
		sinks = append(sinks, sheet)
	} else {
		logger.Warn("spreadsheet webhook not configured; bookings will not be recorded there")
	}
	if strings.TrimSpace(cfg.RecordArchiveBucket) != "" {
		archive, err := records.NewS3Archive(s3.NewFromConfig(awsCfg), cfg.RecordArchiveBucket, cfg.RecordArchivePrefix)
		if err != nil {
			logger.Warn("record archive disabled", "error", err)
		} else {
			sinks = append(sinks, archive)
		}
	}
	return sinks
}

// BuildDispatcher wires the record sinks, their metrics and the staff alert
// on failure.
func BuildDispatcher(cfg *appconfig.Config, sinks []records.Sink, email notify.EmailSender, m *metrics.RecordMetrics, logger *logging.Logger) *records.Dispatcher {
	opts := []records.DispatcherOption{records.WithMetrics(m)}
	if cfg.SheetWebhookTimeout > 0 {
		opts = append(opts, records.WithTimeout(cfg.SheetWebhookTimeout))
	}
	if alerts := notify.NewService(email, cfg.StaffAlertEmail, cfg.StudioName, logger); alerts != nil {
		opts = append(opts, records.WithFailureNotifier(alerts))
	}
	return records.NewDispatcher(sinks, logger, opts...)
}
