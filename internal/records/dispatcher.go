package records

import (
	"context"
	"sync"
	"time"

	"github.com/wolfman30/jwbeauty-studio/internal/observability/metrics"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Failure describes a sink write that did not succeed.
type Failure struct {
	SubmissionID string
	Sink         string
	Record       Record
	Err          error
}

// FailureNotifier is told about failed writes, e.g. to alert staff. It is
// never consulted for the visitor-facing outcome.
type FailureNotifier interface {
	NotifyRecordFailure(ctx context.Context, f Failure) error
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTimeout bounds each sink write. Zero means no timeout.
func WithTimeout(d time.Duration) DispatcherOption {
	return func(x *Dispatcher) { x.timeout = d }
}

// WithMetrics records write counts and latency.
func WithMetrics(m *metrics.RecordMetrics) DispatcherOption {
	return func(x *Dispatcher) { x.metrics = m }
}

// WithFailureNotifier forwards failed writes to n.
func WithFailureNotifier(n FailureNotifier) DispatcherOption {
	return func(x *Dispatcher) { x.notifier = n }
}

// Dispatcher fans a record out to every sink. Dispatch is best-effort and
// non-blocking: each write runs in its own goroutine on a context detached
// from the caller, is never retried, and its result is only logged.
type Dispatcher struct {
	sinks    []Sink
	logger   *logging.Logger
	metrics  *metrics.RecordMetrics
	notifier FailureNotifier
	timeout  time.Duration
	tracer   trace.Tracer
	wg       sync.WaitGroup
}

func NewDispatcher(sinks []Sink, logger *logging.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	d := &Dispatcher{
		logger: logger,
		tracer: otel.Tracer("jwbeauty.internal.records"),
	}
	for _, s := range sinks {
		if s != nil {
			d.sinks = append(d.sinks, s)
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Sinks reports the configured sink names.
func (d *Dispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Dispatch starts one detached write per sink and returns immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, submissionID string, rec Record) {
	if d == nil || len(d.sinks) == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	detached := context.WithoutCancel(ctx)
	for _, sink := range d.sinks {
		d.wg.Add(1)
		go func(sink Sink) {
			defer d.wg.Done()
			d.write(detached, sink, submissionID, rec)
		}(sink)
	}
}

func (d *Dispatcher) write(ctx context.Context, sink Sink, submissionID string, rec Record) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	ctx, span := d.tracer.Start(ctx, "records.write",
		trace.WithAttributes(
			attribute.String("records.sink", sink.Name()),
			attribute.String("records.submission_id", submissionID),
		))
	defer span.End()

	start := time.Now()
	err := sink.Write(ctx, submissionID, rec)
	elapsed := time.Since(start).Seconds()
	if err == nil {
		d.metrics.ObserveWrite(sink.Name(), "ok", elapsed)
		d.logger.Debug("record written", "sink", sink.Name(), "submission_id", submissionID)
		return
	}

	span.RecordError(err)
	d.metrics.ObserveWrite(sink.Name(), "error", elapsed)
	// Ignored on purpose: the visitor already saw the optimistic outcome.
	d.logger.Warn("record write failed",
		"sink", sink.Name(),
		"submission_id", submissionID,
		"service", rec.Service,
		"date", rec.Date,
		"time", rec.Time,
		"error", err,
	)
	if d.notifier == nil {
		return
	}
	failure := Failure{SubmissionID: submissionID, Sink: sink.Name(), Record: rec, Err: err}
	if nerr := d.notifier.NotifyRecordFailure(context.WithoutCancel(ctx), failure); nerr != nil {
		d.logger.Error("record failure alert failed", "sink", sink.Name(), "submission_id", submissionID, "error", nerr)
	}
}

// Wait blocks until every write started so far has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
