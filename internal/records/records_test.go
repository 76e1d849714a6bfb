package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/jwbeauty-studio/internal/observability/metrics"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

var sampleRecord = Record{
	Timestamp: "1/6/2024, 10:15:00 am",
	Name:      "Amy Tan",
	Phone:     "91234567",
	Service:   "Power Lift HIFU",
	Date:      "2024-06-01",
	Time:      "morning",
}

func testLogger(buf *bytes.Buffer) *logging.Logger {
	return logging.NewWithWriter("debug", "json", buf)
}

type fakeSink struct {
	name    string
	err     error
	release chan struct{}

	mu      sync.Mutex
	records []Record
	ctxErr  error
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(ctx context.Context, _ string, rec Record) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	f.ctxErr = ctx.Err()
	return f.err
}

func (f *fakeSink) written() []Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Record(nil), f.records...)
}

type fakeNotifier struct {
	mu       sync.Mutex
	failures []Failure
	err      error
}

func (n *fakeNotifier) NotifyRecordFailure(_ context.Context, f Failure) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, f)
	return n.err
}

func TestSheetWebhookPostsPlainTextJSON(t *testing.T) {
	var (
		gotCT   string
		gotBody Record
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotCT = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte("ignored"))
	}))
	defer srv.Close()

	sink, err := NewSheetWebhook(srv.URL, srv.Client())
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), "sub-1", sampleRecord))

	assert.Equal(t, "text/plain;charset=utf-8", gotCT)
	assert.Equal(t, sampleRecord, gotBody)
}

func TestSheetWebhookErrors(t *testing.T) {
	_, err := NewSheetWebhook("  ", nil)
	assert.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	sink, err := NewSheetWebhook(srv.URL, srv.Client())
	require.NoError(t, err)
	assert.ErrorContains(t, sink.Write(context.Background(), "sub-1", sampleRecord), "500")

	srv.Close()
	assert.Error(t, sink.Write(context.Background(), "sub-1", sampleRecord))
}

type mockS3Client struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = input
	m.body, _ = io.ReadAll(input.Body)
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3ArchiveWritesObject(t *testing.T) {
	client := &mockS3Client{}
	archive, err := NewS3Archive(client, "jw-records", "bookings")
	require.NoError(t, err)

	require.NoError(t, archive.Write(context.Background(), "sub-1", sampleRecord))
	assert.Equal(t, "jw-records", aws.ToString(client.input.Bucket))
	assert.Equal(t, "bookings/2024-06-01/sub-1.json", aws.ToString(client.input.Key))
	assert.Equal(t, "application/json", aws.ToString(client.input.ContentType))

	var got Record
	require.NoError(t, json.Unmarshal(client.body, &got))
	assert.Equal(t, sampleRecord, got)
}

func TestS3ArchiveValidation(t *testing.T) {
	_, err := NewS3Archive(nil, "bucket", "")
	assert.Error(t, err)
	_, err = NewS3Archive(&mockS3Client{}, "", "")
	assert.Error(t, err)

	archive, err := NewS3Archive(&mockS3Client{err: errors.New("denied")}, "bucket", "")
	require.NoError(t, err)
	assert.Equal(t, "undated/x.json", archive.Key("x", Record{}))
	assert.Error(t, archive.Write(context.Background(), "", sampleRecord))
	assert.ErrorContains(t, archive.Write(context.Background(), "x", sampleRecord), "denied")
}

func TestDispatchDoesNotWaitForSinks(t *testing.T) {
	slow := &fakeSink{name: "slow", release: make(chan struct{})}
	d := NewDispatcher([]Sink{slow}, testLogger(&bytes.Buffer{}))

	done := make(chan struct{})
	go func() {
		d.Dispatch(context.Background(), "sub-1", sampleRecord)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a slow sink")
	}
	assert.Empty(t, slow.written())

	close(slow.release)
	d.Wait()
	assert.Equal(t, []Record{sampleRecord}, slow.written())
}

func TestDispatchSurvivesRequestCancellation(t *testing.T) {
	sink := &fakeSink{name: "sheet", release: make(chan struct{})}
	d := NewDispatcher([]Sink{sink}, testLogger(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, "sub-1", sampleRecord)
	cancel()
	close(sink.release)
	d.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.NoError(t, sink.ctxErr)
	assert.Len(t, sink.records, 1)
}

func TestDispatchFailureIsLoggedCountedAndNotified(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	m := metrics.NewRecordMetrics(reg)
	notifier := &fakeNotifier{err: errors.New("smtp down")}

	failing := &fakeSink{name: "sheet", err: errors.New("connection refused")}
	ok := &fakeSink{name: "s3"}
	d := NewDispatcher([]Sink{failing, nil, ok}, testLogger(&buf),
		WithMetrics(m), WithFailureNotifier(notifier), WithTimeout(time.Second))
	assert.Equal(t, []string{"sheet", "s3"}, d.Sinks())

	d.Dispatch(context.Background(), "sub-1", sampleRecord)
	d.Wait()

	assert.Len(t, ok.written(), 1)
	require.Len(t, notifier.failures, 1)
	assert.Equal(t, "sheet", notifier.failures[0].Sink)
	assert.Equal(t, "sub-1", notifier.failures[0].SubmissionID)
	assert.EqualError(t, notifier.failures[0].Err, "connection refused")

	out := buf.String()
	assert.Contains(t, out, "record write failed")
	assert.Contains(t, out, "record failure alert failed")
	assert.NotContains(t, out, "Amy Tan")
	assert.NotContains(t, out, "91234567")

	series, err := testutil.GatherAndCount(reg, "jwbeauty_records_writes_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func TestDispatchWithoutSinksIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(context.Background(), "x", sampleRecord)
	d.Wait()

	empty := NewDispatcher(nil, nil)
	empty.Dispatch(context.Background(), "x", sampleRecord)
	empty.Wait()
}
