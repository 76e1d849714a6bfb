package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

func quietLogger() *logging.Logger {
	return logging.NewWithWriter("error", "json", &bytes.Buffer{})
}

type fakeSendGrid struct {
	sent   *mail.SGMailV3
	status int
	err    error
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = email
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewSendGridSender(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{FromEmail: "studio@example.com"}, nil))

	sender := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "studio@example.com"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, DefaultFromName, sender.fromName)

	sender = NewSendGridSender(SendGridConfig{APIKey: "key", FromName: "Front Desk"}, nil)
	assert.Equal(t, "Front Desk", sender.fromName)
}

func TestSendGridSenderSend(t *testing.T) {
	client := &fakeSendGrid{status: 202}
	sender := &SendGridSender{client: client, fromEmail: "studio@example.com", fromName: DefaultFromName, logger: quietLogger()}

	err := sender.Send(context.Background(), EmailMessage{To: "staff@example.com", Subject: "Hi", Body: "plain"})
	require.NoError(t, err)
	require.NotNil(t, client.sent)
	assert.Equal(t, "Hi", client.sent.Subject)
	assert.Equal(t, "studio@example.com", client.sent.From.Address)

	client.status = 401
	assert.ErrorContains(t, sender.Send(context.Background(), EmailMessage{To: "x@example.com"}), "401")

	client.err = errors.New("timeout")
	assert.ErrorContains(t, sender.Send(context.Background(), EmailMessage{To: "x@example.com"}), "timeout")
}

func TestSendGridSenderNotConfigured(t *testing.T) {
	var sender *SendGridSender
	assert.Error(t, sender.Send(context.Background(), EmailMessage{}))
	assert.Error(t, (&SendGridSender{}).Send(context.Background(), EmailMessage{}))
}

func TestSESSenderSend(t *testing.T) {
	assert.Nil(t, NewSESSender(nil, SESConfig{}, nil))

	client := &fakeSES{}
	sender := NewSESSender(client, SESConfig{FromEmail: "studio@example.com"}, quietLogger())
	require.NotNil(t, sender)

	err := sender.Send(context.Background(), EmailMessage{To: "staff@example.com", Subject: "Alert", Body: "text", HTML: "<p>text</p>"})
	require.NoError(t, err)
	assert.Equal(t, "JW Beauty Studio <studio@example.com>", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"staff@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "text", aws.ToString(client.input.Content.Simple.Body.Text.Data))
	assert.Equal(t, "<p>text</p>", aws.ToString(client.input.Content.Simple.Body.Html.Data))

	client.err = errors.New("throttled")
	assert.ErrorContains(t, sender.Send(context.Background(), EmailMessage{To: "staff@example.com"}), "throttled")
}

func TestStubEmailSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewStubEmailSender(logging.NewWithWriter("info", "json", &buf))
	require.NoError(t, sender.Send(context.Background(), EmailMessage{To: "staff@example.com", Subject: "Hello"}))
	assert.Contains(t, buf.String(), "would send email")
}
