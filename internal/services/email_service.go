package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"go.uber.org/zap"
)

// EmailMessage is one outbound email with an optional PDF attachment.
type EmailMessage struct {
	To             string
	Subject        string
	HTML           string
	Attachment     []byte
	AttachmentName string
}

// EmailSender delivers an email. The boolean reports whether delivery was
// accepted; a non-nil error means the sender itself failed rather than
// declined.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (bool, error)
}

// DisabledEmailSender is used when outbound email is turned off. It logs the
// message and reports it as delivered so local runs do not surface degraded
// submissions.
type DisabledEmailSender struct {
	logger *zap.Logger
}

// NewDisabledEmailSender creates an email sender that only logs.
func NewDisabledEmailSender(logger *zap.Logger) *DisabledEmailSender {
	return &DisabledEmailSender{logger: logger}
}

// Send logs the message instead of delivering it.
func (s *DisabledEmailSender) Send(ctx context.Context, msg EmailMessage) (bool, error) {
	s.logger.Info("email sending disabled, skipping delivery",
		zap.String("to", observability.MaskEmail(msg.To)),
		zap.String("subject", msg.Subject),
		zap.Int("attachment_bytes", len(msg.Attachment)))
	return true, nil
}

// SESEmailSender delivers email through AWS SES.
type SESEmailSender struct {
	client *ses.Client
	from   string
	logger *zap.Logger
}

// NewSESEmailSender creates an SES-backed email sender.
func NewSESEmailSender(ctx context.Context, logger *zap.Logger) (*SESEmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.AppConfig.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESEmailSender{
		client: ses.NewFromConfig(cfg),
		from:   config.AppConfig.EmailFrom,
		logger: logger,
	}, nil
}

// Send delivers the message, using a raw MIME payload when an attachment is
// present.
func (s *SESEmailSender) Send(ctx context.Context, msg EmailMessage) (bool, error) {
	if len(msg.Attachment) == 0 {
		return s.sendSimple(ctx, msg)
	}
	return s.sendWithAttachment(ctx, msg)
}

func (s *SESEmailSender) sendSimple(ctx context.Context, msg EmailMessage) (bool, error) {
	input := &ses.SendEmailInput{
		Source: &s.from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &msg.Subject},
			Body: &types.Body{
				Html: &types.Content{Data: &msg.HTML},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Warn("SES send failed",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return false, err
	}
	return true, nil
}

func (s *SESEmailSender) sendWithAttachment(ctx context.Context, msg EmailMessage) (bool, error) {
	raw, err := buildRawMessage(s.from, msg)
	if err != nil {
		return false, fmt.Errorf("failed to build raw email: %w", err)
	}

	input := &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: raw},
		Source:       &s.from,
		Destinations: []string{msg.To},
	}

	_, err = s.client.SendRawEmail(ctx, input)
	if err != nil {
		s.logger.Warn("SES raw send failed",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return false, err
	}
	return true, nil
}

// buildRawMessage assembles a multipart MIME message with an HTML body and
// one application/pdf attachment.
func buildRawMessage(from string, msg EmailMessage) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=UTF-8")
	htmlPart, err := writer.CreatePart(htmlHeader)
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(msg.HTML)); err != nil {
		return nil, err
	}

	attachmentHeader := textproto.MIMEHeader{}
	attachmentHeader.Set("Content-Type", "application/pdf")
	attachmentHeader.Set("Content-Transfer-Encoding", "base64")
	attachmentHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", msg.AttachmentName))
	attachmentPart, err := writer.CreatePart(attachmentHeader)
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(msg.Attachment)))
	base64.StdEncoding.Encode(encoded, msg.Attachment)
	if _, err := attachmentPart.Write(encoded); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
