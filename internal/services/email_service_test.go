package services

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRawMessage(t *testing.T) {
	attachment := []byte("%PDF-1.4 fake report")
	raw, err := buildRawMessage("lettings@example.co.uk", EmailMessage{
		To:             "jane@example.co.uk",
		Subject:        "Your tenancy application has been received",
		HTML:           "<p>Thank you</p>",
		Attachment:     attachment,
		AttachmentName: "tenancy-application.pdf",
	})
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "lettings@example.co.uk", parsed.Header.Get("From"))
	assert.Equal(t, "jane@example.co.uk", parsed.Header.Get("To"))
	assert.Equal(t, "Your tenancy application has been received", parsed.Header.Get("Subject"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])

	htmlPart, err := reader.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(htmlPart.Header.Get("Content-Type"), "text/html"))
	body, err := io.ReadAll(htmlPart)
	require.NoError(t, err)
	assert.Equal(t, "<p>Thank you</p>", string(body))

	pdfPart, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdfPart.Header.Get("Content-Type"))
	assert.Contains(t, pdfPart.Header.Get("Content-Disposition"), `filename="tenancy-application.pdf"`)
	encoded, err := io.ReadAll(pdfPart)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(string(encoded))
	require.NoError(t, err)
	assert.Equal(t, attachment, decoded)

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err, "exactly two parts expected")
}
