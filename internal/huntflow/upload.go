package huntflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	uploadFormField    = "file"
	defaultContentType = "application/octet-stream"
)

var uploadContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/msword",
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadedFile is the answer of the upload endpoint with server side parsing enabled.
type UploadedFile struct {
	ID          int           `json:"id"`
	URL         string        `json:"url"`
	Name        string        `json:"name"`
	ContentType string        `json:"content_type"`
	Text        string        `json:"text"`
	Photo       *UploadedFile `json:"photo"`
	Fields      *ParsedFields `json:"fields"`
}

// ParsedFields are the contact and profile fields extracted from a resume.
type ParsedFields struct {
	Name       *ParsedName  `json:"name"`
	Email      string       `json:"email"`
	Phones     []string     `json:"phones"`
	Skype      string       `json:"skype"`
	Telegram   string       `json:"telegram"`
	Position   string       `json:"position"`
	Birthdate  *Birthdate   `json:"birthdate"`
	Experience []Experience `json:"experience"`
}

type ParsedName struct {
	First  string `json:"first"`
	Last   string `json:"last"`
	Middle string `json:"middle"`
}

// Birthdate parts are independent: a resume may only state the year.
type Birthdate struct {
	Day       *int   `json:"day"`
	Month     *int   `json:"month"`
	Year      *int   `json:"year"`
	Precision string `json:"precision"`
}

type Experience struct {
	Position string `json:"position"`
	Company  string `json:"company"`
}

// UploadFile uploads a local file and asks the server to parse it.
// A missing file is not an error: nil is returned and nothing is sent.
func (c *Client) UploadFile(ctx context.Context, localPath, displayName string) (*UploadedFile, error) {
	if strings.TrimSpace(localPath) == "" {
		return nil, nil
	}

	exists, err := afero.Exists(c.FS, localPath)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", localPath, err)
	}

	if !exists {
		c.logger.Debug("file to upload does not exist", zap.String("path", localPath))
		return nil, nil
	}

	url, err := c.accountURL("/upload")
	if err != nil {
		return nil, err
	}

	file, err := c.FS.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer file.Close()

	ext := filepath.Ext(localPath)

	var b bytes.Buffer
	formType, err := writeUploadBody(&b, file, displayName+ext, ContentTypeFor(ext))
	if err != nil {
		return nil, fmt.Errorf("preparing upload of %s: %w", localPath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", formType)
	req.Header.Set("X-File-Parse", "true")

	var uploaded UploadedFile
	if err := c.do(req, &uploaded); err != nil {
		return nil, err
	}

	return &uploaded, nil
}

// ContentTypeFor maps a resume file extension to the content type sent on upload.
func ContentTypeFor(ext string) string {
	if ct, ok := uploadContentTypes[strings.ToLower(ext)]; ok {
		return ct
	}

	return defaultContentType
}

// writeUploadBody writes a multipart form with a single file part and returns its content type.
func writeUploadBody(dst io.Writer, src io.Reader, filename, contentType string) (string, error) {
	w := multipart.NewWriter(dst)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		uploadFormField, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(part, src); err != nil {
		return "", err
	}

	// Close writes the final boundary, without it the form is truncated.
	if err := w.Close(); err != nil {
		return "", err
	}

	return w.FormDataContentType(), nil
}
