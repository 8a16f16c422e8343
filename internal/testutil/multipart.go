package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// Upload is one file part of a multipart body.
type Upload struct {
	Name    string
	Content []byte
}

var (
	PNG  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	JPEG = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 32)...)
)

// MultipartBody encodes fields and uploads, the uploads all under fileField.
func MultipartBody(t *testing.T, fields map[string]string, fileField string, uploads []Upload) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, u := range uploads {
		part, err := w.CreateFormFile(fileField, u.Name)
		require.NoError(t, err)
		_, err = part.Write(u.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// FileHeaders parses uploads back into the headers a server would see.
func FileHeaders(t *testing.T, uploads ...Upload) []*multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, nil, "images", uploads)
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

func DoMultipart(t *testing.T, e *echo.Echo, path string, fields map[string]string, uploads []Upload, auth string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := MultipartBody(t, fields, "images", uploads)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
