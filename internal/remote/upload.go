package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/florisys/field.report/internal/security"
)

// UploadSpatialMap attaches a point-cloud scan file to a bed.
func (c *Client) UploadSpatialMap(ctx context.Context, plotID, bedID, filename string, r io.Reader) error {
	url := fmt.Sprintf("%s/plots/%s/beds/%s/spatial-maps", c.base, plotID, bedID)
	return c.uploadFile(ctx, "upload spatial map", url, filename, r, nil)
}

// uploadFile POSTs a single multipart file under the "file" field the
// backend expects.
func (c *Client) uploadFile(ctx context.Context, op, url, filename string, r io.Reader, out any) error {
	name, err := security.SafeFilename(filename)
	if err != nil {
		return &RemoteError{Op: op, URL: url, Err: err}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return &RemoteError{Op: op, URL: url, Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return &RemoteError{Op: op, URL: url, Err: err}
	}
	if err := mw.Close(); err != nil {
		return &RemoteError{Op: op, URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return &RemoteError{Op: op, URL: url, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, op, out)
}
