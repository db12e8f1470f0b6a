package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmskit/dmscli/internal/client/models"
)

// UploadDocumentFile attaches a file to an existing document via a multipart
// POST. On success the server returns the document record with its file
// fields filled in; stores reconcile it like an update.
func (g *Gateway) UploadDocumentFile(ctx context.Context, id, filename string, r io.Reader) (models.Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	if err := w.Close(); err != nil {
		return models.Document{}, err
	}

	req, err := g.newRequest(ctx, http.MethodPost, "/documents/"+id+"/upload", &buf, w.FormDataContentType())
	if err != nil {
		return models.Document{}, err
	}

	var out models.Document
	if err := g.do(req, &out); err != nil {
		return models.Document{}, err
	}
	return out, out.Validate()
}
