package client

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

// UploadOptions tunes UploadImage.
type UploadOptions struct {
	// Filename is recorded as the asset's original filename when set.
	Filename string
	// ContentType is sent as the payload media type. Empty defaults to
	// application/octet-stream.
	ContentType string
}

// UploadImage streams an image binary to the asset endpoint and returns the
// created asset document. Requires a token; always uses the direct host.
// A non-success status yields *MutationError.
func (c *Client) UploadImage(ctx context.Context, body io.Reader, opts UploadOptions) (*api.AssetDocument, error) {
	if err := c.requireToken("upload image"); err != nil {
		return nil, err
	}
	contentType := strings.TrimSpace(opts.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	var values url.Values
	if name := strings.TrimSpace(opts.Filename); name != "" {
		values = url.Values{}
		values.Set("filename", name)
	}

	var resp api.AssetResponse
	path := "/assets/images/" + c.cfg.Dataset
	if err := c.postBinary(ctx, c.writeBaseURL(), path, values, body, contentType, &resp, asMutationError); err != nil {
		return nil, err
	}
	return &resp.Document, nil
}
