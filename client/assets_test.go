package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	sanitymcp "github.com/Purple-Horizons/sanity-mcp"
	"github.com/Purple-Horizons/sanity-mcp/api"
	"github.com/Purple-Horizons/sanity-mcp/client"
)

func assetEnvelope(t *testing.T, doc api.AssetDocument) []byte {
	t.Helper()
	data, err := json.Marshal(api.AssetResponse{Document: doc})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return data
}

func TestUploadImageStreamsBinary(t *testing.T) {
	var gotPath, gotContentType, gotFilename string
	var gotBody []byte
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotFilename = r.URL.Query().Get("filename")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write(assetEnvelope(t, api.AssetDocument{
			ID:       "image-abc123",
			Type:     "sanity.imageAsset",
			URL:      "https://cdn.example/image-abc123.png",
			Size:     3,
			MimeType: "image/png",
		}))
	}), sanitymcp.Config{Token: "sk"})

	asset, err := cli.UploadImage(context.Background(), strings.NewReader("png"), client.UploadOptions{
		Filename:    "logo.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if gotPath != "/assets/images/production" {
		t.Fatalf("path: %s", gotPath)
	}
	if gotContentType != "image/png" {
		t.Fatalf("content type: %s", gotContentType)
	}
	if gotFilename != "logo.png" {
		t.Fatalf("filename: %s", gotFilename)
	}
	if string(gotBody) != "png" {
		t.Fatalf("body: %q", gotBody)
	}
	if asset.ID != "image-abc123" || asset.Type != "sanity.imageAsset" {
		t.Fatalf("asset: %+v", asset)
	}
}

func TestUploadImageDefaultsContentType(t *testing.T) {
	var gotContentType string
	var hasFilename bool
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, hasFilename = r.URL.Query()["filename"]
		w.Write(assetEnvelope(t, api.AssetDocument{ID: "image-x"}))
	}), sanitymcp.Config{Token: "sk"})

	if _, err := cli.UploadImage(context.Background(), strings.NewReader("raw"), client.UploadOptions{}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if gotContentType != "application/octet-stream" {
		t.Fatalf("content type: %s", gotContentType)
	}
	if hasFilename {
		t.Fatalf("filename should be omitted when unset")
	}
}

func TestUploadImageFailure(t *testing.T) {
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}), sanitymcp.Config{Token: "sk"})

	_, err := cli.UploadImage(context.Background(), strings.NewReader("x"), client.UploadOptions{})
	var merr *client.MutationError
	if !errors.As(err, &merr) {
		t.Fatalf("expected *MutationError, got %v", err)
	}
	if merr.Status != http.StatusRequestEntityTooLarge {
		t.Fatalf("status: %d", merr.Status)
	}
}
