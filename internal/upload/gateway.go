// Package upload validates incoming image files and forwards them to the
// external asset host, returning the durable URL.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/stockpilot/inventory-api/internal/httperr"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Folder is the fixed storage prefix on the asset host.
const Folder = "storage"

// Store is the asset host contract: persist body under key, return the
// public URL.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type Gateway struct {
	store Store
}

func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload checks the file is an image within maxBytes, then forwards the raw
// bytes to the asset host under the storage folder. No retry, and the
// returned URL is not probed. Validation failures come back as a field
// error on "image"; upstream failures pass through wrapped.
func (g *Gateway) Upload(
	ctx context.Context,
	fh *multipart.FileHeader,
	maxBytes int64,
) (string, error) {

	if fh.Size > maxBytes {
		ve := httperr.NewValidation()
		ve.Add("image", fmt.Sprintf("The image size must be less than %dMB.", maxBytes/(1024*1024)))
		return "", ve
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		ve := httperr.NewValidation()
		ve.Add("image", fmt.Sprintf("The image size must be less than %dMB.", maxBytes/(1024*1024)))
		return "", ve
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		ve := httperr.NewValidation()
		ve.Add("image", "The image field must be an image.")
		return "", ve
	}

	// sniffing alone trusts magic bytes; make sure a registered decoder
	// actually accepts the header
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		ve := httperr.NewValidation()
		ve.Add("image", "The image field must be an image.")
		return "", ve
	}

	ext := extByContentType[contentType]
	key := Folder + "/" + uuid.NewString() + ext

	url, err := g.store.Put(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("asset upload failed: %w", err)
	}

	return url, nil
}
