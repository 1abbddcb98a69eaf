package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockpilot/inventory-api/internal/config"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/upload"
)

type ImageHandler struct {
	gateway *upload.Gateway
	config  *config.Config
}

func NewImageHandler(gateway *upload.Gateway, cfg *config.Config) *ImageHandler {
	return &ImageHandler{gateway: gateway, config: cfg}
}

// Upload is the API endpoint: plain-text URL body, 2MB default ceiling.
func (h *ImageHandler) Upload(c *gin.Context) {
	url, ok := h.store(c, h.config.ImageMaxBytesAPI)
	if !ok {
		return
	}
	c.String(http.StatusOK, url)
}

// UploadWeb answers the AJAX form: JSON body, 5MB default ceiling.
func (h *ImageHandler) UploadWeb(c *gin.Context) {
	url, ok := h.store(c, h.config.ImageMaxBytesWeb)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *ImageHandler) store(c *gin.Context, maxBytes int64) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		ve := httperr.NewValidation()
		ve.Add("image", "The image field is required.")
		httperr.Unprocessable(c, ve)
		return "", false
	}

	url, err := h.gateway.Upload(c.Request.Context(), fh, maxBytes)
	if err != nil {
		if ve, ok := httperr.AsValidation(err); ok {
			httperr.Unprocessable(c, ve)
			return "", false
		}
		// upstream failure, surface the asset host's message
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return "", false
	}

	return url, true
}
