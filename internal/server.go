package internal

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/pixel-expander/internal/raster"
)

const DefaultMaxUploadBytes = 32 << 20

type expandHandler struct {
	cfg            Config
	maxUploadBytes int64
}

// RegisterRoutes mounts the expansion endpoint:
//
//	POST /v1/expand?n=<factor>
//
// The request body is the source image and the response is the expanded
// image, in JPEG when the source was JPEG and PNG otherwise.
func RegisterRoutes(r gin.IRouter, cfg Config, maxUploadBytes int64) {
	h := &expandHandler{cfg: cfg, maxUploadBytes: maxUploadBytes}
	r.POST("/v1/expand", h.expand)
}

func (h *expandHandler) expand(c *gin.Context) {
	cfg := h.cfg
	if n := c.Query("n"); n != "" {
		factor, err := strconv.Atoi(n)
		if err != nil || factor < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid expansion factor %q", n)})
			return
		}
		cfg.Factor = factor
	}

	body := c.Request.Body
	if h.maxUploadBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxUploadBytes)
	}

	img, err := raster.Decode(body, cfg.HeaderCheck())
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || errors.Is(err, raster.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to decode image: %v", err)})
		return
	}

	if err := img.Pipeline(cfg.Pipeline()...); err != nil {
		if errors.Is(err, raster.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error expanding upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	contentType, enc := "image/png", imgio.PNGEncoder()
	if img.Format == "jpeg" {
		contentType, enc = "image/jpeg", imgio.JPEGEncoder(cfg.JpegQuality)
	}

	var buf bytes.Buffer
	if err := img.Encode(&buf, enc); err != nil {
		log.Printf("Error encoding expanded upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, contentType, buf.Bytes())
}
