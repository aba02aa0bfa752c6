package handler

import (
	"bytes"
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/service"
)

type OCRHandler struct {
	ocrService *service.OCRService
}

func NewOCRHandler(ocrService *service.OCRService) *OCRHandler {
	return &OCRHandler{
		ocrService: ocrService,
	}
}

// Extract handles the POST /ocr/extract endpoint. The image arrives
// either as a multipart upload under "file" or as a JSON {base64} body.
func (h *OCRHandler) Extract(c *gin.Context) {
	log.Println("Received OCR extraction request")

	if !h.ocrService.Ready() {
		sendError(c, http.StatusInternalServerError, "Missing GOOGLE_VISION_API_KEY", nil)
		return
	}

	data, isPDF, ok := h.readPayload(c)
	if !ok {
		return
	}

	var (
		resp *dto.OCRResponse
		err  error
	)
	if isPDF {
		resp, err = h.ocrService.ExtractFromPDF(data)
	} else {
		resp, err = h.ocrService.ExtractFromImage(data)
	}

	if err != nil {
		if pe, ok := providerError(err); ok {
			sendError(c, http.StatusBadGateway, pe.Details, pe)
			return
		}
		sendError(c, http.StatusInternalServerError, "OCR extraction failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// readPayload pulls the image bytes out of the request. On failure it
// writes the error response itself and returns ok=false.
func (h *OCRHandler) readPayload(c *gin.Context) (data []byte, isPDF bool, ok bool) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			sendError(c, http.StatusInternalServerError, "Failed to open uploaded file", err)
			return nil, false, false
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			sendError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
			return nil, false, false
		}

		isPDF = looksLikePDF(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		return data, isPDF, true
	}

	var req dto.OCRRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Base64 == "" {
		sendError(c, http.StatusBadRequest, "Provide multipart file or { base64 }", nil)
		return nil, false, false
	}

	encoded := req.Base64
	// Tolerate data URLs pasted straight from the browser
	if idx := strings.Index(encoded, ","); idx != -1 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid base64 payload", err)
		return nil, false, false
	}

	return data, looksLikePDF(data, "", ""), true
}

func looksLikePDF(data []byte, filename, contentType string) bool {
	if strings.Contains(contentType, "application/pdf") {
		return true
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
