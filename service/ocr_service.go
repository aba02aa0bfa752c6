package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/utils"
)

// TextDetector turns image bytes into a plain-text transcription.
// Both the Vision client and the local Tesseract client satisfy it.
type TextDetector interface {
	DetectText(imageData []byte) (string, error)
}

type OCRService struct {
	detector     TextDetector
	pdfProcessor PDFProcessor
	ready        bool
}

func NewOCRService(detector TextDetector, pdfProcessor PDFProcessor, ready bool) *OCRService {
	return &OCRService{
		detector:     detector,
		pdfProcessor: pdfProcessor,
		ready:        ready,
	}
}

// Ready reports whether a usable OCR engine is configured.
func (s *OCRService) Ready() bool {
	return s.ready
}

// ExtractFromImage runs OCR over an uploaded receipt image, parses the
// transcription into the field set and, when the image carries a giro
// payment QR code, attaches the decoded payment number.
func (s *OCRService) ExtractFromImage(imageData []byte) (*dto.OCRResponse, error) {
	text, err := s.detector.DetectText(imageData)
	if err != nil {
		return nil, err
	}

	resp := buildResponse(text)
	resp.PaymentNumber = decodePaymentQR(imageData)
	return resp, nil
}

// ExtractFromPDF handles PDF bills: the embedded text layer when there
// is one, OCR over the page images otherwise.
func (s *OCRService) ExtractFromPDF(pdfData []byte) (*dto.OCRResponse, error) {
	text, err := s.pdfProcessor.ExtractText(pdfData)
	if err != nil {
		log.Printf("PDF text layer extraction failed: %v", err)
	}

	if strings.TrimSpace(text) != "" {
		return buildResponse(text), nil
	}

	images, err := s.pdfProcessor.ExtractPageImages(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
	}

	var parts []string
	paymentNumber := ""
	for _, img := range images {
		encoded, err := encodePNG(img)
		if err != nil {
			continue
		}
		pageText, err := s.detector.DetectText(encoded)
		if err != nil {
			return nil, err
		}
		parts = append(parts, pageText)
		if paymentNumber == "" {
			paymentNumber = decodePaymentQR(encoded)
		}
	}

	resp := buildResponse(strings.Join(parts, "\n"))
	resp.PaymentNumber = paymentNumber
	return resp, nil
}

func buildResponse(text string) *dto.OCRResponse {
	fields := utils.ExtractReceiptFields(text)
	return &dto.OCRResponse{
		Text:        text,
		Amount:      fields.Amount,
		DueDate:     fields.DueDate,
		StationName: fields.StationName,
	}
}

// decodePaymentQR decodes the electronic payment number QR that Korean
// giro bills embed. Any failure means "no QR", never an error.
func decodePaymentQR(imageData []byte) string {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return ""
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return ""
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(result.GetText())
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
