package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// VisionClient calls the Google Cloud Vision REST API for full-document
// text detection. The key is passed as a query parameter, matching the
// API-key flavor of the endpoint.
type VisionClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// ProviderError carries the provider's own response body so the handler
// can surface it with a 502.
type ProviderError struct {
	Provider string
	Status   int
	Details  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Details)
}

func NewVisionClient(apiKey, endpoint string) *VisionClient {
	return &VisionClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether a credential is present.
func (vc *VisionClient) Configured() bool {
	return vc.apiKey != ""
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Features []visionFeature `json:"features"`
	Image    visionImage     `json:"image"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// DetectText sends image bytes for DOCUMENT_TEXT_DETECTION and returns
// the plain-text transcription, or an empty string when the provider
// found no text.
func (vc *VisionClient) DetectText(imageData []byte) (string, error) {
	payload := visionRequest{
		Requests: []visionAnnotateRequest{
			{
				Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
				Image:    visionImage{Content: base64.StdEncoding.EncodeToString(imageData)},
			},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vision request: %w", err)
	}

	url := vc.endpoint + "?key=" + vc.apiKey
	resp, err := vc.httpClient.Post(url, "application/json", bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to call Vision API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Vision API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: "Vision API", Status: resp.StatusCode, Details: string(body)}
	}

	var result visionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse Vision API response: %w", err)
	}

	if len(result.Responses) == 0 {
		return "", nil
	}
	if msg := result.Responses[0].Error.Message; msg != "" {
		return "", &ProviderError{Provider: "Vision API", Status: resp.StatusCode, Details: msg}
	}

	text := result.Responses[0].FullTextAnnotation.Text
	log.Printf("Vision API returned %d characters", len(text))
	return text, nil
}
