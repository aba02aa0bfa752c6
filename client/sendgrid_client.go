package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridClient is a thin wrapper over the SendGrid v3 mail/send API.
type SendGridClient struct {
	apiKey     string
	fromEmail  string
	fromName   string
	endpoint   string
	httpClient *http.Client
}

func NewSendGridClient(apiKey, fromEmail, fromName string) *SendGridClient {
	return &SendGridClient{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		endpoint:  sendGridEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (sc *SendGridClient) Configured() bool {
	return sc.apiKey != ""
}

type sendGridMail struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendHTML delivers a single HTML mail to one recipient.
func (sc *SendGridClient) SendHTML(to, subject, html string) error {
	payload := sendGridMail{
		Personalizations: []sendGridPersonalization{
			{To: []sendGridAddress{{Email: to}}},
		},
		From:    sendGridAddress{Email: sc.fromEmail, Name: sc.fromName},
		Subject: subject,
		Content: []sendGridContent{{Type: "text/html", Value: html}},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, sc.endpoint, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sc.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call SendGrid: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &ProviderError{Provider: "SendGrid", Status: resp.StatusCode, Details: string(body)}
	}
	return nil
}
