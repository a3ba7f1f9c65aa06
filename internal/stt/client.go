// Package stt is the HTTP client for the platform's speech-to-text
// collaborator. The pronunciation scorer itself never sees audio; handlers
// call Transcribe first and hand the transcript on.
package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable covers timeouts and transport failures talking to the
// transcription service. Callers surface it as a retryable condition and
// never record a score for the attempt.
var ErrUnavailable = errors.New("speech-to-text service unavailable")

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

type transcribeRequest struct {
	AudioBase64 string `json:"audio_base64"`
	Language    string `json:"language"`
}

type transcribeResponse struct {
	Transcript string `json:"transcript"`
}

// Transcribe posts base64 audio to the collaborator and returns the
// transcript. Any transport error or non-200 response maps to
// ErrUnavailable so the caller can tell the learner to retry recording.
func (c *Client) Transcribe(ctx context.Context, audioBase64, language string) (string, error) {
	body, err := json.Marshal(transcribeRequest{
		AudioBase64: audioBase64,
		Language:    language,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transcribe", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out.Transcript, nil
}
