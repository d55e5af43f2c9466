package notedoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the host note-document service: it appends ordered text
// segments to an existing note.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// segmentRequest is the body for POST /notes/{id}/segments.
type segmentRequest struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
}

// AppendSegment appends one segment to the note. Segments must be sent in
// order, one call per segment.
func (c *Client) AppendSegment(ctx context.Context, noteID string, index int, seg Segment) error {
	body, err := json.Marshal(segmentRequest{
		Index: index,
		Kind:  string(seg.Kind),
		Text:  seg.Text,
	})
	if err != nil {
		return fmt.Errorf("marshal segment: %w", err)
	}

	url := fmt.Sprintf("%s/notes/%s/segments", c.baseURL, noteID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("append segment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("append segment %d to note %s: status %d: %s",
			index, noteID, resp.StatusCode, string(respBody))
	}
	return nil
}

// AppendDocument splits an assembled document into segments and appends them
// to the note in order.
func (c *Client) AppendDocument(ctx context.Context, noteID, document string) error {
	for i, seg := range SplitSegments(document) {
		if err := c.AppendSegment(ctx, noteID, i, seg); err != nil {
			return err
		}
	}
	return nil
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
