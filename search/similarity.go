package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SimilarityClient asks the graph RAG service which photo fits a query best
type SimilarityClient struct {
	baseURL string
	client  *http.Client
}

type similarityRequest struct {
	Query string `json:"query"`
}

type SimilarityResponse struct {
	// Result starts with "Filename: <name>", followed by the reasoning
	Result    string `json:"result"`
	TimeTaken string `json:"time_taken"`
}

func NewSimilarityClient(baseURL string, timeout time.Duration) *SimilarityClient {
	return &SimilarityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *SimilarityClient) BestMatch(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(similarityRequest{Query: query})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search_photos", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("similarity API error: %s", resp.Status)
	}
	var result SimilarityResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("similarity API response: %w", err)
	}
	return result.Result, nil
}
