package captions

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"photomind/utils"
	"strings"
	"time"
)

const (
	prompt        = "Please provide a detailed description of this image. Focus on the main subjects, activities, setting, and notable details. Keep the description natural and concise."
	noDescription = "No description available"
)

// Client talks to an OpenAI compatible chat completions API with vision support
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	maxSide   uint
	client    *http.Client
}

func NewClient(baseURL, apiKey, model string, maxTokens, maxSide int, timeout time.Duration) *Client {
	if maxSide < 0 {
		maxSide = 0
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		maxSide:   uint(maxSide),
		client:    &http.Client{Timeout: timeout},
	}
}

type imageURL struct {
	URL string `json:"url"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Describe(ctx context.Context, imagePath string) (string, error) {
	dataURL, err := c.loadImage(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to generate image description: %w", err)
	}
	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
	})
	if err != nil {
		return "", err
	}
	description, err := c.complete(ctx, body)
	if err != nil {
		return "", fmt.Errorf("failed to generate image description: %w", err)
	}
	return description, nil
}

func (c *Client) complete(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return "", fmt.Errorf("captioning API status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var out chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("captioning API response: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return noDescription, nil
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// loadImage returns the image as a base64 data URL, downscaled to maxSide when possible
func (c *Client) loadImage(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}
	if c.maxSide > 0 {
		var thumb bytes.Buffer
		info, err := utils.CreateThumb(c.maxSide, bytes.NewReader(data), &thumb)
		if err == nil {
			if uint(info.OldX) > c.maxSide || uint(info.OldY) > c.maxSide {
				data = thumb.Bytes()
			}
		} else {
			// Formats the decoder doesn't know are sent as they are
			log.Printf("Cannot downscale %s: %v", imagePath, err)
		}
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
