package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"photomind/models"
	"strings"
	"time"
)

// Updater adds new photos to the similarity service's knowledge graph in the background.
// Updates are best effort: failures are logged and a full queue drops the photo.
type Updater struct {
	baseURL string
	client  *http.Client
	queue   chan models.Photo
	done    chan struct{}
}

type buildRequest struct {
	Photos map[string]string `json:"photos"` // url -> description
}

func NewUpdater(baseURL string, queueSize int, timeout time.Duration) *Updater {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Updater{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		queue:   make(chan models.Photo, queueSize),
		done:    make(chan struct{}),
	}
}

// Enqueue can be used as a catalog insert hook, it never blocks
func (u *Updater) Enqueue(photo models.Photo) {
	select {
	case u.queue <- photo:
	default:
		log.Printf("Knowledge graph queue full, photo %d (%s) not added", photo.ID, photo.URL)
	}
}

// Start processes the queue until ctx is cancelled
func (u *Updater) Start(ctx context.Context) {
	go func() {
		defer close(u.done)
		for {
			select {
			case <-ctx.Done():
				return
			case photo := <-u.queue:
				batch := u.drain(photo)
				if err := u.send(ctx, batch); err != nil {
					log.Printf("Knowledge graph update (%d photos) failed: %v", len(batch), err)
				}
			}
		}
	}()
}

// Done is closed once the worker has stopped
func (u *Updater) Done() <-chan struct{} {
	return u.done
}

// drain collects everything already waiting so it goes out in one request
func (u *Updater) drain(first models.Photo) map[string]string {
	batch := map[string]string{first.URL: first.Description}
	for {
		select {
		case photo := <-u.queue:
			batch[photo.URL] = photo.Description
		default:
			return batch
		}
	}
}

func (u *Updater) send(ctx context.Context, photos map[string]string) error {
	body, err := json.Marshal(buildRequest{Photos: photos})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/build_knowledge_graph", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %s", resp.Status)
	}
	return nil
}
