package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"photomind/models"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	sync.Mutex
	requests []buildRequest
}

func (r *recorder) photos() map[string]string {
	r.Lock()
	defer r.Unlock()
	result := map[string]string{}
	for _, req := range r.requests {
		for url, description := range req.Photos {
			result[url] = description
		}
	}
	return result
}

func newGraphServer(t *testing.T, status int) (*recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/build_knowledge_graph" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req buildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		rec.Lock()
		rec.requests = append(rec.requests, req)
		rec.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return rec, server
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestUpdater_SendsPhotos(t *testing.T) {
	rec, server := newGraphServer(t, http.StatusOK)
	u := NewUpdater(server.URL+"/", 10, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	u.Start(ctx)

	u.Enqueue(models.Photo{ID: 1, URL: "/images/a.jpg", Description: "beach"})
	u.Enqueue(models.Photo{ID: 2, URL: "/images/b.jpg", Description: "dinner"})
	waitFor(t, func() bool { return len(rec.photos()) == 2 })

	got := rec.photos()
	if got["/images/a.jpg"] != "beach" || got["/images/b.jpg"] != "dinner" {
		t.Errorf("unexpected photos %v", got)
	}
	cancel()
	select {
	case <-u.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestUpdater_FailuresAreNotFatal(t *testing.T) {
	rec, server := newGraphServer(t, http.StatusInternalServerError)
	u := NewUpdater(server.URL, 10, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	u.Start(ctx)

	u.Enqueue(models.Photo{ID: 1, URL: "/images/a.jpg"})
	waitFor(t, func() bool { return len(rec.photos()) == 1 })
	u.Enqueue(models.Photo{ID: 2, URL: "/images/b.jpg"})
	waitFor(t, func() bool { return len(rec.photos()) == 2 })
}

func TestUpdater_EnqueueDropsWhenFull(t *testing.T) {
	u := NewUpdater("http://127.0.0.1:0", 1, time.Second) // not started
	u.Enqueue(models.Photo{ID: 1, URL: "/images/a.jpg"})
	done := make(chan struct{})
	go func() {
		u.Enqueue(models.Photo{ID: 2, URL: "/images/b.jpg"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	if len(u.queue) != 1 || (<-u.queue).ID != 1 {
		t.Error("the first photo should stay queued")
	}
}
