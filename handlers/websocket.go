package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"photomind/models"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	writeWait = 5 * time.Second
	// Messages waiting for a slow client, it is dropped when more pile up
	sendQueueSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already checked by the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool
type ConnectedClient struct {
	fun SendSocketFunc
}

// newConnectedClient queues messages for a writer goroutine, so sending never blocks.
// onOverflow is called when the queue is full.
func newConnectedClient(queue chan<- []byte, onOverflow func()) *ConnectedClient {
	return &ConnectedClient{fun: func(data []byte) bool {
		select {
		case queue <- data:
			return true
		default:
			onOverflow()
			return false
		}
	}}
}

type LiveMessage struct {
	Type  string       `json:"type"`
	Photo models.Photo `json:"photo"`
}

// LiveFeed pushes newly added photos to every connected gallery
type LiveFeed struct {
	clients cmap.ConcurrentMap[string, *ConnectedClient]
}

func NewLiveFeed() *LiveFeed {
	return &LiveFeed{clients: cmap.New[*ConnectedClient]()}
}

func (f *LiveFeed) Count() int {
	return f.clients.Count()
}

// Broadcast queues photo for all clients, dropping the ones that cannot keep up.
// It has the catalog.InsertHook signature and does not wait for slow clients.
func (f *LiveFeed) Broadcast(photo models.Photo) {
	data, err := json.Marshal(LiveMessage{Type: "photo", Photo: photo})
	if err != nil {
		log.Printf("Cannot encode live message: %v", err)
		return
	}
	for id, client := range f.clients.Items() {
		if !client.fun(data) {
			f.clients.Remove(id)
		}
	}
}

func (f *LiveFeed) WebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client, gorilla connections allow one writer at a time
	var writeMutex sync.Mutex
	write := func(messageType int, data []byte) error {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(messageType, data)
	}
	id := uuid.NewString()
	queue := make(chan []byte, sendQueueSize)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case data := <-queue:
				if err := write(websocket.TextMessage, data); err != nil {
					log.Println("write err:", err)
					conn.Close()
					return
				}
			}
		}
	}()
	client := newConnectedClient(queue, func() {
		log.Printf("Live client %s is too slow, disconnecting", id)
		conn.Close()
	})
	f.clients.Set(id, client)
	defer f.clients.Remove(id)
	// Main read cycle, clients only ever send keep-alives
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read err:", err)
			}
			break
		}
		if string(message) == "ping" {
			_ = write(mt, []byte("pong"))
		}
	}
}
