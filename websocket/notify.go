// Package websocket pushes marketplace events (new orders, order status
// changes, moderation actions) to connected sellers and buyers.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"motormandi_go/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Origin is validated by the CORS layer in front of us
			return true
		},
	}

	clients      = make(map[string]*Client) // userID -> Client
	clientsMutex sync.RWMutex

	notifyQueue = make(chan *Notification, 1000)

	redisCtx = context.Background()
)

// Notification event types
const (
	EventOrderPlaced  = "order_placed"
	EventOrderUpdated = "order_updated"
	EventListingSold  = "listing_sold"
)

// Client is one connected user
type Client struct {
	ID         string
	Connection *websocket.Conn
	Send       chan *Notification
}

// Notification is one event pushed to a user
type Notification struct {
	Type      string      `json:"type"`
	UserID    string      `json:"-"` // recipient
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// InitWebSocket starts the dispatch worker and heartbeat checker
func InitWebSocket() error {
	go dispatchWorker()
	go heartbeatChecker()

	log.Println("✅ WebSocket service initialized")
	return nil
}

// CloseWebSocket disconnects all clients
func CloseWebSocket() error {
	clientsMutex.Lock()
	defer clientsMutex.Unlock()
	for _, client := range clients {
		client.Connection.Close()
	}
	clients = make(map[string]*Client)
	return nil
}

// Notify queues an event for a user; dropped when the queue is full so
// callers never block
func Notify(userID, eventType string, data interface{}) {
	notification := &Notification{
		Type:      eventType,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	select {
	case notifyQueue <- notification:
	default:
		log.Printf("Notification queue full, dropping %s for user %s", eventType, userID)
	}
}

// HandleConnection upgrades an authenticated request; AuthMiddleware has
// already placed the caller's id in the context
func HandleConnection(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 40100, "message": "Authentication required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		ID:         userID,
		Connection: conn,
		Send:       make(chan *Notification, 64),
	}

	clientsMutex.Lock()
	if old, ok := clients[userID]; ok {
		old.Connection.Close()
	}
	clients[userID] = client
	clientsMutex.Unlock()

	// Online presence for the admin dashboard
	if config.RedisClient != nil {
		go func() {
			config.RedisClient.Set(redisCtx, "online:"+userID, "1", time.Minute*5)
			config.RedisClient.SAdd(redisCtx, "online:users", userID)
		}()
	}

	go client.readPump()
	go client.writePump()
}

// dispatchWorker routes queued notifications to connected clients
func dispatchWorker() {
	for notification := range notifyQueue {
		clientsMutex.RLock()
		client, ok := clients[notification.UserID]
		clientsMutex.RUnlock()

		if ok {
			select {
			case client.Send <- notification:
			default:
				// Slow consumer; skip rather than block the dispatcher
			}
			continue
		}

		// Offline users get the event parked in Redis for next connect
		if config.RedisClient != nil {
			data, _ := json.Marshal(notification)
			config.RedisClient.RPush(redisCtx, "notify:pending:"+notification.UserID, data)
			config.RedisClient.Expire(redisCtx, "notify:pending:"+notification.UserID, 7*24*time.Hour)
		}
	}
}

// readPump consumes client frames to keep the connection alive
func (client *Client) readPump() {
	defer client.disconnect()

	client.Connection.SetReadLimit(512)
	client.Connection.SetReadDeadline(time.Now().Add(90 * time.Second))
	client.Connection.SetPongHandler(func(string) error {
		client.Connection.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Connection.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump flushes pending and live notifications to the socket
func (client *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.disconnect()
	}()

	client.sendPending()

	for {
		select {
		case notification, ok := <-client.Send:
			if !ok {
				return
			}
			client.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Connection.WriteJSON(notification); err != nil {
				return
			}
		case <-ticker.C:
			client.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendPending delivers events queued while the user was offline
func (client *Client) sendPending() {
	if config.RedisClient == nil {
		return
	}
	key := "notify:pending:" + client.ID
	for {
		raw, err := config.RedisClient.LPop(redisCtx, key).Result()
		if err != nil {
			return
		}
		var notification Notification
		if json.Unmarshal([]byte(raw), &notification) == nil {
			select {
			case client.Send <- &notification:
			default:
				return
			}
		}
	}
}

func (client *Client) disconnect() {
	clientsMutex.Lock()
	if clients[client.ID] == client {
		delete(clients, client.ID)
	}
	clientsMutex.Unlock()

	client.Connection.Close()

	if config.RedisClient != nil {
		go func() {
			config.RedisClient.Del(redisCtx, "online:"+client.ID)
			config.RedisClient.SRem(redisCtx, "online:users", client.ID)
		}()
	}
}

// heartbeatChecker refreshes online-presence TTLs for connected users
func heartbeatChecker() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if config.RedisClient == nil {
			continue
		}
		clientsMutex.RLock()
		ids := make([]string, 0, len(clients))
		for id := range clients {
			ids = append(ids, id)
		}
		clientsMutex.RUnlock()

		for _, id := range ids {
			config.RedisClient.Set(redisCtx, "online:"+id, "1", time.Minute*5)
		}
	}
}
