package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/brunodev185/pedidos-cine/models"
	"github.com/gorilla/websocket"
)

// Event types
const (
	EventRequestsSnapshot      = "requests_snapshot"
	EventUserRequestsSnapshot  = "user_requests_snapshot"
	EventNotificationsSnapshot = "notifications_snapshot"
	EventNotification          = "notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	userID string
	role   string
}

// Hub guarda as conexões de todos os clientes (admin e usuários)
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var wsHub = Hub{
	clients: make(map[*websocket.Conn]client),
}

// RegisterClient -> adiciona a conexão associada ao usuário e ao papel
func RegisterClient(conn *websocket.Conn, userID, role string) {
	wsHub.mutex.Lock()
	defer wsHub.mutex.Unlock()
	wsHub.clients[conn] = client{userID: userID, role: role}
}

// UnregisterClient -> remove e fecha a conexão
func UnregisterClient(conn *websocket.Conn) {
	wsHub.mutex.Lock()
	defer wsHub.mutex.Unlock()
	delete(wsHub.clients, conn)
	conn.Close()
}

// ClientCount -> número de conexões ativas
func ClientCount() int {
	wsHub.mutex.Lock()
	defer wsHub.mutex.Unlock()
	return len(wsHub.clients)
}

// BroadcastRequestsSnapshot -> tabela completa de pedidos, só para as
// conexões de admins (a tabela carrega dados de todos os usuários)
func BroadcastRequestsSnapshot(requests []models.ContentRequest) {
	sendToRole("admin", Message{
		Event: EventRequestsSnapshot,
		Data:  requests,
	})
}

// SendNotification -> notificação individual para as conexões do usuário
func SendNotification(userID string, notif models.Notification) {
	sendToUser(userID, Message{
		Event: EventNotification,
		Data:  notif,
	})
}

// SendUserRequestsSnapshot -> snapshot dos pedidos do usuário
func SendUserRequestsSnapshot(userID string, requests []models.UserRequest) {
	sendToUser(userID, Message{
		Event: EventUserRequestsSnapshot,
		Data:  requests,
	})
}

// SendNotificationsSnapshot -> snapshot das notificações do usuário
func SendNotificationsSnapshot(userID string, notifs []models.Notification) {
	sendToUser(userID, Message{
		Event: EventNotificationsSnapshot,
		Data:  notifs,
	})
}

func sendToRole(role string, msg Message) {
	wsHub.mutex.Lock()
	defer wsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, cl := range wsHub.clients {
		if cl.role != role {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}

func sendToUser(userID string, msg Message) {
	wsHub.mutex.Lock()
	defer wsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, cl := range wsHub.clients {
		if cl.userID != userID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to user %s: %v", userID, err)
		}
	}
}
