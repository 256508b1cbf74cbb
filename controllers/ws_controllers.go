package controllers

import (
	"net/http"

	"github.com/brunodev185/pedidos-cine/hub"
	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler -> endpoint WebSocket; o middleware de auth do ws já
// colocou o username no contexto. Na conexão o cliente recebe os
// snapshots iniciais; os seguintes vêm do EventMonitor.
func WSHandler(c *gin.Context) {
	usernameInterface, exists := c.Get("username")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	username := usernameInterface.(string)
	role := c.GetString("role")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	hub.RegisterClient(ws, username, role)

	sendInitialSnapshots(utils.GetDB(), username)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	hub.UnregisterClient(ws)
}

func sendInitialSnapshots(db *gorm.DB, username string) {
	if db == nil {
		return
	}

	var mirror []models.UserRequest
	if err := db.Where("user_id = ?", username).
		Order("requested_at DESC").
		Find(&mirror).Error; err == nil {
		hub.SendUserRequestsSnapshot(username, mirror)
	}

	var notifs []models.Notification
	if err := db.Where("user_id = ?", username).
		Order("created_at DESC").
		Find(&notifs).Error; err == nil {
		hub.SendNotificationsSnapshot(username, notifs)
	}
}
