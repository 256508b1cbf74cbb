package controllers

import (
	"net/http"

	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications -> notificações do usuário autenticado
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	username := c.GetString("username")

	var notifs []models.Notification
	if err := nc.DB.Where("user_id = ?", username).
		Order("created_at DESC").
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My notifications", notifs)
}

// MarkAsRead -> transição única false -> true
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	username := c.GetString("username")
	id := c.Param("notif_id")

	var notif models.Notification
	if err := nc.DB.Where("id = ? AND user_id = ?", id, username).
		First(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !notif.Read {
		if err := nc.DB.Model(&notif).Update("read", true).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// ClearAll -> remove todas as notificações do usuário
func (nc *NotificationController) ClearAll(c *gin.Context) {
	username := c.GetString("username")

	res := nc.DB.Delete(&models.Notification{}, "user_id = ?", username)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications cleared", gin.H{
		"deleted": res.RowsAffected,
	})
}

// GetAllNotifications -> visão completa para o painel admin
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	var notifs []models.Notification
	query := nc.DB.Order("created_at DESC")
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}
