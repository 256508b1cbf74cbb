package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/brunodev185/pedidos-cine/services"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
)

// minTokenLength é o tamanho mínimo plausível de um token FCM.
const minTokenLength = 100

// DeliveryController implementa o boundary HTTP de entrega de push.
// O contrato de resposta é fixo (success/error cru, sem o envelope
// JSONResponse): os clientes do gateway casam as mensagens de erro.
type DeliveryController struct {
	Messenger services.Messenger
}

func NewDeliveryController(messenger services.Messenger) *DeliveryController {
	return &DeliveryController{Messenger: messenger}
}

type deliveryRequest struct {
	Token        string                     `json:"token"`
	Notification *services.PushNotification `json:"notification"`
}

// SendNotification -> POST /api/send-notification
func (dc *DeliveryController) SendNotification(c *gin.Context) {
	var body deliveryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Token e notificação são obrigatórios",
		})
		return
	}

	if body.Token == "" || body.Notification == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Token e notificação são obrigatórios",
		})
		return
	}

	if len(body.Token) < minTokenLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Token FCM inválido",
		})
		return
	}

	result, err := dc.Messenger.SendToDevice(body.Token, *body.Notification)
	if err != nil {
		errMsg := err.Error()
		details := errMsg
		if strings.Contains(errMsg, "Requested entity was not found") {
			errMsg = "Token FCM inválido ou expirado"
			details = "O token FCM fornecido não foi encontrado. Isso pode acontecer se o token foi invalidado ou expirou."
		}
		utils.ErrorLogger.Printf("Erro ao enviar notificação: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     errMsg,
			"details":   details,
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// Ping -> GET de verificação do boundary
func (dc *DeliveryController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "API route funcionando",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
