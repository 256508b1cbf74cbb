package controllers

import (
	"net/http"

	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/services"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserRequestController struct {
	DB      *gorm.DB
	Service *services.RequestService
}

func NewUserRequestController(db *gorm.DB) *UserRequestController {
	return &UserRequestController{
		DB:      db,
		Service: services.NewRequestService(db),
	}
}

// GetMyRequests -> mirror do usuário autenticado, mais recentes primeiro
func (uc *UserRequestController) GetMyRequests(c *gin.Context) {
	username := c.GetString("username")

	var requests []models.UserRequest
	if err := uc.DB.Where("user_id = ?", username).
		Order("requested_at DESC").
		Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My requests", requests)
}

// DeleteMyRequest -> dono remove o próprio pedido (mirror + origem),
// sem notificação
func (uc *UserRequestController) DeleteMyRequest(c *gin.Context) {
	username := c.GetString("username")
	requestID := c.Param("request_id")

	if err := uc.Service.DeleteUserRequest(username, requestID); err != nil {
		code := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Request removed", gin.H{"request_id": requestID})
}
