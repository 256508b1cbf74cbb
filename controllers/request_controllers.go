package controllers

import (
	"net/http"

	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/services"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RequestController struct {
	DB      *gorm.DB
	Service *services.RequestService
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{
		DB:      db,
		Service: services.NewRequestService(db),
	}
}

// GetAllRequests -> tabela do painel admin, mais recentes primeiro
func (rc *RequestController) GetAllRequests(c *gin.Context) {
	var requests []models.ContentRequest
	if err := rc.DB.Order("requested_at DESC").Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All content requests", requests)
}

// GetRequestByID
func (rc *RequestController) GetRequestByID(c *gin.Context) {
	id := c.Param("request_id")

	var request models.ContentRequest
	if err := rc.DB.First(&request, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Request detail", request)
}

// SubmitRequest -> cria pedido com status Pendente. Username é
// opcional (pedido anônimo não gera mirror nem notificação).
func (rc *RequestController) SubmitRequest(c *gin.Context) {
	type reqBody struct {
		Title    string `json:"title" binding:"required"`
		Type     string `json:"type" binding:"required"`
		Logo     string `json:"logo"`
		Notes    string `json:"notes"`
		Username string `json:"username"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request, err := rc.Service.Submit(services.SubmitInput{
		Title:    body.Title,
		Type:     body.Type,
		Logo:     body.Logo,
		Notes:    body.Notes,
		Username: body.Username,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Content request submitted: %s (%s)", request.Title, request.ID)

	utils.RespondJSON(c, http.StatusCreated, "Request submitted", request)
}

// MarkAdded -> transição para Adicionado com categoria
func (rc *RequestController) MarkAdded(c *gin.Context) {
	id := c.Param("request_id")

	type reqBody struct {
		Category    string `json:"category" binding:"required"`
		Observation string `json:"observation"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request, err := rc.Service.MarkAdded(id, body.Category, body.Observation)
	if err != nil {
		code := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Request marked as added", request)
}

// MarkCommunicated -> registra comunicado sobre o pedido
func (rc *RequestController) MarkCommunicated(c *gin.Context) {
	id := c.Param("request_id")

	type reqBody struct {
		Message string `json:"message" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request, err := rc.Service.MarkCommunicated(id, body.Message)
	if err != nil {
		code := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Request marked as communicated", request)
}

// ResetToPending -> volta o pedido para Pendente
func (rc *RequestController) ResetToPending(c *gin.Context) {
	id := c.Param("request_id")

	request, err := rc.Service.ResetToPending(id)
	if err != nil {
		code := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Request reset to pending", request)
}

// UpdateObservation -> edita observação sem mudar status
func (rc *RequestController) UpdateObservation(c *gin.Context) {
	id := c.Param("request_id")

	type reqBody struct {
		Observation string `json:"observation"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request, err := rc.Service.UpdateObservation(id, body.Observation)
	if err != nil {
		code := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Observation updated", request)
}

// DeleteRequest -> remoção pelo admin, com cascade do mirror
func (rc *RequestController) DeleteRequest(c *gin.Context) {
	id := c.Param("request_id")

	if err := rc.Service.Delete(id); err != nil {
		code := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Request deleted", gin.H{"request_id": id})
}
