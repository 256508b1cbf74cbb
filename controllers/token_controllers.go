package controllers

import (
	"net/http"
	"time"

	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenController struct {
	DB *gorm.DB
}

func NewTokenController(db *gorm.DB) *TokenController {
	return &TokenController{DB: db}
}

// SaveToken -> registra o token FCM do usuário autenticado
// (merge-upsert, last write wins)
func (tc *TokenController) SaveToken(c *gin.Context) {
	username := c.GetString("username")

	type reqBody struct {
		Token string `json:"token" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rec := models.FCMToken{
		UserID:      username,
		Token:       body.Token,
		LastUpdated: time.Now(),
	}
	if err := tc.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token saved", gin.H{"userId": username})
}

// SaveDefaultToken -> slot compartilhado usado antes do login
func (tc *TokenController) SaveDefaultToken(c *gin.Context) {
	type reqBody struct {
		Token string `json:"token" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rec := models.FCMToken{
		UserID:      models.DefaultTokenSlot,
		Token:       body.Token,
		LastUpdated: time.Now(),
	}
	if err := tc.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Default token saved", gin.H{"userId": models.DefaultTokenSlot})
}
