package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GetAllReports -> mais recentes primeiro
func (rc *ReportController) GetAllReports(c *gin.Context) {
	var reports []models.ProblemReport
	if err := rc.DB.Order("reported_at DESC").Find(&reports).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All problem reports", reports)
}

// CreateReport -> abre um relatório de problema (status Aberto)
func (rc *ReportController) CreateReport(c *gin.Context) {
	type reqBody struct {
		Title    string `json:"title" binding:"required"`
		Problem  string `json:"problem" binding:"required"`
		Username string `json:"username"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	report := models.ProblemReport{
		ID:         uuid.New().String(),
		Title:      body.Title,
		Problem:    body.Problem,
		Status:     models.ReportAberto,
		ReportedAt: time.Now(),
	}
	if body.Username != "" {
		report.Username = &body.Username
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Report created", report)
}

// UpdateReportStatus -> Aberto <-> Resolvido
func (rc *ReportController) UpdateReportStatus(c *gin.Context) {
	id := c.Param("report_id")

	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Status != models.ReportAberto && body.Status != models.ReportResolvido {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("status inválido: %s", body.Status))
		return
	}

	var report models.ProblemReport
	if err := rc.DB.First(&report, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	now := time.Now()
	if err := rc.DB.Model(&report).Updates(map[string]interface{}{
		"status":     body.Status,
		"updated_at": now,
	}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Report status updated", report)
}

// DeleteReport
func (rc *ReportController) DeleteReport(c *gin.Context) {
	id := c.Param("report_id")

	if err := rc.DB.Delete(&models.ProblemReport{}, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Report deleted", gin.H{"report_id": id})
}
