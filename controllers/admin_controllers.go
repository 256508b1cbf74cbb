package controllers

import (
	"net/http"
	"time"

	"github.com/brunodev185/pedidos-cine/hub"
	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> contagens por status + pedidos recentes
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var stats struct {
		TotalRequests int64 `json:"total_requests"`
		TodayRequests int64 `json:"today_requests"`
		RequestStats  struct {
			Pendente   int64 `json:"pendente"`
			Adicionado int64 `json:"adicionado"`
			Comunicado int64 `json:"comunicado"`
		} `json:"request_stats"`
		OpenReports      int64                   `json:"open_reports"`
		TotalUsers       int64                   `json:"total_users"`
		ConnectedClients int                     `json:"connected_clients"`
		RecentRequests   []models.ContentRequest `json:"recent_requests"`
	}

	today := time.Now().Format("2006-01-02")

	if err := ac.DB.Model(&models.ContentRequest{}).
		Count(&stats.TotalRequests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ac.DB.Model(&models.ContentRequest{}).
		Where("DATE(requested_at) = ?", today).
		Count(&stats.TodayRequests)

	ac.DB.Model(&models.ContentRequest{}).
		Where("status = ?", models.StatusPendente).
		Count(&stats.RequestStats.Pendente)
	ac.DB.Model(&models.ContentRequest{}).
		Where("status = ?", models.StatusAdicionado).
		Count(&stats.RequestStats.Adicionado)
	ac.DB.Model(&models.ContentRequest{}).
		Where("status = ?", models.StatusComunicado).
		Count(&stats.RequestStats.Comunicado)

	ac.DB.Model(&models.ProblemReport{}).
		Where("status = ?", models.ReportAberto).
		Count(&stats.OpenReports)
	ac.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	stats.ConnectedClients = hub.ClientCount()

	ac.DB.Order("requested_at DESC").Limit(10).Find(&stats.RecentRequests)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
