package controllers

import (
	"net/http"

	"github.com/brunodev185/pedidos-cine/services"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{Service: service}
}

// GetCatalog -> listagem VOD (do cache quando quente)
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	items, err := cc.Service.GetCatalog()
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Catalog", items)
}

// RefreshCatalog -> invalida o cache e rebusca (admin)
func (cc *CatalogController) RefreshCatalog(c *gin.Context) {
	items, err := cc.Service.Refresh()
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Catalog refreshed", gin.H{"items": len(items)})
}

// XtreamAuth -> valida credenciais no provedor IPTV
func (cc *CatalogController) XtreamAuth(c *gin.Context) {
	type reqBody struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := cc.Service.Authenticate(body.Username, body.Password); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Authenticated", gin.H{"username": body.Username})
}
