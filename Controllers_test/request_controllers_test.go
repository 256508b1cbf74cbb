package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brunodev185/pedidos-cine/controllers"
	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
)

func setupTestDBForRequests(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.ContentRequest{},
		&models.UserRequest{},
		&models.RequestEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupRequestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	reqCtrl := controllers.NewRequestController(db)
	router.GET("/requests", reqCtrl.GetAllRequests)
	router.GET("/requests/:request_id", reqCtrl.GetRequestByID)
	router.POST("/requests", reqCtrl.SubmitRequest)
	router.POST("/requests/:request_id/added", reqCtrl.MarkAdded)
	router.POST("/requests/:request_id/communicated", reqCtrl.MarkCommunicated)
	router.POST("/requests/:request_id/pending", reqCtrl.ResetToPending)
	router.PATCH("/requests/:request_id/observation", reqCtrl.UpdateObservation)
	router.DELETE("/requests/:request_id", reqCtrl.DeleteRequest)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(payloadBytes)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestLifecycle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests(t)
	router := setupRequestRouter(db)

	// Submit
	w := doJSON(t, router, "POST", "/requests", map[string]interface{}{
		"title":    "Dune Part Two",
		"type":     "filme",
		"username": "alice",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Status bool `json:"status"`
		Data   struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.True(t, createResp.Status)
	assert.NotEmpty(t, createResp.Data.ID)
	assert.Equal(t, models.StatusPendente, createResp.Data.Status)
	reqID := createResp.Data.ID

	// Mark added sem categoria -> 400
	w = doJSON(t, router, "POST", "/requests/"+reqID+"/added", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Mark added
	w = doJSON(t, router, "POST", "/requests/"+reqID+"/added", map[string]interface{}{
		"category":    "Lançamentos 2024",
		"observation": "Qualidade 4K",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var addedResp struct {
		Data struct {
			Status          string  `json:"status"`
			AddedToCategory *string `json:"addedToCategory"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &addedResp))
	assert.Equal(t, models.StatusAdicionado, addedResp.Data.Status)
	assert.NotNil(t, addedResp.Data.AddedToCategory)
	assert.Equal(t, "Lançamentos 2024", *addedResp.Data.AddedToCategory)

	// Volta para Pendente
	w = doJSON(t, router, "POST", "/requests/"+reqID+"/pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var pendingResp struct {
		Data struct {
			Status          string  `json:"status"`
			AddedToCategory *string `json:"addedToCategory"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pendingResp))
	assert.Equal(t, models.StatusPendente, pendingResp.Data.Status)
	assert.Nil(t, pendingResp.Data.AddedToCategory)

	// Comunicado
	w = doJSON(t, router, "POST", "/requests/"+reqID+"/communicated", map[string]interface{}{
		"message": "Conteúdo indisponível no momento",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Get por id
	w = doJSON(t, router, "GET", "/requests/"+reqID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete
	w = doJSON(t, router, "DELETE", "/requests/"+reqID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/requests/"+reqID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests(t)
	router := setupRequestRouter(db)

	w := doJSON(t, router, "POST", "/requests/nao-existe/added", map[string]interface{}{
		"category": "Filmes",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "DELETE", "/requests/nao-existe", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitRequestValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests(t)
	router := setupRequestRouter(db)

	// title e type obrigatórios
	w := doJSON(t, router, "POST", "/requests", map[string]interface{}{
		"title": "Sem tipo",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllRequestsOrdering(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests(t)
	router := setupRequestRouter(db)

	doJSON(t, router, "POST", "/requests", map[string]interface{}{
		"title": "Primeiro", "type": "filme",
	})
	doJSON(t, router, "POST", "/requests", map[string]interface{}{
		"title": "Segundo", "type": "serie",
	})

	w := doJSON(t, router, "GET", "/requests", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 2)
}
