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
	"github.com/brunodev185/pedidos-cine/services"
	"github.com/brunodev185/pedidos-cine/utils"
)

func setupTestDBForUserRequests(t *testing.T) *gorm.DB {
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

func setupUserRequestRouter(db *gorm.DB, username string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	ctrl := controllers.NewUserRequestController(db)

	me := router.Group("/me", fakeAuth(username))
	me.GET("/requests", ctrl.GetMyRequests)
	me.DELETE("/requests/:request_id", ctrl.DeleteMyRequest)
	return router
}

func submitFor(t *testing.T, db *gorm.DB, title, username string) *models.ContentRequest {
	req, err := services.NewRequestService(db).Submit(services.SubmitInput{
		Title:    title,
		Type:     "filme",
		Username: username,
	})
	assert.NoError(t, err)
	return req
}

func TestGetMyRequestsShowsOnlyOwn(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUserRequests(t)
	router := setupUserRequestRouter(db, "alice")

	submitFor(t, db, "Dune Part Two", "alice")
	submitFor(t, db, "Breaking Bad", "bob")

	req, _ := http.NewRequest("GET", "/me/requests", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			UserID       string `json:"userId"`
			RequestTitle string `json:"requestTitle"`
			Status       string `json:"status"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "alice", resp.Data[0].UserID)
	assert.Equal(t, "Dune Part Two", resp.Data[0].RequestTitle)
	assert.Equal(t, models.StatusPendente, resp.Data[0].Status)
}

func TestDeleteMyRequestRemovesSource(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUserRequests(t)
	router := setupUserRequestRouter(db, "alice")

	created := submitFor(t, db, "Dune Part Two", "alice")

	req, _ := http.NewRequest("DELETE", "/me/requests/"+created.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reqCount, mirrorCount int64
	db.Model(&models.ContentRequest{}).Where("id = ?", created.ID).Count(&reqCount)
	db.Model(&models.UserRequest{}).Where("request_id = ?", created.ID).Count(&mirrorCount)
	assert.Equal(t, int64(0), reqCount)
	assert.Equal(t, int64(0), mirrorCount)
}

func TestDeleteMyRequestRejectsNonOwner(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUserRequests(t)
	router := setupUserRequestRouter(db, "alice")

	created := submitFor(t, db, "Breaking Bad", "bob")

	req, _ := http.NewRequest("DELETE", "/me/requests/"+created.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.ContentRequest{}).Where("id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaveTokenUpsert(t *testing.T) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.FCMToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	ctrl := controllers.NewTokenController(db)
	router.POST("/fcm-token", fakeAuth("alice"), ctrl.SaveToken)
	router.POST("/fcm-token/default", ctrl.SaveDefaultToken)

	save := func(url, token string) *httptest.ResponseRecorder {
		payloadBytes, _ := json.Marshal(map[string]string{"token": token})
		req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, save("/fcm-token", "token-um").Code)
	assert.Equal(t, http.StatusOK, save("/fcm-token", "token-dois").Code)

	// Last write wins
	var rec models.FCMToken
	db.First(&rec, "user_id = ?", "alice")
	assert.Equal(t, "token-dois", rec.Token)

	assert.Equal(t, http.StatusOK, save("/fcm-token/default", "token-default").Code)
	var defaultRec models.FCMToken
	db.First(&defaultRec, "user_id = ?", models.DefaultTokenSlot)
	assert.Equal(t, "token-default", defaultRec.Token)

	var total int64
	db.Model(&models.FCMToken{}).Count(&total)
	assert.Equal(t, int64(2), total)
}
