package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrInvalidToken sinaliza token expirado/inválido no gateway;
// dispara a renovação com retry único no Dispatcher.
var ErrInvalidToken = errors.New("token FCM inválido ou expirado")

// PushNotification é o payload aceito pelo gateway de push.
type PushNotification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// FCMConfig holds push gateway configuration
type FCMConfig struct {
	GatewayURL string
}

// FCMService é o cliente HTTP do gateway de push.
type FCMService struct {
	config     *FCMConfig
	httpClient *http.Client
}

var (
	fcmService *FCMService
	fcmOnce    sync.Once
)

// GetFCMService returns singleton instance of FCMService
func GetFCMService() *FCMService {
	fcmOnce.Do(func() {
		gatewayURL := os.Getenv("FCM_GATEWAY_URL")
		if gatewayURL == "" {
			gatewayURL = "http://localhost:8080/api/send-notification"
		}

		fcmService = NewFCMService(&FCMConfig{GatewayURL: gatewayURL})
	})
	return fcmService
}

func NewFCMService(config *FCMConfig) *FCMService {
	return &FCMService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ValidateConfig validates push gateway configuration
func (fs *FCMService) ValidateConfig() error {
	if fs.config.GatewayURL == "" {
		return fmt.Errorf("FCM_GATEWAY_URL is not set")
	}
	return nil
}

type gatewayError struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Send entrega uma notificação para um token de dispositivo.
// Resposta de erro contendo "Token FCM inválido" vira ErrInvalidToken.
func (fs *FCMService) Send(token string, notif PushNotification) error {
	payload := map[string]interface{}{
		"token":        token,
		"notification": notif,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequest("POST", fs.config.GatewayURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := fs.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode == http.StatusOK {
		var result struct {
			Success bool `json:"success"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("error unmarshaling response: %v", err)
		}
		if !result.Success {
			return fmt.Errorf("gateway reported failure: %s", string(body))
		}
		return nil
	}

	var gwErr gatewayError
	if err := json.Unmarshal(body, &gwErr); err == nil && gwErr.Error != "" {
		if strings.Contains(gwErr.Error, "Token FCM inválido") {
			return fmt.Errorf("%w: %s", ErrInvalidToken, gwErr.Error)
		}
		return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, gwErr.Error)
	}

	return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, string(body))
}
