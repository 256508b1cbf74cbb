package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// Messenger é o transporte upstream usado pelo endpoint de entrega
// (o lado de dentro do boundary /api/send-notification).
type Messenger interface {
	SendToDevice(token string, notif PushNotification) (string, error)
}

// FirebaseMessenger fala com o endpoint legacy do FCM usando a
// server key. Token desconhecido vira o erro "Requested entity was
// not found", que o controller de entrega traduz para 500 com a
// mensagem de token expirado.
type FirebaseMessenger struct {
	serverKey  string
	endpoint   string
	httpClient *http.Client
}

var (
	firebaseMessenger *FirebaseMessenger
	messengerOnce     sync.Once
)

// GetFirebaseMessenger returns singleton instance of FirebaseMessenger
func GetFirebaseMessenger() *FirebaseMessenger {
	messengerOnce.Do(func() {
		endpoint := os.Getenv("FCM_SEND_URL")
		if endpoint == "" {
			endpoint = "https://fcm.googleapis.com/fcm/send"
		}

		firebaseMessenger = &FirebaseMessenger{
			serverKey: os.Getenv("FCM_SERVER_KEY"),
			endpoint:  endpoint,
			httpClient: &http.Client{
				Timeout: 30 * time.Second,
			},
		}
	})
	return firebaseMessenger
}

func (fm *FirebaseMessenger) SendToDevice(token string, notif PushNotification) (string, error) {
	payload := map[string]interface{}{
		"to": token,
		"notification": map[string]string{
			"title": notif.Title,
			"body":  notif.Body,
		},
		"data": notif.Data,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequest("POST", fm.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+fm.serverKey)

	resp, err := fm.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("FCM API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Success int `json:"success"`
		Failure int `json:"failure"`
		Results []struct {
			MessageID string `json:"message_id"`
			Error     string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}

	if result.Failure > 0 && len(result.Results) > 0 {
		fcmErr := result.Results[0].Error
		if fcmErr == "NotRegistered" || fcmErr == "InvalidRegistration" {
			return "", fmt.Errorf("Requested entity was not found (%s)", fcmErr)
		}
		return "", fmt.Errorf("FCM delivery error: %s", fcmErr)
	}

	if len(result.Results) > 0 {
		return result.Results[0].MessageID, nil
	}
	return "", nil
}
