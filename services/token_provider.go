package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// HTTPTokenProvider pede um token novo ao serviço de registro de
// dispositivos quando o armazenado expirou. Só o app cliente consegue
// emitir um token FCM, então a renovação é uma chamada ao backend que
// conversa com os dispositivos, não uma operação local.
type HTTPTokenProvider struct {
	endpoint   string
	httpClient *http.Client
}

// NewTokenRefresher monta o provider a partir do ambiente. Sem
// FCM_TOKEN_REFRESH_URL a renovação fica desligada e o Dispatcher
// descarta o push na primeira falha de token.
func NewTokenRefresher() TokenProvider {
	endpoint := os.Getenv("FCM_TOKEN_REFRESH_URL")
	if endpoint == "" {
		return nil
	}
	return NewHTTPTokenProvider(endpoint)
}

func NewHTTPTokenProvider(endpoint string) *HTTPTokenProvider {
	return &HTTPTokenProvider{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// RefreshToken -> POST {userId} => 200 {"token": "..."}
func (p *HTTPTokenProvider) RefreshToken(userID string) (string, error) {
	jsonData, err := json.Marshal(map[string]string{"userId": userID})
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequest("POST", p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("refresh endpoint returned empty token for %s", userID)
	}

	return result.Token, nil
}
