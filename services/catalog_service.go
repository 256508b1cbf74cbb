package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const catalogCacheKey = "vod_catalog"

// CatalogItem é uma entrada da listagem VOD do provedor IPTV.
type CatalogItem struct {
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Category string `json:"category"`
	URL      string `json:"url"`
	Type     string `json:"type"` // movie | series
}

// CatalogService busca a listagem M3U do provedor e mantém o
// resultado no CatalogCache.
type CatalogService struct {
	cache      *CatalogCache
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
}

func NewCatalogService(cache *CatalogCache) *CatalogService {
	return &CatalogService{
		cache: cache,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:  os.Getenv("XTREAM_BASE_URL"),
		username: os.Getenv("XTREAM_USERNAME"),
		password: os.Getenv("XTREAM_PASSWORD"),
	}
}

// Authenticate valida credenciais no player_api do provedor.
func (cs *CatalogService) Authenticate(username, password string) error {
	if cs.baseURL == "" {
		return fmt.Errorf("XTREAM_BASE_URL is not set")
	}

	endpoint := fmt.Sprintf("%s/player_api.php?username=%s&password=%s",
		cs.baseURL, url.QueryEscape(username), url.QueryEscape(password))

	resp, err := cs.httpClient.Get(endpoint)
	if err != nil {
		return fmt.Errorf("error reaching provider: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %v", err)
	}

	var result struct {
		UserInfo struct {
			Auth int `json:"auth"`
		} `json:"user_info"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("error unmarshaling response: %v", err)
	}
	if result.UserInfo.Auth != 1 {
		return fmt.Errorf("credenciais inválidas no provedor")
	}
	return nil
}

// GetCatalog -> listagem VOD, do cache quando possível.
func (cs *CatalogService) GetCatalog() ([]CatalogItem, error) {
	if cached, ok := cs.cache.Get(catalogCacheKey); ok {
		if items, ok := cached.([]CatalogItem); ok {
			return items, nil
		}
	}

	items, err := cs.fetchCatalog()
	if err != nil {
		return nil, err
	}
	cs.cache.Set(catalogCacheKey, items)
	return items, nil
}

// Refresh -> invalida o cache e busca de novo.
func (cs *CatalogService) Refresh() ([]CatalogItem, error) {
	cs.cache.Invalidate(catalogCacheKey)
	return cs.GetCatalog()
}

func (cs *CatalogService) fetchCatalog() ([]CatalogItem, error) {
	if cs.baseURL == "" {
		return nil, fmt.Errorf("XTREAM_BASE_URL is not set")
	}

	endpoint := fmt.Sprintf("%s/get.php?username=%s&password=%s&type=m3u_plus&output=ts",
		cs.baseURL, url.QueryEscape(cs.username), url.QueryEscape(cs.password))

	resp, err := cs.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("error fetching playlist: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return ParseM3U(resp.Body), nil
}

// ParseM3U lê uma playlist #EXTM3U linha a linha. Cada #EXTINF traz
// atributos (tvg-logo, group-title) e o nome após a vírgula; a linha
// seguinte sem # é a URL do item.
func ParseM3U(r io.Reader) []CatalogItem {
	var items []CatalogItem
	var current *CatalogItem

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF") {
			item := CatalogItem{
				Logo:     extractAttr(line, "tvg-logo"),
				Category: extractAttr(line, "group-title"),
			}
			if idx := strings.LastIndex(line, ","); idx != -1 {
				item.Name = strings.TrimSpace(line[idx+1:])
			}
			current = &item
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		if current != nil {
			current.URL = line
			current.Type = "movie"
			if strings.Contains(line, "/series/") {
				current.Type = "series"
			}
			items = append(items, *current)
			current = nil
		}
	}

	return items
}

func extractAttr(line, attr string) string {
	marker := attr + `="`
	start := strings.Index(line, marker)
	if start == -1 {
		return ""
	}
	rest := line[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end == -1 {
		return ""
	}
	return rest[:end]
}
