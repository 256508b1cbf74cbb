package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatalogCacheSetGetInvalidate(t *testing.T) {
	cache := NewCatalogCache(1 * time.Hour)

	_, ok := cache.Get("chave")
	assert.False(t, ok)

	cache.Set("chave", []CatalogItem{{Name: "Dune Part Two"}})
	got, ok := cache.Get("chave")
	assert.True(t, ok)
	items := got.([]CatalogItem)
	assert.Len(t, items, 1)
	assert.Equal(t, "Dune Part Two", items[0].Name)

	cache.Invalidate("chave")
	_, ok = cache.Get("chave")
	assert.False(t, ok)
}

func TestCatalogCacheExpiry(t *testing.T) {
	cache := NewCatalogCache(10 * time.Millisecond)

	cache.Set("chave", "valor")
	_, ok := cache.Get("chave")
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = cache.Get("chave")
	assert.False(t, ok)
}

func TestParseM3U(t *testing.T) {
	playlist := `#EXTM3U
#EXTINF:-1 tvg-id="" tvg-name="Dune Part Two" tvg-logo="http://cdn.example.com/dune.jpg" group-title="Lançamentos 2024",Dune Part Two
http://example.com/movie/user/pass/1234.mp4
#EXTINF:-1 tvg-name="Breaking Bad S01E01" tvg-logo="" group-title="Séries",Breaking Bad S01E01
http://example.com/series/user/pass/5678.mp4

#EXTINF:-1,Sem Atributos
http://example.com/movie/user/pass/9999.mp4
`

	items := ParseM3U(strings.NewReader(playlist))
	assert.Len(t, items, 3)

	assert.Equal(t, "Dune Part Two", items[0].Name)
	assert.Equal(t, "http://cdn.example.com/dune.jpg", items[0].Logo)
	assert.Equal(t, "Lançamentos 2024", items[0].Category)
	assert.Equal(t, "http://example.com/movie/user/pass/1234.mp4", items[0].URL)
	assert.Equal(t, "movie", items[0].Type)

	assert.Equal(t, "Breaking Bad S01E01", items[1].Name)
	assert.Equal(t, "series", items[1].Type)

	assert.Equal(t, "Sem Atributos", items[2].Name)
	assert.Empty(t, items[2].Logo)
	assert.Empty(t, items[2].Category)
}

func TestParseM3UIgnoresDanglingExtinf(t *testing.T) {
	playlist := `#EXTM3U
#EXTINF:-1 group-title="Filmes",Sem URL
`
	items := ParseM3U(strings.NewReader(playlist))
	assert.Empty(t, items)
}
