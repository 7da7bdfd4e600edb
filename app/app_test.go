package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcard-sheet/config"
	"idcard-sheet/models"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Port:            "8080",
		Environment:     "test",
		PDFPageSize:     "A4",
		School:          models.SchoolInfo{Name: "Quaid-e-Azam Public Sec School", ShortName: "QUAIDIAN"},
		Geometry:        models.DefaultCardGeometry(),
		ArtworkDir:      t.TempDir(),
		ArtworkCacheDir: t.TempDir(),
	}
}

func TestInitialize_Routes(t *testing.T) {
	application, err := Initialize(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer application.Close()

	server := httptest.NewServer(application.Handler)
	defer server.Close()

	client := server.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := client.Get(server.URL + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	form := url.Values{
		"name":               {"Ayesha Siddiqa"},
		"fatherName":         {"Muhammad Siddiq"},
		"className":          {"VII-A"},
		"registrationNumber": {"1001"},
	}
	resp, err = client.PostForm(server.URL+"/cards", form)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.Get(server.URL + "/sheet?format=html")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))

	resp, err = client.Get(server.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInitialize_InvalidGeometry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Geometry = models.CardGeometry{WidthMM: 100, HeightMM: 85.6}

	_, err := Initialize(context.Background(), cfg)
	assert.Error(t, err)
}
