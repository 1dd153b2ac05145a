package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSRMDistance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/77.594600,12.971600;77.600000,12.980000", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("overview"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":1843.7,"duration":260.1}]}`))
	}))
	defer server.Close()

	d := NewOSRMDistance(models.MatchingConfig{DistanceURL: server.URL, DistanceTimeout: time.Second}, nil)

	meters, err := d.Distance(context.Background(),
		models.Location{Latitude: 12.9716, Longitude: 77.5946},
		models.Location{Latitude: 12.98, Longitude: 77.60})

	require.NoError(t, err)
	assert.Equal(t, 1843.7, meters)
}

func TestOSRMDistance_NoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer server.Close()

	d := NewOSRMDistance(models.MatchingConfig{DistanceURL: server.URL, DistanceTimeout: time.Second}, nil)

	_, err := d.Distance(context.Background(), models.Location{Latitude: 1, Longitude: 1}, models.Location{Latitude: 2, Longitude: 2})

	assert.ErrorIs(t, err, errNoRoute)
}

func TestOSRMDistance_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"InvalidQuery"}`))
	}))
	defer server.Close()

	d := NewOSRMDistance(models.MatchingConfig{DistanceURL: server.URL, DistanceTimeout: time.Second}, nil)

	_, err := d.Distance(context.Background(), models.Location{Latitude: 1, Longitude: 1}, models.Location{Latitude: 2, Longitude: 2})

	assert.ErrorContains(t, err, "failed to get route")
}
