package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ColdStore.wms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func upstream(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/temperatures", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"room_id":"COLD-01","temperature":-18.2},{"room_id":"COLD-02","temperature":-14.9}]`))
	})
	mux.HandleFunc("/api/inventory", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"sku":"ICE-001","name":"Ice Cream Vanilla","batch":"B-202510","expiry":"2026-12-01","qty":50,"location":"RACK-A1"}]`))
	})
	mux.HandleFunc("/api/locations", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/broken/temperatures", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSource_FetchTemperatures(t *testing.T) {
	srv := upstream(t)
	source := NewHTTPSource(srv.URL+"/api", time.Second, zap.NewNop())

	readings, err := source.FetchTemperatures(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.TemperatureReading{
		{RoomID: "COLD-01", Temperature: -18.2},
		{RoomID: "COLD-02", Temperature: -14.9},
	}, readings)
}

func TestHTTPSource_FetchInventory(t *testing.T) {
	srv := upstream(t)
	source := NewHTTPSource(srv.URL+"/api", time.Second, zap.NewNop())

	items, err := source.FetchInventory(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ICE-001", items[0].SKU)
	assert.Equal(t, 50, items[0].Qty)
}

func TestHTTPSource_ErrorStatus(t *testing.T) {
	srv := upstream(t)
	source := NewHTTPSource(srv.URL+"/api", time.Second, zap.NewNop())

	_, err := source.FetchLocations(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPSource_InvalidJSON(t *testing.T) {
	srv := upstream(t)
	source := NewHTTPSource(srv.URL+"/broken", time.Second, zap.NewNop())

	_, err := source.FetchTemperatures(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := upstream(t)
	url := srv.URL
	srv.Close()
	source := NewHTTPSource(url, time.Second, zap.NewNop())

	_, err := source.FetchInventory(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

type staticTemperatures []models.TemperatureReading

func (s staticTemperatures) FetchTemperatures(context.Context) ([]models.TemperatureReading, error) {
	return s, nil
}

func TestWithTemperatureSource(t *testing.T) {
	base := instantMock()
	temps := staticTemperatures{{RoomID: "COLD-09", Temperature: -17}}

	source := WithTemperatureSource(base, temps)

	readings, err := source.FetchTemperatures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.TemperatureReading(temps), readings)

	locations, err := source.FetchLocations(context.Background())
	require.NoError(t, err)
	assert.Len(t, locations, 6)
}
