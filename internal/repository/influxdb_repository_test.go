package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ColdStore.wms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const latestCSV = "#datatype,string,long,dateTime:RFC3339,double,string,string,string\r\n" +
	"#group,false,false,false,false,true,true,true\r\n" +
	"#default,_result,,,,,,\r\n" +
	",result,table,_time,_value,_field,_measurement,room_id\r\n" +
	",,0,2026-10-19T10:00:00Z,-15.1,temperature,room_temperature,COLD-02\r\n" +
	",,1,2026-10-19T10:00:05Z,-18.4,temperature,room_temperature,COLD-01\r\n" +
	"\r\n"

type fakeInflux struct {
	mu     sync.Mutex
	writes []string
}

func (f *fakeInflux) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"influxdb","message":"ready for queries and writes","status":"pass","checks":[],"version":"v2.7.0","commit":"abc"}`))
	})
	mux.HandleFunc("/api/v2/write", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.writes = append(f.writes, string(body))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/v2/query", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte(latestCSV))
	})
	return mux
}

func newTestInflux(t *testing.T) (*fakeInflux, *InfluxDBRepository) {
	fake := &fakeInflux{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	repo := NewInfluxDBRepository(srv.URL, "token", "warehouse", "cold_storage", "", zap.NewNop())
	t.Cleanup(repo.Close)
	return fake, repo
}

func TestInfluxDBRepository_Ping(t *testing.T) {
	_, repo := newTestInflux(t)

	assert.NoError(t, repo.Ping(context.Background()))
}

func TestInfluxDBRepository_WriteReadings(t *testing.T) {
	fake, repo := newTestInflux(t)

	err := repo.WriteReadings(context.Background(), []models.TemperatureReading{
		{RoomID: "COLD-01", Temperature: -18.5, Time: time.Unix(1760000000, 0)},
		{RoomID: "COLD-02", Temperature: -15.25},
	})

	require.NoError(t, err)
	require.Len(t, fake.writes, 1)
	body := fake.writes[0]
	assert.Contains(t, body, "room_temperature,room_id=COLD-01 temperature=-18.5 1760000000000000000")
	assert.Contains(t, body, "room_temperature,room_id=COLD-02 temperature=-15.25")
}

func TestInfluxDBRepository_FetchTemperatures(t *testing.T) {
	_, repo := newTestInflux(t)

	readings, err := repo.FetchTemperatures(context.Background())

	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "COLD-01", readings[0].RoomID)
	assert.InDelta(t, -18.4, readings[0].Temperature, 1e-9)
	assert.Equal(t, "COLD-02", readings[1].RoomID)
	assert.Equal(t, time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC), readings[1].Time.UTC())
}

func TestLatestReadingsQuery(t *testing.T) {
	query := latestReadingsQuery("cold_storage", "-1h")

	assert.Contains(t, query, `from(bucket: "cold_storage")`)
	assert.Contains(t, query, "range(start: -1h)")
	assert.Contains(t, query, `r["_measurement"] == "room_temperature"`)
	assert.Contains(t, query, `group(columns: ["room_id"])`)
	assert.Contains(t, query, "last()")
}

func TestReadingFromValues(t *testing.T) {
	reading, ok := readingFromValues(map[string]interface{}{"room_id": "COLD-03", "_value": int64(-19)})
	require.True(t, ok)
	assert.Equal(t, models.TemperatureReading{RoomID: "COLD-03", Temperature: -19}, reading)

	_, ok = readingFromValues(map[string]interface{}{"_value": -19.0})
	assert.False(t, ok)

	_, ok = readingFromValues(map[string]interface{}{"room_id": "COLD-03", "_value": "warm"})
	assert.False(t, ok)
}
