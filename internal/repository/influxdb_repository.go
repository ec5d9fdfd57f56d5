package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ColdStore.wms/internal/models"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"go.uber.org/zap"
)

const (
	temperatureMeasurement = "room_temperature"
	temperatureField       = "temperature"
	roomTag                = "room_id"
)

// InfluxDBRepository stores cold-room readings in InfluxDB and serves the
// latest reading per room as a TemperatureSource.
type InfluxDBRepository struct {
	client   influxdb2.Client
	org      string
	bucket   string
	lookback string
	logger   *zap.Logger
}

// NewInfluxDBRepository creates a new InfluxDBRepository. Only readings newer
// than lookback (a Flux duration such as "-1h") are considered current.
func NewInfluxDBRepository(url, token, org, bucket, lookback string, logger *zap.Logger) *InfluxDBRepository {
	if lookback == "" {
		lookback = "-1h"
	}
	return &InfluxDBRepository{
		client:   influxdb2.NewClient(url, token),
		org:      org,
		bucket:   bucket,
		lookback: lookback,
		logger:   logger,
	}
}

var _ TemperatureSource = (*InfluxDBRepository)(nil)

// Ping checks the connection health.
func (r *InfluxDBRepository) Ping(ctx context.Context) error {
	health, err := r.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		msg := ""
		if health.Message != nil {
			msg = *health.Message
		}
		return fmt.Errorf("InfluxDB health check failed: %s", msg)
	}

	r.logger.Info("Connected to InfluxDB", zap.String("bucket", r.bucket))
	return nil
}

// EnsureBucket creates the readings bucket when it does not exist yet.
func (r *InfluxDBRepository) EnsureBucket(ctx context.Context) error {
	exists, err := r.bucketExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	org, err := r.client.OrganizationsAPI().FindOrganizationByName(ctx, r.org)
	if err != nil {
		return fmt.Errorf("error finding organization '%s': %w", r.org, err)
	}
	if org == nil {
		return fmt.Errorf("organization '%s' not found", r.org)
	}

	if _, err := r.client.BucketsAPI().CreateBucketWithName(ctx, org, r.bucket); err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", r.bucket, err)
	}

	r.logger.Info("Bucket created", zap.String("bucket", r.bucket))
	return nil
}

func (r *InfluxDBRepository) bucketExists(ctx context.Context) (bool, error) {
	_, err := r.client.BucketsAPI().FindBucketByName(ctx, r.bucket)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return false, nil
		}
		return false, fmt.Errorf("error checking bucket existence: %w", err)
	}
	return true, nil
}

// WriteReadings writes one point per reading. A zero Time means now.
func (r *InfluxDBRepository) WriteReadings(ctx context.Context, readings []models.TemperatureReading) error {
	writeAPI := r.client.WriteAPIBlocking(r.org, r.bucket)

	now := time.Now()
	points := make([]*write.Point, 0, len(readings))
	for _, reading := range readings {
		ts := reading.Time
		if ts.IsZero() {
			ts = now
		}
		points = append(points, influxdb2.NewPoint(
			temperatureMeasurement,
			map[string]string{roomTag: reading.RoomID},
			map[string]interface{}{temperatureField: reading.Temperature},
			ts,
		))
	}

	if err := writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("error writing to InfluxDB: %w", err)
	}

	r.logger.Debug("Readings written to InfluxDB",
		zap.String("bucket", r.bucket),
		zap.Int("point_count", len(points)),
	)
	return nil
}

// FetchTemperatures returns the latest reading of every room, ordered by room.
func (r *InfluxDBRepository) FetchTemperatures(ctx context.Context) ([]models.TemperatureReading, error) {
	query := latestReadingsQuery(r.bucket, r.lookback)

	result, err := r.client.QueryAPI(r.org).Query(ctx, query)
	if err != nil {
		r.logger.Warn("InfluxDB query failed", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("%w: error querying InfluxDB: %v", ErrUnavailable, err)
	}
	defer result.Close()

	var readings []models.TemperatureReading
	for result.Next() {
		record := result.Record()
		reading, ok := readingFromValues(record.Values())
		if !ok {
			r.logger.Warn("Skipping malformed reading", zap.Any("values", record.Values()))
			continue
		}
		reading.Time = record.Time()
		readings = append(readings, reading)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("%w: query error: %v", ErrUnavailable, result.Err())
	}

	sort.Slice(readings, func(i, j int) bool { return readings[i].RoomID < readings[j].RoomID })
	return readings, nil
}

// Close releases the client.
func (r *InfluxDBRepository) Close() {
	r.client.Close()
}

func latestReadingsQuery(bucket, lookback string) string {
	return fmt.Sprintf(`from(bucket: "%s")
	|> range(start: %s)
	|> filter(fn: (r) => r["_measurement"] == "%s")
	|> filter(fn: (r) => r["_field"] == "%s")
	|> group(columns: ["%s"])
	|> last()`, bucket, lookback, temperatureMeasurement, temperatureField, roomTag)
}

func readingFromValues(values map[string]interface{}) (models.TemperatureReading, bool) {
	roomID, ok := values[roomTag].(string)
	if !ok || roomID == "" {
		return models.TemperatureReading{}, false
	}

	var temperature float64
	switch v := values["_value"].(type) {
	case float64:
		temperature = v
	case int64:
		temperature = float64(v)
	default:
		return models.TemperatureReading{}, false
	}

	return models.TemperatureReading{RoomID: roomID, Temperature: temperature}, true
}
