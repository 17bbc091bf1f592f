package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/uptime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObservationIndex struct {
	storeIDs     []string
	maxTimestamp time.Time
}

func (f *fakeObservationIndex) StoreIDs(ctx context.Context) ([]string, error) {
	return f.storeIDs, nil
}

func (f *fakeObservationIndex) MaxTimestamp(ctx context.Context) (time.Time, error) {
	return f.maxTimestamp, nil
}

func (f *fakeObservationIndex) Observations(ctx context.Context, storeID string, from, to time.Time) ([]domain.Observation, error) {
	return nil, nil
}

type fakeCalculator struct {
	badStores map[string]error
}

func (f *fakeCalculator) StoreMetrics(ctx context.Context, storeID string, ref time.Time) (domain.StoreMetrics, error) {
	if err, ok := f.badStores[storeID]; ok {
		return domain.StoreMetrics{}, err
	}
	return domain.StoreMetrics{StoreID: storeID, UptimeLastHour: 60}, nil
}

func TestGenerate_OneRowPerStoreSorted(t *testing.T) {
	obs := &fakeObservationIndex{
		storeIDs:     []string{"store-c", "store-a", "store-b"},
		maxTimestamp: time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC),
	}
	gen := NewGenerator(obs, &fakeCalculator{}, 3, zap.NewNop())

	rows, err := gen.Generate(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "store-a", rows[0].StoreID)
	assert.Equal(t, "store-b", rows[1].StoreID)
	assert.Equal(t, "store-c", rows[2].StoreID)
}

func TestGenerate_SkipsUnknownTimezoneStores(t *testing.T) {
	obs := &fakeObservationIndex{
		storeIDs:     []string{"store-a", "store-bad", "store-c"},
		maxTimestamp: time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC),
	}
	calc := &fakeCalculator{badStores: map[string]error{
		"store-bad": fmt.Errorf("store store-bad: %w", uptime.ErrUnknownTimezone),
	}}
	gen := NewGenerator(obs, calc, 2, zap.NewNop())

	rows, err := gen.Generate(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "store-a", rows[0].StoreID)
	assert.Equal(t, "store-c", rows[1].StoreID)
}

func TestGenerate_OtherErrorsAbort(t *testing.T) {
	obs := &fakeObservationIndex{
		storeIDs:     []string{"store-a", "store-bad"},
		maxTimestamp: time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC),
	}
	calc := &fakeCalculator{badStores: map[string]error{
		"store-bad": errors.New("connection reset"),
	}}
	gen := NewGenerator(obs, calc, 2, zap.NewNop())

	_, err := gen.Generate(context.Background())

	assert.Error(t, err)
}

func TestGenerate_NoStores(t *testing.T) {
	obs := &fakeObservationIndex{
		storeIDs:     nil,
		maxTimestamp: time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC),
	}
	gen := NewGenerator(obs, &fakeCalculator{}, 4, zap.NewNop())

	rows, err := gen.Generate(context.Background())

	require.NoError(t, err)
	assert.Len(t, rows, 0)
}
