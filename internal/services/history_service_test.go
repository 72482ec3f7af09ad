// internal/services/history_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryInvalidRange(t *testing.T) {
	svc := NewHistoryService(nil)

	_, err := svc.Get("Chanel", "Handbags", "", "2W")
	assert.Error(t, err)
}

func TestHistoryDefaultRange(t *testing.T) {
	svc := NewHistoryService(nil)

	history, err := svc.Get("Chanel", "Handbags", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "6M", history.Range)
}

func TestRecordObservationWithoutDatabase(t *testing.T) {
	svc := NewHistoryService(nil)

	// Callers fire this from a goroutine and log the error; it must surface
	// the failure rather than panic
	err := svc.RecordObservation("Chanel", "Handbags", "", 1200, 900, 1500, 6)
	assert.Error(t, err)
}

func TestHistorySimulatedWithoutDatabase(t *testing.T) {
	svc := NewHistoryService(nil)

	history, err := svc.Get("Louis Vuitton", "Handbags", "Neverfull", "3M")
	assert.NoError(t, err)
	assert.True(t, history.SimulatedData)
	assert.Len(t, history.Points, 30)

	for _, p := range history.Points {
		assert.Positive(t, p.Price)
		assert.Less(t, p.Min, p.Price)
		assert.Greater(t, p.Max, p.Price)
		assert.Positive(t, p.Volume)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, p.Date)
	}
}

func TestHistorySimulatedDeterministic(t *testing.T) {
	svc := NewHistoryService(nil)

	a, err := svc.Get("Gucci", "Shoes", "", "1Y")
	assert.NoError(t, err)
	b, err := svc.Get("Gucci", "Shoes", "", "1Y")
	assert.NoError(t, err)

	// Prices repeat across queries; only the sample dates move with the clock
	for i := range a.Points {
		assert.Equal(t, a.Points[i].Price, b.Points[i].Price)
		assert.Equal(t, a.Points[i].Volume, b.Points[i].Volume)
	}
}

func TestHistorySimulatedTracksBrandBaseline(t *testing.T) {
	svc := NewHistoryService(nil)

	hermes, err := svc.Get("Hermès", "Handbags", "", "6M")
	assert.NoError(t, err)
	unknown, err := svc.Get("Unknown Atelier", "Handbags", "", "6M")
	assert.NoError(t, err)

	// Hermès baseline is 10000, the generic baseline 800; even with noise the
	// series never cross
	for i := range hermes.Points {
		assert.Greater(t, hermes.Points[i].Price, unknown.Points[i].Price)
	}
}

func TestHistoryRangeNormalization(t *testing.T) {
	svc := NewHistoryService(nil)

	history, err := svc.Get("Chanel", "Handbags", "", " 1m ")
	assert.NoError(t, err)
	assert.Equal(t, "1M", history.Range)
}
