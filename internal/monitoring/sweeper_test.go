package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwambugu/glassauth/internal/models"
)

type stubEventService struct {
	pruned []time.Time
}

func (s *stubEventService) Record(ctx context.Context, eventType, level, message, email string) {}

func (s *stubEventService) GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	return nil, nil
}

func (s *stubEventService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.pruned = append(s.pruned, cutoff)
	return 0, nil
}

func TestNewSweeper_InvalidExpression(t *testing.T) {
	_, err := NewSweeper(&stubEventService{}, "not a cron expr", time.Hour)
	assert.Error(t, err)
}

func TestSweep_CutoffHonorsRetention(t *testing.T) {
	stub := &stubEventService{}
	s, err := NewSweeper(stub, "@daily", 24*time.Hour)
	require.NoError(t, err)

	s.sweep()

	require.Len(t, stub.pruned, 1)
	expected := time.Now().Add(-24 * time.Hour)
	assert.WithinDuration(t, expected, stub.pruned[0], time.Minute)
}
