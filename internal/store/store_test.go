package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	ctx := context.Background()
	require.NoError(t, s.RecordLoad(ctx, LoadRecord{Platforms: 2}))
	s.IncrSearchStats(ctx, true)
	loads, err := s.RecentLoads(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, loads)
	tot, err := s.GetTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Totals{}, tot)
}
