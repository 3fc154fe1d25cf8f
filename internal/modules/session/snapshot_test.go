package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshots(t *testing.T) {
	sessionID := uuid.New()
	levels := []productLevel{
		{productID: uuid.New(), stock: 24},
		{productID: uuid.New(), stock: 0},
		{productID: uuid.New(), stock: 7},
	}

	snapshots := newSnapshots(sessionID, levels)
	require.Len(t, snapshots, 3)

	seen := map[uuid.UUID]bool{}
	for i, snap := range snapshots {
		assert.NotEqual(t, uuid.Nil, snap.ID)
		assert.False(t, seen[snap.ID], "snapshot ids must be distinct")
		seen[snap.ID] = true
		assert.Equal(t, sessionID, snap.SessionID)
		assert.Equal(t, levels[i].productID, snap.ProductID)
		assert.Equal(t, levels[i].stock, snap.InitialStock)
	}
}

func TestNewSnapshotsEmpty(t *testing.T) {
	assert.Empty(t, newSnapshots(uuid.New(), nil))
}
