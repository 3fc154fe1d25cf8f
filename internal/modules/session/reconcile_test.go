package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusShortage, Classify(-3))
	assert.Equal(t, StatusShortage, Classify(-1))
	assert.Equal(t, StatusCorrect, Classify(0))
	assert.Equal(t, StatusSurplus, Classify(1))
	assert.Equal(t, StatusSurplus, Classify(5))
}

func TestBuildReconciliation(t *testing.T) {
	rows := BuildReconciliation([]ReconciliationInput{
		{ProductID: uuid.New(), ProductName: "Cerveza", InitialStock: intPtr(10), Sold: 3, CurrentStock: 7},
		{ProductID: uuid.New(), ProductName: "Refresco", InitialStock: intPtr(10), Sold: 4, CurrentStock: 5},
		{ProductID: uuid.New(), ProductName: "Botana", InitialStock: intPtr(10), Sold: 2, CurrentStock: 9},
	})
	require.Len(t, rows, 3)

	correct := rows[0]
	assert.Equal(t, 7, correct.ExpectedStock)
	assert.Equal(t, 0, correct.Difference)
	assert.Equal(t, StatusCorrect, correct.Status)

	shortage := rows[1]
	assert.Equal(t, 6, shortage.ExpectedStock)
	assert.Equal(t, -1, shortage.Difference)
	assert.Equal(t, StatusShortage, shortage.Status)

	surplus := rows[2]
	assert.Equal(t, 8, surplus.ExpectedStock)
	assert.Equal(t, 1, surplus.Difference)
	assert.Equal(t, StatusSurplus, surplus.Status)
}

func TestBuildReconciliationEstimatedBaseline(t *testing.T) {
	// No snapshot row: the baseline is derived as current + sold, so the
	// row classifies Correcto by construction and is flagged as estimated.
	rows := BuildReconciliation([]ReconciliationInput{
		{ProductID: uuid.New(), ProductName: "Agua", InitialStock: nil, Sold: 3, CurrentStock: 7},
	})
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Estimated)
	assert.Equal(t, 10, row.InitialStock)
	assert.Equal(t, 7, row.ExpectedStock)
	assert.Equal(t, 0, row.Difference)
	assert.Equal(t, StatusCorrect, row.Status)
}

func TestBuildReconciliationIdempotent(t *testing.T) {
	inputs := []ReconciliationInput{
		{ProductID: uuid.New(), ProductName: "Cerveza", InitialStock: intPtr(24), Sold: 10, CurrentStock: 13},
		{ProductID: uuid.New(), ProductName: "Agua", Sold: 2, CurrentStock: 6},
	}

	first := BuildReconciliation(inputs)
	second := BuildReconciliation(inputs)
	assert.Equal(t, first, second, "reconciliation must be repeatable without side effects")
}
