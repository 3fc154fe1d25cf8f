package session

// Classify maps a stock difference to its reconciliation status.
func Classify(difference int) string {
	switch {
	case difference < 0:
		return StatusShortage
	case difference > 0:
		return StatusSurplus
	default:
		return StatusCorrect
	}
}

// BuildReconciliation derives per-product reconciliation rows from raw
// inputs. For products without a snapshot (added mid-session, or the
// snapshot insert failed) the baseline is estimated as current + sold,
// which assumes no shrinkage before the product was first seen. Such rows
// always classify Correcto and are flagged Estimated.
//
// Pure and idempotent: identical inputs produce identical output.
func BuildReconciliation(inputs []ReconciliationInput) []ProductReconciliation {
	rows := make([]ProductReconciliation, 0, len(inputs))
	for _, in := range inputs {
		row := ProductReconciliation{
			ProductID:    in.ProductID,
			ProductName:  in.ProductName,
			Sold:         in.Sold,
			CurrentStock: in.CurrentStock,
		}
		if in.InitialStock != nil {
			row.InitialStock = *in.InitialStock
		} else {
			row.InitialStock = in.CurrentStock + in.Sold
			row.Estimated = true
		}
		row.ExpectedStock = row.InitialStock - row.Sold
		row.Difference = row.CurrentStock - row.ExpectedStock
		row.Status = Classify(row.Difference)
		rows = append(rows, row)
	}
	return rows
}
