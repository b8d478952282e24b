package salesreport

// Row is one line item of the flattened report. Number and the transaction
// columns are only shown on the first row of a transaction.
type Row struct {
	Number      int
	First       bool
	Transaction Transaction
	Product     string
	Qty         float64
	Subtotal    float64
	// Placeholder marks the single row of a transaction without line items.
	Placeholder bool
}

// Flatten expands transactions into one row per line item. A transaction
// without line items still gets one placeholder row.
func Flatten(items []Transaction) []Row {
	rows := make([]Row, 0, len(items))
	for i, t := range items {
		if len(t.Details) == 0 {
			rows = append(rows, Row{Number: i + 1, First: true, Transaction: t, Product: "-", Placeholder: true})
			continue
		}
		for j, d := range t.Details {
			rows = append(rows, Row{
				Number:      i + 1,
				First:       j == 0,
				Transaction: t,
				Product:     d.ProductName(),
				Qty:         d.Qty.Float(),
				Subtotal:    d.Subtotal.Float(),
			})
		}
	}
	return rows
}
