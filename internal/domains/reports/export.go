// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reports

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var exportHeader = []string{
	"order_id", "customer_id", "ecosystem_id", "catalog_item_id",
	"quantity", "total_cents", "status", "created_at",
}

// WriteOrdersCSV serialises export rows, header first.
func WriteOrdersCSV(w io.Writer, rows []ExportRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.OrderID,
			row.CustomerID,
			row.EcosystemID,
			row.CatalogItemID,
			strconv.Itoa(row.Quantity),
			strconv.FormatInt(row.TotalCents, 10),
			row.Status,
			row.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
