package pipeline

import (
	"kosis-cpi/internal/model"
)

// Project keeps only columns from every record, in input order.
// It fails without a partial result if any record lacks a column.
func Project(records []model.GenericRecord, columns []string) (model.Table, error) {
	table := model.Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([]model.GenericRecord, 0, len(records)),
	}

	for i, rec := range records {
		if err := validateRecord(i, rec, columns); err != nil {
			return model.Table{}, err
		}

		row := make(model.GenericRecord, len(columns))
		for _, col := range columns {
			row[col] = rec[col]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
