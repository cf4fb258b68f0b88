package sqlite

import "fmt"

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSlotRow scans a single slot from a database row
func ScanSlotRow(scanner Scanner) (*SlotRow, error) {
	row := &SlotRow{}
	var updatedAt string

	if err := scanner.Scan(&row.Name, &row.Data, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for slot %q: %w", row.Name, err)
	}
	row.UpdatedAt = t

	return row, nil
}

// ScanSlotRows scans multiple slots from database rows
func ScanSlotRows(rows Rows) ([]*SlotRow, error) {
	var result []*SlotRow
	for rows.Next() {
		row, err := ScanSlotRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
