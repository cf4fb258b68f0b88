package sqlite

import "time"

// SlotRow is one row of the slots table.
type SlotRow struct {
	Name      string
	Data      []byte
	UpdatedAt time.Time
}
