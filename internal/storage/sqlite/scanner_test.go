package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = ts.data[i].(string)
		case *[]byte:
			*v = ts.data[i].([]byte)
		}
	}

	return nil
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows    []*TestScanner
	current int
	err     error
}

func (tr *TestRows) Next() bool {
	if tr.current >= len(tr.rows) {
		return false
	}
	tr.current++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.rows[tr.current-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func TestScanSlotRow(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *SlotRow
		expectError bool
	}{
		{
			name: "Valid row",
			scanner: &TestScanner{
				data: []interface{}{"tasks", []byte("[]"), "2024-01-15T10:00:00Z"},
			},
			expected: &SlotRow{
				Name:      "tasks",
				Data:      []byte("[]"),
				UpdatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "Malformed timestamp",
			scanner: &TestScanner{
				data: []interface{}{"tasks", []byte("[]"), "yesterday"},
			},
			expectError: true,
		},
		{
			name:        "Scan error",
			scanner:     &TestScanner{err: errors.New("scan failed")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanSlotRow(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Name, result.Name)
			assert.Equal(t, tt.expected.Data, result.Data)
			assert.True(t, tt.expected.UpdatedAt.Equal(result.UpdatedAt))
		})
	}
}

func TestScanSlotRows(t *testing.T) {
	t.Run("Multiple rows", func(t *testing.T) {
		rows := &TestRows{rows: []*TestScanner{
			{data: []interface{}{"archive", []byte("[]"), "2024-01-15T10:00:00Z"}},
			{data: []interface{}{"tasks", []byte("[]"), "2024-01-16T10:00:00Z"}},
		}}

		result, err := ScanSlotRows(rows)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "archive", result[0].Name)
		assert.Equal(t, "tasks", result[1].Name)
	})

	t.Run("Empty", func(t *testing.T) {
		result, err := ScanSlotRows(&TestRows{})
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Rows error", func(t *testing.T) {
		_, err := ScanSlotRows(&TestRows{err: errors.New("iteration failed")})
		assert.Error(t, err)
	})

	t.Run("Row scan error", func(t *testing.T) {
		rows := &TestRows{rows: []*TestScanner{{err: errors.New("bad row")}}}
		_, err := ScanSlotRows(rows)
		assert.Error(t, err)
	})
}
