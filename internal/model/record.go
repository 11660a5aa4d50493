// Package model defines the core data structures for the milkrun application.
package model

// Canonical manifest column names. Input files may carry extra columns; those
// are preserved on the Record and passed through to exports untouched.
const (
	ColCustomerNumber = "CustomerNumber"
	ColAccountName    = "AccountName"
	ColAddress        = "Address"
	ColArea           = "Area"
	ColItemID         = "ItemID"
	ColDescription    = "Description"
	ColQuantity       = "Quantity"
	ColCompleted      = "Completed"
	ColCompletedDate  = "CompletedDate"
)

// ExportColumns is the stable field order for exported records.
var ExportColumns = []string{
	ColCustomerNumber,
	ColAccountName,
	ColAddress,
	ColArea,
	ColItemID,
	ColDescription,
	ColQuantity,
	ColCompleted,
	ColCompletedDate,
}

// Record is one flat manifest row: a field map plus the column order it was
// read with, so unknown columns survive a read/export round trip.
type Record struct {
	Fields  map[string]string
	Columns []string
}

// NewRecord creates an empty record with the given column order.
func NewRecord(columns []string) Record {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Record{
		Fields:  make(map[string]string, len(columns)),
		Columns: cols,
	}
}

// Get returns the named field, or "" when absent.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Set assigns a field value, appending the column if it is new to this record.
func (r *Record) Set(name, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	if _, ok := r.Fields[name]; !ok {
		if !containsColumn(r.Columns, name) {
			r.Columns = append(r.Columns, name)
		}
	}
	r.Fields[name] = value
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
