package domain

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Well-known authority table names.
const (
	MinimumPensionTableName = "جدول الحد الأدني للمعاش"
	CurrentBonusTableName   = "جدول العلاوات الدورية للمعاش"
	AssignmentTableName     = "جدول تعيين قيم المعاشات"
)

// HistoricalTableName returns the name of dated reference table N.
func HistoricalTableName(n int) string {
	return fmt.Sprintf("جدول رقم (%d)", n)
}

// PensionTable is one authority table as maintained by the tables editor.
// Column meaning depends on the table's purpose; rows are not guaranteed to
// be sorted.
type PensionTable struct {
	Name      string     `yaml:"name" json:"name"`
	Data      [][]string `yaml:"data" json:"data"`
	Notes     []string   `yaml:"notes,omitempty" json:"notes,omitempty"`
	IsVisible bool       `yaml:"is_visible" json:"isVisible"`
}

// TableSet is the read-only collection of authority tables handed to the engine.
type TableSet struct {
	Tables []PensionTable `yaml:"tables" json:"tables"`

	index       map[string]int
	fingerprint uint64
}

// NewTableSet builds an indexed table set. Later tables with a duplicate
// name shadow earlier ones.
func NewTableSet(tables []PensionTable) *TableSet {
	ts := &TableSet{Tables: tables}
	ts.Reindex()
	return ts
}

// Reindex rebuilds the name index and fingerprint. Call it after decoding a
// TableSet directly from a file or editing Tables, before sharing the set
// between goroutines.
func (ts *TableSet) Reindex() {
	ts.index = make(map[string]int, len(ts.Tables))
	for i, t := range ts.Tables {
		ts.index[t.Name] = i
	}
	ts.fingerprint = fingerprintOf(ts.Tables)
}

func fingerprintOf(tables []PensionTable) uint64 {
	h := fnv.New64a()
	for _, t := range tables {
		h.Write([]byte(t.Name))
		h.Write([]byte{0})
		for _, row := range t.Data {
			for _, cell := range row {
				h.Write([]byte(cell))
				h.Write([]byte{0x1f})
			}
			h.Write([]byte{0x1e})
		}
	}
	return h.Sum64()
}

// Find looks a table up by exact name. A set that was never indexed is
// scanned instead, so Find never writes to ts.
func (ts *TableSet) Find(name string) (*PensionTable, bool) {
	if ts == nil {
		return nil, false
	}
	if ts.index == nil {
		for i := len(ts.Tables) - 1; i >= 0; i-- {
			if ts.Tables[i].Name == name {
				return &ts.Tables[i], true
			}
		}
		return nil, false
	}
	i, ok := ts.index[name]
	if !ok {
		return nil, false
	}
	return &ts.Tables[i], true
}

// Names returns the table names sorted alphabetically.
func (ts *TableSet) Names() []string {
	if ts == nil {
		return nil
	}
	names := make([]string, 0, len(ts.Tables))
	for _, t := range ts.Tables {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// Fingerprint identifies the table contents for cache keys.
func (ts *TableSet) Fingerprint() uint64 {
	if ts == nil {
		return 0
	}
	if ts.index == nil {
		return fingerprintOf(ts.Tables)
	}
	return ts.fingerprint
}
