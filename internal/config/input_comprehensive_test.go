package config

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestLoadTablesFromFile(t *testing.T) {
	parser := NewInputParser()
	set, err := parser.LoadTablesFromFile("../../test/testdata/tables.yaml")
	require.NoError(t, err)

	for _, name := range []string{
		domain.MinimumPensionTableName,
		domain.CurrentBonusTableName,
		domain.AssignmentTableName,
		domain.HistoricalTableName(1),
		domain.HistoricalTableName(2),
	} {
		_, ok := set.Find(name)
		assert.True(t, ok, "table %q should be loaded", name)
	}
	assert.NotZero(t, set.Fingerprint())
	assert.Empty(t, parser.ValidateTables(set), "sample tables are clean")
}

func TestParseTables(t *testing.T) {
	parser := NewInputParser()

	t.Run("bare json list", func(t *testing.T) {
		data := `[{"name": "جدول العلاوات الدورية للمعاش", "data": [["01/07/2019", "15", "", "150", ""]]}]`
		set, err := parser.ParseTables([]byte(data), "json")
		require.NoError(t, err)
		tbl, ok := set.Find(domain.CurrentBonusTableName)
		require.True(t, ok)
		assert.Len(t, tbl.Data, 1)
	})

	t.Run("wrapped yaml", func(t *testing.T) {
		data := "tables:\n  - name: x\n    data: [[\"01/07/2019\", \"\", \"900\"]]\n"
		set, err := parser.ParseTables([]byte(data), "yaml")
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, set.Names())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := parser.ParseTables([]byte("tables: []\n"), "yaml")
		assert.ErrorContains(t, err, "no tables")
	})

	t.Run("unnamed table", func(t *testing.T) {
		_, err := parser.ParseTables([]byte("tables:\n  - data: []\n"), "yaml")
		assert.ErrorContains(t, err, "has no name")
	})
}

func TestValidateTables(t *testing.T) {
	parser := NewInputParser()
	set := domain.NewTableSet([]domain.PensionTable{
		{
			Name: domain.CurrentBonusTableName,
			Data: [][]string{
				{"01/07/2019", "15", "", "150", ""},
				{"01/07/2017", "15", "", "150", ""},
			},
		},
		{
			Name: domain.AssignmentTableName,
			Data: [][]string{
				{"01/07/1975", "30/06/1990", "جدول رقم (1)"},
				{"01/07/1989", "30/06/1995", "جدول رقم (1)"},
			},
		},
	})

	issues := parser.ValidateTables(set)
	assert.Contains(t, issues, `required table "`+domain.MinimumPensionTableName+`" is missing`)
	assertAnyContains(t, issues, "precedes previous row")
	assertAnyContains(t, issues, "row 2 overlaps row 1")
	assertAnyContains(t, issues, "names missing table")
}

func assertAnyContains(t *testing.T, issues []string, substr string) {
	t.Helper()
	for _, s := range issues {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("no issue contains %q in %v", substr, issues)
}
