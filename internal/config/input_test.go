package config

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFormFromFile(t *testing.T) {
	parser := NewInputParser()

	t.Run("yaml", func(t *testing.T) {
		form, err := parser.LoadFormFromFile("../../test/testdata/form_periodic.yaml")
		require.NoError(t, err)
		assert.Equal(t, domain.LawType148, form.LawType)
		assert.Equal(t, "2021-01", form.EntitlementDate)
		assert.True(t, form.NormalBasicPension.Equal(decimalFromInt(1000)))
		require.Len(t, form.Deductions, 1)
		assert.Equal(t, domain.DeductionAlimony, form.Deductions[0].Category)
	})

	t.Run("json with short law type", func(t *testing.T) {
		form, err := parser.LoadFormFromFile("../../test/testdata/form_inheritance.json")
		require.NoError(t, err)
		assert.Equal(t, domain.LawType79, form.LawType, "law type is normalised")
		assert.Equal(t, domain.DuesInheritance, form.DuesType)
		require.Len(t, form.ArrearsPeriods, 2)
		assert.Equal(t, "2022-09", form.ArrearsPeriods[1].Start)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parser.LoadFormFromFile("nonexistent.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})
}

func TestParseForm_Validation(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name      string
		yaml      string
		wantField string
		wantRule  string
	}{
		{
			name:      "missing law type",
			yaml:      "entitlement_date: 2021-01\ndues_type: periodic\n",
			wantField: "law_type",
			wantRule:  "required",
		},
		{
			name:      "unknown law type",
			yaml:      "law_type: '63'\nentitlement_date: 2021-01\ndues_type: periodic\n",
			wantField: "law_type",
			wantRule:  "lawtype",
		},
		{
			name:      "entitlement not YYYY-MM",
			yaml:      "law_type: '148'\nentitlement_date: 01/2021\ndues_type: periodic\n",
			wantField: "entitlement_date",
			wantRule:  "yearmonth",
		},
		{
			name:      "unknown dues type",
			yaml:      "law_type: '148'\nentitlement_date: 2021-01\ndues_type: pension_transfer\n",
			wantField: "dues_type",
			wantRule:  "oneof",
		},
		{
			name:      "bad death date",
			yaml:      "law_type: '148'\nentitlement_date: 2021-01\ndues_type: inheritance\ndeath_date: 31/02/2022\n",
			wantField: "death_date",
			wantRule:  "day",
		},
		{
			name: "bad period start",
			yaml: "law_type: '148'\nentitlement_date: 2021-01\ndues_type: beneficiary_arrears\n" +
				"arrears_periods:\n  - {start: 'soon', end: '2021-05', percentage: 100}\n",
			wantField: "arrears_periods[0].start",
			wantRule:  "month",
		},
		{
			name: "repeated deduction category",
			yaml: "law_type: '148'\nentitlement_date: 2021-01\ndues_type: periodic\n" +
				"deductions:\n  - {category: loans, enabled: true, amount: 10}\n  - {category: loans, enabled: true, amount: 10}\n",
			wantField: "deductions",
			wantRule:  "unique",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseForm([]byte(tt.yaml), "yaml")
			require.Error(t, err)

			var fe *FormError
			require.True(t, errors.As(err, &fe), "got %v", err)
			require.NotEmpty(t, fe.Fields)
			assert.Equal(t, tt.wantField, fe.Fields[0].Field)
			assert.Equal(t, tt.wantRule, fe.Fields[0].Rule)
		})
	}
}

func TestParseForm_MalformedInput(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.ParseForm([]byte("{not json"), "json")
	assert.ErrorContains(t, err, "failed to parse JSON")

	_, err = parser.ParseForm([]byte("law_type: [unclosed"), "yaml")
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestExpandPath(t *testing.T) {
	t.Setenv("EGPENSION_TEST_DIR", "/srv/pension")
	assert.Equal(t, "/srv/pension/tables.yaml", ExpandPath("$EGPENSION_TEST_DIR/tables.yaml"))
	assert.Equal(t, "", ExpandPath(""))
	assert.NotContains(t, ExpandPath("~/tables.yaml"), "~")
}
