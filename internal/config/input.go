package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/egpension/internal/authority"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of form and authority table files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		_, ok := dateutil.ParseYearMonth(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, ok := dateutil.ParseDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if _, ok := dateutil.ParseYearMonth(s); ok {
			return true
		}
		_, ok := dateutil.ParseDate(s)
		return ok
	})
	_ = v.RegisterValidation("lawtype", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseLawType(fl.Field().String())
		return err == nil
	})
	return &InputParser{validate: v}
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Value string `json:"value,omitempty"`
}

// FormError collects every field that failed validation.
type FormError struct {
	Fields []FieldError `json:"fields"`
}

func (e *FormError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s failed %q", f.Field, f.Rule)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// LoadFormFromFile loads a calculation form from a YAML or JSON file
func (ip *InputParser) LoadFormFromFile(filename string) (*domain.InsuranceDuesFormData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseForm(data, formatOf(filename))
}

// ParseForm decodes a form (format "json" or "yaml"), normalises the law
// type and validates it.
func (ip *InputParser) ParseForm(data []byte, format string) (*domain.InsuranceDuesFormData, error) {
	var form domain.InsuranceDuesFormData
	if err := decode(data, format, &form); err != nil {
		return nil, err
	}
	if err := ip.ValidateForm(&form); err != nil {
		return nil, err
	}
	return &form, nil
}

// ValidateForm checks the form's field rules and normalises its law type.
// Cross-field rules (period continuity, law scope) are left to the engine.
func (ip *InputParser) ValidateForm(form *domain.InsuranceDuesFormData) error {
	if form == nil {
		return fmt.Errorf("form is required")
	}
	if err := ip.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("form validation failed: %w", err)
		}
		fe := &FormError{}
		for _, v := range verrs {
			fe.Fields = append(fe.Fields, FieldError{
				Field: strings.TrimPrefix(v.Namespace(), "InsuranceDuesFormData."),
				Rule:  v.Tag(),
				Value: fmt.Sprint(v.Value()),
			})
		}
		return fe
	}
	law, _ := domain.ParseLawType(string(form.LawType))
	form.LawType = law
	return nil
}

// LoadTablesFromFile loads an authority table set from a YAML or JSON file.
// The file holds either {tables: [...]} or a bare list of tables.
func (ip *InputParser) LoadTablesFromFile(filename string) (*domain.TableSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseTables(data, formatOf(filename))
}

// ParseTables decodes an authority table set.
func (ip *InputParser) ParseTables(data []byte, format string) (*domain.TableSet, error) {
	var set domain.TableSet
	if err := decode(data, format, &set); err != nil {
		var list []domain.PensionTable
		if listErr := decode(data, format, &list); listErr != nil {
			return nil, err
		}
		set.Tables = list
	}
	if len(set.Tables) == 0 {
		return nil, fmt.Errorf("table file contains no tables")
	}
	for i, t := range set.Tables {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("table %d has no name", i)
		}
	}
	set.Reindex()
	return &set, nil
}

// ValidateTables reports data-quality issues in an authority table set:
// missing required tables, rows out of date order, overlapping assignment
// ranges and assignments that name a table the set does not have. None of
// them stop a calculation.
func (ip *InputParser) ValidateTables(set *domain.TableSet) []string {
	var issues []string
	for _, name := range []string{domain.MinimumPensionTableName, domain.CurrentBonusTableName} {
		if _, ok := set.Find(name); !ok {
			issues = append(issues, fmt.Sprintf("required table %q is missing", name))
		}
	}
	for i := range set.Tables {
		t := &set.Tables[i]
		if t.Name == domain.AssignmentTableName {
			continue
		}
		for _, issue := range authority.CheckOrdering(t) {
			issues = append(issues, issue.String())
		}
	}
	issues = append(issues, authority.CheckAssignmentOverlaps(set)...)

	if assignments, ok := set.Find(domain.AssignmentTableName); ok {
		for i, row := range assignments.Data {
			if len(row) < 3 {
				continue
			}
			n, ok := authority.TableNumber(row[2])
			if !ok {
				continue
			}
			if _, found := set.Find(domain.HistoricalTableName(n)); !found {
				issues = append(issues, fmt.Sprintf("%s: row %d names missing table %q",
					assignments.Name, i+1, domain.HistoricalTableName(n)))
			}
		}
	}
	return issues
}

func formatOf(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return "json"
	}
	return "yaml"
}

func decode(data []byte, format string, out any) error {
	switch format {
	case "json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}
