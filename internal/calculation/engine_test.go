package calculation

import (
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.NotNil(t, engine.Now, "Should initialize clock")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_LogsMissingTables(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	data := engine.Progression(ProgressionInput{
		LawType:         domain.LawType148,
		EntitlementDate: month(2021, time.January),
	}, domain.NewTableSet(nil))

	assert.True(t, data.IsEmpty())
	assert.Contains(t, logger.messages, "WARN: progression: bonus table %q not found")
}

func TestCalculationEngine_ProgressionCache(t *testing.T) {
	engine := NewCalculationEngine()
	set := testTables()
	input := ProgressionInput{
		LawType:         domain.LawType148,
		EntitlementDate: month(2021, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("1000")},
	}

	first := engine.Progression(input, set)
	require.False(t, first.IsEmpty())
	first.Steps[0].PensionAfter = d("1")

	second := engine.Progression(input, set)
	assertDecimal(t, "1000", second.Steps[0].PensionAfter, "cached value must not be shared with callers")

	// A different table set never reuses the cached entry.
	other := testTables()
	other.Tables[0].Data[2][2] = "950"
	other.Reindex()
	assert.NotEqual(t, set.Fingerprint(), other.Fingerprint())

	engine.ResetCache()
	third := engine.Progression(input, set)
	assert.Equal(t, len(second.Steps), len(third.Steps))
}

func TestCalculationEngine_ConcurrentProgression(t *testing.T) {
	engine := NewCalculationEngine()
	set := testTables()
	input := ProgressionInput{
		LawType:         domain.LawType108,
		EntitlementDate: month(2015, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("400")},
	}

	var wg sync.WaitGroup
	results := make([]domain.ProgressionData, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Progression(input, set)
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.True(t, r.Summary.CurrentPension.Equal(results[0].Summary.CurrentPension))
	}
}

func TestCalculationEngine_PensionAt(t *testing.T) {
	engine := NewCalculationEngine()
	input := ProgressionInput{
		LawType:         domain.LawType148,
		EntitlementDate: month(2021, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("1000"), InjuryBasic: d("100")},
	}

	p, err := engine.PensionAt(month(2023, time.December), input, testTables(), true)
	require.NoError(t, err)
	assertDecimal(t, "1978.6", p)

	_, err = engine.PensionAt(month(2023, time.December), input, domain.NewTableSet(nil), true)
	assert.ErrorIs(t, err, ErrNoProgressionData)
}

func TestCalculationEngine_ProgressionForForm(t *testing.T) {
	engine := NewCalculationEngine()
	data, err := engine.ProgressionForForm(law148Form(domain.DuesPeriodic), testTables())
	require.NoError(t, err)
	assertDecimal(t, "1378.6", data.Summary.CurrentPension)

	form := law148Form(domain.DuesPeriodic)
	form.EntitlementDate = "2019-05"
	_, err = engine.ProgressionForForm(form, testTables())
	var serr *LawScopeError
	assert.ErrorAs(t, err, &serr)
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) add(msg string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, msg)
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.add("DEBUG: " + format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.add("INFO: " + format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.add("WARN: " + format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.add("ERROR: " + format)
}

func TestCalculationEngine_ValidateForm(t *testing.T) {
	ce := testEngine()

	assert.NoError(t, ce.ValidateForm(law148Form(domain.DuesPeriodic)))

	form := law148Form(domain.DuesInheritance)
	err := ce.ValidateForm(form)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "death_date", verr.Field)
}
