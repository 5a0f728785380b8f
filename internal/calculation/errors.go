package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
)

var (
	// ErrNoProgressionData is returned when the progression could not be
	// built, usually because a required authority table is missing.
	ErrNoProgressionData = errors.New("no data to compute periodic pension")

	// ErrUnknownLaw is returned for a law type no calculator handles.
	ErrUnknownLaw = errors.New("unknown law type")

	// ErrUnknownDuesType is returned for an unsupported dues type.
	ErrUnknownDuesType = errors.New("unknown dues type")
)

// ValidationError pinpoints the input field (and arrears period, 1-based,
// when relevant) that made the calculation abort.
type ValidationError struct {
	Field  string
	Period int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Period > 0 {
		return fmt.Sprintf("arrears period %d: %s %s", e.Period, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(reason, args...)}
}

func invalidPeriod(period int, field, reason string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Period: period, Reason: fmt.Sprintf(reason, args...)}
}

// LawScopeError reports an entitlement date outside the law's operative
// window, naming the law that applies instead when there is one.
type LawScopeError struct {
	Law        domain.LawType
	Date       time.Time
	Applicable domain.LawType
	Reason     string
}

func (e *LawScopeError) Error() string {
	msg := fmt.Sprintf("entitlement date %s is outside the scope of %s: %s",
		dateutil.MonthKey(e.Date), e.Law.DisplayName(), e.Reason)
	if e.Applicable != "" {
		msg += fmt.Sprintf("; use %s instead", e.Applicable.DisplayName())
	}
	return msg
}
