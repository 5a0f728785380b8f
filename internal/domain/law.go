package domain

import (
	"fmt"
	"strings"
)

// LawType identifies the pension law a pensioner's entitlement falls under.
type LawType string

const (
	LawType79  LawType = "79-1975"
	LawType108 LawType = "108-1976"
	LawType112 LawType = "112-1980"
	LawType148 LawType = "148-2019"
	// LawTypeSadat is the hidden legacy alias for the Sadat pension track.
	// It is computed by the Law 112 calculator with its own fixed-value table.
	LawTypeSadat LawType = "sadat"
)

// VisibleLawTypes lists the law types offered to users.
var VisibleLawTypes = []LawType{LawType79, LawType108, LawType112, LawType148}

// LawVariant is the calculator a law type dispatches to.
type LawVariant int

const (
	Law79 LawVariant = iota + 1
	Law108
	Law112
	Law148
)

func (v LawVariant) String() string {
	switch v {
	case Law79:
		return "Law 79/1975"
	case Law108:
		return "Law 108/1976"
	case Law112:
		return "Law 112/1980"
	case Law148:
		return "Law 148/2019"
	default:
		return fmt.Sprintf("LawVariant(%d)", int(v))
	}
}

// ParseLawType normalises user input such as "79", "law 108" or "112-1980".
func ParseLawType(s string) (LawType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "law")
	v = strings.TrimSpace(v)
	switch v {
	case "79", "79-1975", "79/1975":
		return LawType79, nil
	case "108", "108-1976", "108/1976":
		return LawType108, nil
	case "112", "112-1980", "112/1980":
		return LawType112, nil
	case "148", "148-2019", "148/2019":
		return LawType148, nil
	case "sadat", "السادات":
		return LawTypeSadat, nil
	}
	return "", fmt.Errorf("unknown law type %q", s)
}

// Variant returns the calculator for the law type.
func (l LawType) Variant() (LawVariant, bool) {
	switch l {
	case LawType79:
		return Law79, true
	case LawType108:
		return Law108, true
	case LawType112, LawTypeSadat:
		return Law112, true
	case LawType148:
		return Law148, true
	}
	return 0, false
}

// IsSadat reports whether the law type is the Sadat sub-variant of Law 112.
func (l LawType) IsSadat() bool { return l == LawTypeSadat }

// DisplayName is the Arabic label used in reports.
func (l LawType) DisplayName() string {
	switch l {
	case LawType79:
		return "قانون 79 لسنة 1975"
	case LawType108:
		return "قانون 108 لسنة 1976"
	case LawType112:
		return "قانون 112 لسنة 1980"
	case LawType148:
		return "قانون 148 لسنة 2019"
	case LawTypeSadat:
		return "معاش السادات"
	}
	return string(l)
}
