package validator

import (
	"strings"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
)

// MaxLocationIDLength bounds externally supplied location identifiers.
const MaxLocationIDLength = 20

// LocationID normalizes and validates an externally supplied location
// identifier. Only upper-cased ASCII letters, digits, '-' and '_' survive;
// everything else is rejected, never truncated or escaped. This must run
// before an identifier is stored, used as a lookup key or put into a feed
// request.
func LocationID(raw string) (entity.LocationID, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" || len(normalized) > MaxLocationIDLength {
		return "", errorz.ErrInvalidLocationID
	}
	for _, r := range normalized {
		if !isAllowedLocationIDRune(r) {
			return "", errorz.ErrInvalidLocationID
		}
	}
	return entity.LocationID(normalized), nil
}

func isAllowedLocationIDRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
