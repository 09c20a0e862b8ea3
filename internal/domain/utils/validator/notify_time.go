package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
)

// NotifyTime validates a 24h "HH:MM" time of day and returns it in canonical
// zero-padded form. Reminders fire on full-hour buckets, so minutes are kept
// but the scheduler only ever matches ":00" values it wrote itself.
func NotifyTime(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.Parse("15:04", trimmed)
	if err != nil {
		return "", errorz.ErrInvalidNotifyTime
	}
	return fmt.Sprintf("%02d:%02d", parsed.Hour(), parsed.Minute()), nil
}
