package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
)

func TestLocationID(t *testing.T) {
	t.Run("accepts allowed charset unchanged", func(t *testing.T) {
		id, err := LocationID("STANDORT-42_A")
		require.NoError(t, err)
		assert.Equal(t, entity.LocationID("STANDORT-42_A"), id)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		id, err := LocationID("  standort7 ")
		require.NoError(t, err)
		assert.Equal(t, entity.LocationID("STANDORT7"), id)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := LocationID("   ")
		assert.ErrorIs(t, err, errorz.ErrInvalidLocationID)
	})

	t.Run("rejects overlong input", func(t *testing.T) {
		_, err := LocationID(strings.Repeat("A", MaxLocationIDLength+1))
		assert.ErrorIs(t, err, errorz.ErrInvalidLocationID)
	})

	t.Run("rejects characters outside the allowlist", func(t *testing.T) {
		for _, raw := range []string{
			"LOC 1",
			"LOC;DROP TABLE users",
			"LOC?x=1",
			"LOC%20",
			"LÖC",
			"LOC\n42",
		} {
			_, err := LocationID(raw)
			assert.ErrorIs(t, err, errorz.ErrInvalidLocationID, "input %q", raw)
		}
	})
}

func TestNotifyTime(t *testing.T) {
	t.Run("accepts and pads valid times", func(t *testing.T) {
		got, err := NotifyTime("6:00")
		require.NoError(t, err)
		assert.Equal(t, "06:00", got)

		got, err = NotifyTime(" 18:30 ")
		require.NoError(t, err)
		assert.Equal(t, "18:30", got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, raw := range []string{"", "25:00", "18:61", "tomorrow", "18.00"} {
			_, err := NotifyTime(raw)
			assert.ErrorIs(t, err, errorz.ErrInvalidNotifyTime, "input %q", raw)
		}
	})
}
