package waste

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Bio, Normalize("Biotonne"))
	assert.Equal(t, Rest, Normalize("Restabfall"))
	assert.Equal(t, Paper, Normalize("Blaue Tonne"))
	assert.Equal(t, Yellow, Normalize("Gelber Sack"))
	assert.Equal(t, ChristmasTree, Normalize("Weihnachtsbäume"))
	// unknown spellings pass through trimmed
	assert.Equal(t, "Sperrmüll", Normalize(" Sperrmüll "))
}

func TestSplitSummary(t *testing.T) {
	assert.Equal(t, []string{Bio, Rest}, SplitSummary("Bio, Rest"))
	assert.Equal(t, []string{Rest, Bio, Paper}, SplitSummary("Rest, Bio, Blaue Tonne"))
	assert.Equal(t, []string{Bio, Rest}, SplitSummary(" Bio ,  Rest "))
	assert.Empty(t, SplitSummary(""))
	assert.Equal(t, []string{"UnknownGarbage"}, SplitSummary("UnknownGarbage"))
}

func TestIsSupported(t *testing.T) {
	for _, category := range SupportedTypes() {
		assert.True(t, IsSupported(category))
	}
	assert.False(t, IsSupported("Sperrmüll"))
	for _, category := range DefaultSubscriptions() {
		assert.True(t, IsSupported(category))
	}
}
