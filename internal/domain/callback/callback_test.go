package callback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
		args []string
	}{
		{"edit:location", KindEdit, []string{"location"}},
		{"edit:time", KindEdit, []string{"time"}},
		{"delloc", KindDeleteLocation, nil},
		{"delloc:confirm", KindDeleteLocation, []string{"confirm"}},
		{"addcat:Bio", KindAddCategory, []string{"Bio"}},
		{"delcat:Papier", KindRemoveCategory, []string{"Papier"}},
		{"back", KindBack, nil},
		{" back ", KindBack, nil},
	}
	for _, tt := range tests {
		action, err := Parse(tt.raw)
		require.NoError(t, err, "payload %q", tt.raw)
		assert.Equal(t, tt.kind, action.Kind)
		if tt.args == nil {
			assert.Empty(t, action.Args)
		} else {
			assert.Equal(t, tt.args, action.Args)
		}
	}
}

func TestParseMissingArguments(t *testing.T) {
	// fewer parts than the action requires must fail cleanly, not panic
	for _, raw := range []string{"edit", "addcat", "delcat", "edit:", "addcat:"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, errorz.ErrMalformedCallback, "payload %q", raw)
	}
}

func TestParseTooManyArguments(t *testing.T) {
	for _, raw := range []string{"back:1", "edit:location:extra", "addcat:Bio:Rest", "delloc:confirm:x"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, errorz.ErrMalformedCallback, "payload %q", raw)
	}
}

func TestParseUnknownAction(t *testing.T) {
	for _, raw := range []string{"nuke", "subscribe:Bio", "EDIT:location"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, errorz.ErrUnknownAction, "payload %q", raw)
	}
}

func TestParseUnknownEditField(t *testing.T) {
	_, err := Parse("edit:password")
	assert.ErrorIs(t, err, errorz.ErrMalformedCallback)
}

func TestParseEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", ":"} {
		_, err := Parse(raw)
		assert.Error(t, err, "payload %q", raw)
	}
}

func TestArg(t *testing.T) {
	action, err := Parse("delloc")
	require.NoError(t, err)
	assert.Equal(t, "", action.Arg(0))

	action, err = Parse("delloc:confirm")
	require.NoError(t, err)
	assert.Equal(t, ConfirmToken, action.Arg(0))
	assert.Equal(t, "", action.Arg(1))
}

func TestData(t *testing.T) {
	assert.Equal(t, "back", Data(KindBack))
	assert.Equal(t, "addcat:Bio", Data(KindAddCategory, "Bio"))

	// round trip through Parse
	action, err := Parse(Data(KindEdit, FieldTime))
	require.NoError(t, err)
	assert.Equal(t, KindEdit, action.Kind)
}
