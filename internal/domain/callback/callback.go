// Package callback interprets inline-button payloads of the form
// "action:arg:...". Parsing is the only place payloads are taken apart;
// handlers receive a typed Action and never index into split results
// themselves.
package callback

import (
	"strings"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
)

type Kind string

const (
	KindEdit           Kind = "edit"
	KindDeleteLocation Kind = "delloc"
	KindAddCategory    Kind = "addcat"
	KindRemoveCategory Kind = "delcat"
	KindBack           Kind = "back"
)

// Fields the edit action can target.
const (
	FieldLocation = "location"
	FieldTime     = "time"
)

// ConfirmToken is the optional delloc argument produced by the confirmation
// keyboard.
const ConfirmToken = "confirm"

// Action is a validated button press.
type Action struct {
	Kind Kind
	Args []string
}

// Arg returns the i-th argument or "" when absent, so optional arguments
// never require a length check at the call site.
func (a Action) Arg(i int) string {
	if i >= 0 && i < len(a.Args) {
		return a.Args[i]
	}
	return ""
}

type arity struct {
	min, max int
}

var actions = map[Kind]arity{
	KindEdit:           {1, 1},
	KindDeleteLocation: {0, 1},
	KindAddCategory:    {1, 1},
	KindRemoveCategory: {1, 1},
	KindBack:           {0, 0},
}

// Parse validates a raw payload against the known actions and their
// arities. A payload with too few, too many or empty parts yields
// ErrMalformedCallback; a payload whose action token is not registered
// yields ErrUnknownAction. Parse never panics on any input.
func Parse(raw string) (Action, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Action{}, errorz.ErrMalformedCallback
	}

	parts := strings.Split(trimmed, ":")
	kind := Kind(parts[0])
	bounds, ok := actions[kind]
	if !ok {
		return Action{}, errorz.ErrUnknownAction
	}

	args := parts[1:]
	if len(args) < bounds.min || len(args) > bounds.max {
		return Action{}, errorz.ErrMalformedCallback
	}
	for _, arg := range args {
		if arg == "" {
			return Action{}, errorz.ErrMalformedCallback
		}
	}

	action := Action{Kind: kind, Args: args}
	if kind == KindEdit && args[0] != FieldLocation && args[0] != FieldTime {
		return Action{}, errorz.ErrMalformedCallback
	}
	return action, nil
}

// Data renders an action back into button payload form.
func Data(kind Kind, args ...string) string {
	if len(args) == 0 {
		return string(kind)
	}
	return string(kind) + ":" + strings.Join(args, ":")
}
