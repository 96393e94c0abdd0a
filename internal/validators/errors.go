package validators

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
	ErrInvalidForm     = errors.New("invalid form")
)

// FormErrors maps a form field name to the messages shown next to it.
type FormErrors map[string][]string

// Add appends message to the messages of field.
func (e FormErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// First returns the first message of field or "".
func (e FormErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e FormErrors) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalidForm.Error())
	for i, field := range slices.Sorted(maps.Keys(e)) {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[field], ", "))
	}
	return b.String()
}

// Is makes every FormErrors match ErrInvalidForm.
func (e FormErrors) Is(target error) bool {
	return target == ErrInvalidForm
}

func (e FormErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
