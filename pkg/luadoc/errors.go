package luadoc

import "fmt"

// MalformedTagError reports a doc tag that is missing a field its record
// cannot be built without, such as the name of a non-variadic @param.
type MalformedTagError struct {
	Tag   string
	Field string
	Text  string
}

func (e *MalformedTagError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("malformed %s tag: missing %s in %q", e.Tag, e.Field, e.Text)
	}
	return fmt.Sprintf("malformed %s tag: missing %s", e.Tag, e.Field)
}
