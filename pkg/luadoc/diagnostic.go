package luadoc

import "fmt"

// DiagnosticKind classifies an advisory produced while parsing.
type DiagnosticKind string

const (
	// MissingHookBackingTable means HookTypeTable exports a category whose
	// events table has no matching *_EVENTS_LIST macro.
	MissingHookBackingTable DiagnosticKind = "missing-hook-backing-table"
	// UnbracketedCustomType means a parameter type is neither a Lua type nor
	// written as [TypeName].
	UnbracketedCustomType DiagnosticKind = "unbracketed-custom-type"
)

// Diagnostic is a non-fatal finding. Parsing always continues past one.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Source  string         `json:"source,omitempty"`
	Line    int            `json:"line,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	switch {
	case d.Source != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d: %s", d.Source, d.Line, d.Message)
	case d.Source != "":
		return fmt.Sprintf("%s: %s", d.Source, d.Message)
	}
	return d.Message
}

// at stamps a batch of diagnostics with their position.
func at(diags []Diagnostic, source string, line int) []Diagnostic {
	for i := range diags {
		if diags[i].Source == "" {
			diags[i].Source = source
		}
		if diags[i].Line == 0 {
			diags[i].Line = line
		}
	}
	return diags
}
