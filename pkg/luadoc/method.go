package luadoc

import (
	"fmt"
	"regexp"
	"strings"
)

// MethodFields is everything collected for one method before it is
// rendered into a MethodDoc.
type MethodFields struct {
	Name         string
	Description  string
	Warning      string
	Tables       []TableSpec
	Prototypes   []string
	Parameters   []ParameterDoc
	Returned     []ParameterDoc
	HookCategory string
}

// MethodDoc is the documentation of a single Lua method.
type MethodDoc struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"short_description"`
	Warning          string         `json:"warning,omitempty"`
	Tables           string         `json:"tables,omitempty"`
	Prototypes       []string       `json:"prototypes"`
	Parameters       []ParameterDoc `json:"parameters"`
	Returned         []ParameterDoc `json:"returned"`
	HookCategory     string         `json:"hook_category,omitempty"`
	Documented       bool           `json:"documented"`
}

var singleParagraphRegex = regexp.MustCompile(`(?s)^<p>(.*)</p>$`)

// NewMethodDoc renders f. Hook values in the tables are rewritten before the
// tables are rendered, so f.Tables is modified when a category applies.
func NewMethodDoc(f MethodFields, hooks HookMap, convert Converter) (MethodDoc, error) {
	doc := MethodDoc{
		Name:         f.Name,
		Prototypes:   f.Prototypes,
		Parameters:   f.Parameters,
		Returned:     f.Returned,
		HookCategory: f.HookCategory,
	}

	if len(f.Tables) > 0 {
		if f.HookCategory != "" {
			RewriteHookValues(f.Tables, f.HookCategory, hooks)
		}
		tables, err := renderTables(f.Tables, convert)
		if err != nil {
			return MethodDoc{}, fmt.Errorf("method %s: %w", f.Name, err)
		}
		doc.Tables = tables
	}

	description, err := convert(f.Description)
	if err != nil {
		return MethodDoc{}, fmt.Errorf("method %s: failed to convert description: %w", f.Name, err)
	}
	doc.Description = description
	doc.ShortDescription = firstParagraph(description)
	doc.Documented = description != ""

	warning, err := convert(f.Warning)
	if err != nil {
		return MethodDoc{}, fmt.Errorf("method %s: failed to convert warning: %w", f.Name, err)
	}
	doc.Warning = unwrapParagraph(warning)

	return doc, nil
}

// firstParagraph returns the contents of the leading <p> element.
func firstParagraph(html string) string {
	before, _, _ := strings.Cut(html, "</p>")
	return strings.TrimPrefix(before, "<p>")
}

// unwrapParagraph strips the <p> wrapper when html is exactly one paragraph.
func unwrapParagraph(html string) string {
	m := singleParagraphRegex.FindStringSubmatch(html)
	if m == nil || strings.Contains(m[1], "<p>") {
		return html
	}
	return m[1]
}
