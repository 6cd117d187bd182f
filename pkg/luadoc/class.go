package luadoc

import (
	"fmt"
	"slices"
	"strings"
)

// ClassDoc is the documentation of one class: a *Methods.h file.
type ClassDoc struct {
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	ShortDescription  string      `json:"short_description"`
	Methods           []MethodDoc `json:"methods"`
	FullyDocumented   bool        `json:"fully_documented"`
	FullyUndocumented bool        `json:"fully_undocumented"`
}

// NewClassDoc renders the class description and sorts methods by name,
// keeping source order between equal names.
func NewClassDoc(name, description string, methods []MethodDoc, convert Converter) (ClassDoc, error) {
	html, err := convert(description)
	if err != nil {
		return ClassDoc{}, fmt.Errorf("class %s: failed to convert description: %w", name, err)
	}

	sorted := slices.Clone(methods)
	slices.SortStableFunc(sorted, func(a, b MethodDoc) int {
		return strings.Compare(a.Name, b.Name)
	})

	doc := ClassDoc{
		Name:              name,
		Description:       html,
		ShortDescription:  firstParagraph(html),
		Methods:           sorted,
		FullyDocumented:   true,
		FullyUndocumented: true,
	}
	for _, m := range sorted {
		if m.Documented {
			doc.FullyUndocumented = false
		} else {
			doc.FullyDocumented = false
		}
	}

	return doc, nil
}
