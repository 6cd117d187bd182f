package luadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/elunadoc/pkg/markup"
)

func TestNewClassDoc_SortsMethods(t *testing.T) {
	methods := []MethodDoc{
		{Name: "Zeta", Description: "first zeta"},
		{Name: "Alpha"},
		{Name: "Zeta", Description: "second zeta"},
		{Name: "Mid"},
	}

	doc, err := NewClassDoc("Unit", "A unit.\n\nInherits all methods from: [Object]\n", methods, markup.ToHTML)
	require.NoError(t, err)

	names := make([]string, len(doc.Methods))
	for i, m := range doc.Methods {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta", "Zeta"}, names)
	assert.Equal(t, "first zeta", doc.Methods[2].Description)
	assert.Equal(t, "second zeta", doc.Methods[3].Description)

	assert.Equal(t, "A unit.", doc.ShortDescription)
	assert.Equal(t, "Zeta", methods[0].Name, "input slice must not be reordered")
}

func TestNewClassDoc_DocumentationFlags(t *testing.T) {
	documented := MethodDoc{Name: "A", Documented: true}
	undocumented := MethodDoc{Name: "B"}

	tests := []struct {
		name             string
		methods          []MethodDoc
		wantFully        bool
		wantFullyUndocum bool
	}{
		{"no methods", nil, true, true},
		{"all documented", []MethodDoc{documented, documented}, true, false},
		{"none documented", []MethodDoc{undocumented, undocumented}, false, true},
		{"mixed", []MethodDoc{documented, undocumented}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewClassDoc("Unit", "", tt.methods, markup.ToHTML)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFully, doc.FullyDocumented)
			assert.Equal(t, tt.wantFullyUndocum, doc.FullyUndocumented)
		})
	}
}
