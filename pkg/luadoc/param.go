package luadoc

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RawParameter is a @param or @return tag as written in the source.
// Empty strings mean the field was absent.
type RawParameter struct {
	Tag          string
	Name         string
	DataType     string
	Description  string
	DefaultValue string
}

// ParameterDoc is the documentation of one parameter or returned value.
type ParameterDoc struct {
	Name         string `json:"name"`
	DataType     string `json:"data_type"`
	Description  string `json:"description"`
	DefaultValue string `json:"default_value,omitempty"`
}

// numberRange is the span of values a C++ numeric type accepts from Lua.
// A decimal range accepts every number.
type numberRange struct {
	decimal bool
	min     int64
	max     uint64
}

// numericTypes maps C++ number types to what Lua callers may pass. int is
// documented as 32-bit, and the signed minimums stay symmetric with the
// maximum except for int64.
var numericTypes = map[string]numberRange{
	"float":      {decimal: true},
	"double":     {decimal: true},
	"int":        {min: -math.MaxInt32, max: math.MaxInt32},
	"int8":       {min: -math.MaxInt8, max: math.MaxInt8},
	"uint8":      {max: math.MaxUint8},
	"int16":      {min: -math.MaxInt16, max: math.MaxInt16},
	"uint16":     {max: math.MaxUint16},
	"int32":      {min: -math.MaxInt32, max: math.MaxInt32},
	"uint32":     {max: math.MaxUint32},
	"int64":      {min: math.MinInt64, max: math.MaxInt64},
	"uint64":     {max: math.MaxUint64},
	"ObjectGuid": {max: math.MaxUint64},
}

var luaTypes = map[string]bool{
	"nil":      true,
	"boolean":  true,
	"number":   true,
	"string":   true,
	"table":    true,
	"function": true,
	"...":      true,
}

func (r numberRange) note() string {
	if r.decimal {
		return "<p><em>Valid numbers</em>: all decimal numbers.</p>"
	}
	return message.NewPrinter(language.English).Sprintf("<p><em>Valid numbers</em>: integers from %d to %d.</p>", r.min, r.max)
}

// NewParameterDoc normalizes a raw tag into documentation form: the
// description is capitalized, terminated and converted to HTML, and C++
// types are mapped onto Lua types.
func NewParameterDoc(raw RawParameter, convert Converter) (ParameterDoc, []Diagnostic, error) {
	doc := ParameterDoc{
		Name:         raw.Name,
		DataType:     raw.DataType,
		DefaultValue: raw.DefaultValue,
	}

	if doc.DataType == "..." {
		doc.Name = "..."
	} else if doc.Name == "" {
		return ParameterDoc{}, nil, &MalformedTagError{Tag: tagName(raw.Tag), Field: "name", Text: raw.DataType}
	}

	if raw.Description != "" {
		html, err := convert(capitalize(raw.Description) + ". ")
		if err != nil {
			return ParameterDoc{}, nil, fmt.Errorf("failed to convert description of %s: %w", doc.Name, err)
		}
		doc.Description = html
	}

	var diags []Diagnostic
	if r, ok := numericTypes[doc.DataType]; ok {
		doc.Description += r.note()
		switch doc.DataType {
		case "int64", "uint64":
			doc.DataType = "[" + doc.DataType + "]"
		default:
			doc.DataType = "number"
		}
	} else if doc.DataType == "bool" {
		doc.DataType = "boolean"
	} else if !luaTypes[doc.DataType] && !strings.HasPrefix(doc.DataType, "[") {
		diags = append(diags, Diagnostic{
			Kind:    UnbracketedCustomType,
			Message: fmt.Sprintf("missing brackets [] around the data type name: `%s`", doc.DataType),
		})
	}

	return doc, diags, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func tagName(tag string) string {
	if tag == "" {
		return "@param"
	}
	return tag
}
