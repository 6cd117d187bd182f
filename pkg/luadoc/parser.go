// Package luadoc extracts Lua API documentation from the doc comments of
// Eluna method headers.
//
// A header is read one line at a time by a Parser. Each line is matched
// against the tags that may legally follow the previous one; the first
// match wins. A line that fits none of them resets the parser, so stray or
// malformed comments anywhere in a header are skipped instead of failing
// the file. A method is emitted when its C++ signature (int Name() is
// reached, and a ClassDoc is assembled once the input is exhausted.
package luadoc

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/open-cli-collective/elunadoc/pkg/markup"
)

// Converter turns doc comment text into HTML.
type Converter func(text string) (string, error)

// DefaultGlobalClass is the class whose methods are free functions.
const DefaultGlobalClass = "Global"

// DefaultFileSuffix is stripped from a header's file name to get its class.
const DefaultFileSuffix = "Methods.h"

// Options configures a Parser.
type Options struct {
	// GlobalClass names the class documented without a receiver.
	// Defaults to DefaultGlobalClass.
	GlobalClass string
	// Hooks resolves @hook table values. May be nil.
	Hooks HookMap
	// Convert renders text to HTML. Defaults to markup.ToHTML.
	Convert Converter
	// FileSuffix is stripped from file names by ParseFile.
	// Defaults to DefaultFileSuffix.
	FileSuffix string
}

func (o Options) withDefaults() Options {
	if o.GlobalClass == "" {
		o.GlobalClass = DefaultGlobalClass
	}
	if o.Convert == nil {
		o.Convert = markup.ToHTML
	}
	if o.FileSuffix == "" {
		o.FileSuffix = DefaultFileSuffix
	}
	return o
}

// lineKind identifies the tag or comment part a line was matched as.
type lineKind int

const (
	kindNone lineKind = iota
	kindClassStart
	kindClassBody
	kindClassEnd
	kindMethodStart
	kindBody
	kindHook
	kindTable
	kindTableColumns
	kindTableValues
	kindWarning
	kindParam
	kindReturn
	kindProto
	kindCommentEnd
	kindSignature
)

var kindNames = [...]string{
	kindNone:         "none",
	kindClassStart:   "class-start",
	kindClassBody:    "class-body",
	kindClassEnd:     "class-end",
	kindMethodStart:  "method-start",
	kindBody:         "body",
	kindHook:         "@hook",
	kindTable:        "@table",
	kindTableColumns: "@columns",
	kindTableValues:  "@values",
	kindWarning:      "@warning",
	kindParam:        "@param",
	kindReturn:       "@return",
	kindProto:        "@proto",
	kindCommentEnd:   "comment-end",
	kindSignature:    "signature",
}

func (k lineKind) String() string {
	return kindNames[k]
}

// linePatterns are anchored at the start of the line only; trailing text is
// ignored.
var linePatterns = [...]*regexp.Regexp{
	kindClassStart: regexp.MustCompile(`^\s*/\*\*\*`),
	kindClassBody:  regexp.MustCompile(`^\s*\*\s*(.*)`),
	kindClassEnd:   regexp.MustCompile(`^\s*\*/`),

	kindMethodStart: regexp.MustCompile(`^\s*/\*\*`),
	// Also matches every tag line, so it is always tried last.
	kindBody: regexp.MustCompile(`^\s*\s?\*\s?(.*)`),

	kindHook:         regexp.MustCompile(`^\s*\*\s@hook\s+(\w+)`),
	kindTable:        regexp.MustCompile(`^\s*\*\s@table`),
	kindTableColumns: regexp.MustCompile(`^\s*\*\s@columns\s*\[(.+)\]`),
	kindTableValues:  regexp.MustCompile(`^\s*\*\s@values\s*\[(.+?)\]`),
	kindWarning:      regexp.MustCompile(`^\s*\*\s*@warning\s+(.+)`),
	// type, optional name, optional "= default", optional ": description"
	kindParam: regexp.MustCompile(`^\s*\*\s@param\s([^\s]+)\s(\w+)?(?:\s=\s([^\s:]+))?(?:\s:\s(.+))?`),
	// type, name, optional ": description"
	kindReturn: regexp.MustCompile(`^\s*\*\s@return\s([\[\]\w]+)\s(\w+)(?:\s:\s(.+))?`),
	// optional "returns = ", optional "(args)"
	kindProto: regexp.MustCompile(`^\s*\*\s@proto\s([\w\s,]+)?(?:=\s)?(?:\(([\w\s,]+)\))?`),

	kindCommentEnd: regexp.MustCompile(`^\s*\*/`),
	kindSignature:  regexp.MustCompile(`^\s*int\s(\w+)\s*\(`),
}

var (
	methodTags = []lineKind{kindHook, kindTable, kindWarning, kindParam, kindReturn, kindProto, kindCommentEnd, kindBody}
	valueTags  = []lineKind{kindHook, kindTableValues, kindTable, kindWarning, kindParam, kindReturn, kindCommentEnd, kindBody}
)

// successors lists, in matching order, the kinds that may follow k.
func successors(k lineKind) []lineKind {
	switch k {
	case kindNone:
		return []lineKind{kindClassStart, kindMethodStart, kindSignature}
	case kindClassStart, kindClassBody:
		return []lineKind{kindClassEnd, kindClassBody}
	case kindClassEnd:
		return nil
	case kindMethodStart, kindBody, kindProto, kindHook:
		return methodTags
	case kindTable:
		return []lineKind{kindHook, kindTable, kindTableColumns, kindWarning, kindParam, kindReturn, kindCommentEnd, kindBody}
	case kindTableColumns:
		return []lineKind{kindHook, kindTableValues, kindWarning, kindParam, kindReturn, kindCommentEnd, kindBody}
	case kindTableValues, kindWarning:
		return valueTags
	case kindParam:
		return []lineKind{kindHook, kindTable, kindWarning, kindParam, kindReturn, kindCommentEnd, kindBody}
	case kindReturn:
		return []lineKind{kindHook, kindReturn, kindCommentEnd}
	case kindCommentEnd:
		return []lineKind{kindSignature}
	case kindSignature:
		return nil
	}
	panic(fmt.Sprintf("luadoc: unknown line kind %d", k))
}

// prototype is an explicit @proto line waiting for its method name.
type prototype struct {
	returns string
	class   string
	args    string
}

func (p prototype) format(method string) string {
	if p.class == "" {
		return fmt.Sprintf("%s%s(%s)", p.returns, method, p.args)
	}
	return fmt.Sprintf("%s%s:%s(%s)", p.returns, p.class, method, p.args)
}

// block is the state collected for the method being documented. A new
// block replaces it on every reset; emission moves its slices into the
// MethodDoc.
type block struct {
	description  string
	warning      string
	hookCategory string
	params       []ParameterDoc
	returned     []ParameterDoc
	tables       []TableSpec
	prototypes   []prototype
}

// Parser is the per-file state machine. It is not safe for concurrent use;
// run one Parser per file.
type Parser struct {
	className string
	source    string
	opts      Options

	last  lineKind
	block block
	line  int

	classDescription strings.Builder
	methods          []MethodDoc
	diagnostics      []Diagnostic
}

// NewParser returns a Parser for the methods of className. source names the
// input in diagnostics and errors.
func NewParser(className, source string, opts Options) *Parser {
	return &Parser{
		className: className,
		source:    source,
		opts:      opts.withDefaults(),
	}
}

// Feed parses the next line. Errors are fatal for the file: they report a
// tag whose record cannot be built.
func (p *Parser) Feed(line string) error {
	p.line++
	line = strings.TrimRight(line, "\r\n")

	for _, kind := range successors(p.last) {
		m := linePatterns[kind].FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if err := p.handle(kind, m); err != nil {
			return fmt.Errorf("%s:%d: %w", p.source, p.line, err)
		}
		if kind == kindSignature {
			p.reset()
		} else {
			p.last = kind
		}
		return nil
	}

	p.reset()
	return nil
}

func (p *Parser) reset() {
	p.last = kindNone
	p.block = block{}
}

func (p *Parser) handle(kind lineKind, m []string) error {
	b := &p.block

	switch kind {
	case kindNone, kindClassStart, kindClassEnd, kindMethodStart, kindCommentEnd:
		// Boundaries only.
	case kindClassBody:
		p.classDescription.WriteString(m[1] + "\n")
	case kindBody:
		b.description += m[1] + "\n"
	case kindHook:
		b.hookCategory = strings.ToLower(m[1])
	case kindTable:
		b.tables = append(b.tables, TableSpec{Columns: []string{}, Values: [][]Cell{}})
	case kindTableColumns:
		if len(b.tables) > 0 {
			b.tables[len(b.tables)-1].Columns = parseColumns(m[1])
		}
	case kindTableValues:
		if len(b.tables) > 0 {
			t := &b.tables[len(b.tables)-1]
			t.Values = append(t.Values, parseRow(m[1]))
		}
	case kindWarning:
		b.warning += m[1]
	case kindParam:
		doc, err := p.parameter(RawParameter{Tag: "@param", DataType: m[1], Name: m[2], DefaultValue: m[3], Description: m[4]})
		if err != nil {
			return err
		}
		b.params = append(b.params, doc)
	case kindReturn:
		doc, err := p.parameter(RawParameter{Tag: "@return", DataType: m[1], Name: m[2], Description: m[3]})
		if err != nil {
			return err
		}
		b.returned = append(b.returned, doc)
	case kindProto:
		b.prototypes = append(b.prototypes, p.explicitPrototype(m[1], m[2]))
	case kindSignature:
		return p.emit(m[1])
	default:
		panic(fmt.Sprintf("luadoc: unhandled line kind %s", kind))
	}

	return nil
}

func (p *Parser) parameter(raw RawParameter) (ParameterDoc, error) {
	doc, diags, err := NewParameterDoc(raw, p.opts.Convert)
	if err != nil {
		return ParameterDoc{}, err
	}
	p.diagnostics = append(p.diagnostics, at(diags, p.source, p.line)...)
	return doc, nil
}

func (p *Parser) explicitPrototype(returns, args string) prototype {
	proto := prototype{}
	if returns != "" {
		proto.returns = returns + "= "
	}
	if args != "" {
		proto.args = " " + args + " "
	}
	if p.className != p.opts.GlobalClass {
		proto.class = p.className
	}
	return proto
}

// emit builds the MethodDoc for the current block.
func (p *Parser) emit(name string) error {
	b := p.block

	var prototypes []string
	if len(b.prototypes) == 0 {
		prototypes = p.generatePrototypes(name, b.params, b.returned)
	} else {
		for _, proto := range b.prototypes {
			prototypes = append(prototypes, proto.format(name))
		}
	}

	doc, err := NewMethodDoc(MethodFields{
		Name:         name,
		Description:  b.description,
		Warning:      b.warning,
		Tables:       b.tables,
		Prototypes:   prototypes,
		Parameters:   b.params,
		Returned:     b.returned,
		HookCategory: b.hookCategory,
	}, p.opts.Hooks, p.opts.Convert)
	if err != nil {
		return err
	}

	p.methods = append(p.methods, doc)
	return nil
}

// generatePrototypes builds call examples when no @proto was given. When
// defaulted parameters only trail the required ones, one prototype is made
// for the required prefix and one more for each optional parameter;
// otherwise a single prototype lists every parameter.
func (p *Parser) generatePrototypes(name string, params, returned []ParameterDoc) []string {
	lastRequired := 0
	hasDefault := false
	simpleOrder := true

	for i, param := range params {
		if param.DefaultValue != "" {
			hasDefault = true
			continue
		}
		lastRequired = i
		if hasDefault {
			simpleOrder = false
		}
	}

	if !hasDefault || !simpleOrder {
		return []string{p.prototypeText(name, params, returned)}
	}

	prototypes := make([]string, 0, len(params)-lastRequired)
	for i := lastRequired; i < len(params); i++ {
		prototypes = append(prototypes, p.prototypeText(name, params[:i+1], returned))
	}
	return prototypes
}

func (p *Parser) prototypeText(name string, params, returned []ParameterDoc) string {
	proto := prototype{}
	if args := joinNames(params); args != "" {
		proto.args = " " + args + " "
	}
	if len(returned) > 0 {
		proto.returns = joinNames(returned) + " = "
	}
	if p.className != p.opts.GlobalClass {
		proto.class = p.className
	}
	return proto.format(name)
}

func joinNames(params []ParameterDoc) string {
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Name
	}
	return strings.Join(names, ", ")
}

// ClassDoc assembles the class from everything fed so far.
func (p *Parser) ClassDoc() (ClassDoc, error) {
	return NewClassDoc(p.className, p.classDescription.String(), p.methods, p.opts.Convert)
}

// Diagnostics returns the advisories collected so far.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// Result is the outcome of parsing one header.
type Result struct {
	Class       ClassDoc     `json:"class"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// ClassNameFromFile strips suffix (DefaultFileSuffix when empty) from the
// base name of a header: "PlayerMethods.h" -> "Player".
func ClassNameFromFile(name, suffix string) string {
	if suffix == "" {
		suffix = DefaultFileSuffix
	}
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, suffix)
}

// Parse reads a whole header and returns its class documentation.
func Parse(className, source string, r io.Reader, opts Options) (*Result, error) {
	parser := NewParser(className, source, opts)

	scanner := newLineScanner(r)
	for scanner.Scan() {
		if err := parser.Feed(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	class, err := parser.ClassDoc()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	return &Result{Class: class, Diagnostics: parser.Diagnostics()}, nil
}

// ParseFile parses the header at path, naming the class after the file.
func ParseFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open header: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(ClassNameFromFile(path, opts.FileSuffix), path, f, opts)
}
