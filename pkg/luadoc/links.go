package luadoc

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// luaTypeDocs links the built-in Lua types to Programming in Lua.
var luaTypeDocs = map[string]string{
	"nil":      "http://www.lua.org/pil/2.1.html",
	"boolean":  "http://www.lua.org/pil/2.2.html",
	"number":   "http://www.lua.org/pil/2.3.html",
	"string":   "http://www.lua.org/pil/2.4.html",
	"table":    "http://www.lua.org/pil/2.5.html",
	"function": "http://www.lua.org/pil/2.6.html",
	"...":      "http://www.lua.org/pil/5.2.html",
}

const enumSearchURL = "https://github.com/ElunaLuaEngine/ElunaTrinityWotlk/search?l=cpp&q=%s&type=Code&utf8=%%E2%%9C%%93"

// Linker turns [Class] and [Class:Method] references into links between
// documentation pages.
type Linker struct {
	classes map[string]bool
	// Longest first so [Unit:GetName] is replaced before [Unit].
	methodRefs []string
	classRefs  []string
}

// NewLinker indexes the classes and methods that may be referenced.
func NewLinker(classes []ClassDoc) *Linker {
	l := &Linker{classes: make(map[string]bool, len(classes))}
	for _, c := range classes {
		l.classes[c.Name] = true
		l.classRefs = append(l.classRefs, c.Name)
		for _, m := range c.Methods {
			l.methodRefs = append(l.methodRefs, c.Name+":"+m.Name)
		}
	}
	byLength := func(refs []string) {
		sort.Slice(refs, func(i, j int) bool {
			if len(refs[i]) != len(refs[j]) {
				return len(refs[i]) > len(refs[j])
			}
			return refs[i] < refs[j]
		})
	}
	byLength(l.methodRefs)
	byLength(l.classRefs)
	return l
}

func root(level int) string {
	return strings.Repeat("../", level)
}

// Links replaces references in content with anchors for a page nested
// level directories below the output root.
func (l *Linker) Links(content string, level int) string {
	for _, ref := range l.methodRefs {
		token := "[" + ref + "]"
		if !strings.Contains(content, token) {
			continue
		}
		class, method, _ := strings.Cut(ref, ":")
		href := fmt.Sprintf("%s%s/%s.html", root(level), class, method)
		content = strings.ReplaceAll(content, token, fmt.Sprintf(`<a class="fn" href="%s">%s</a>`, href, ref))
	}

	for _, class := range l.classRefs {
		token := "[" + class + "]"
		if !strings.Contains(content, token) {
			continue
		}
		href := fmt.Sprintf("%s%s/index.html", root(level), class)
		content = strings.ReplaceAll(content, token, fmt.Sprintf(`<a class="mod" href="%s">%s</a>`, href, class))
	}

	return content
}

// DataType renders a normalized parameter type as a link: Lua types point
// at the Lua manual, known classes at their page, and anything else is
// assumed to be a C++ enum and searched for.
func (l *Linker) DataType(dataType string, level int) string {
	if href, ok := luaTypeDocs[dataType]; ok {
		return fmt.Sprintf(`<strong><a href="%s">%s</a></strong>`, href, dataType)
	}

	name := strings.TrimSuffix(strings.TrimPrefix(dataType, "["), "]")
	if l.classes[name] {
		href := fmt.Sprintf("%s%s/index.html", root(level), name)
		return fmt.Sprintf(`<strong><a class="mod" href="%s">%s</a></strong>`, href, name)
	}

	href := fmt.Sprintf(enumSearchURL, url.QueryEscape(`"enum `+name+`"`))
	return fmt.Sprintf(`<strong><a href="%s">%s</a></strong>`, href, name)
}
