package luadoc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// HookEvent is one entry of an *_EVENTS_LIST macro.
type HookEvent struct {
	ID      int    `json:"id"`
	LuaName string `json:"lua_name"`
}

// HookTable indexes the events of one hook category by numeric ID and by
// enum token.
type HookTable struct {
	ByID   map[int]string       `json:"by_id"`
	ByEnum map[string]HookEvent `json:"by_enum"`
}

func newHookTable() HookTable {
	return HookTable{
		ByID:   make(map[int]string),
		ByEnum: make(map[string]HookEvent),
	}
}

// Resolve looks up a table cell as an integer ID first and as an enum token
// second.
func (t HookTable) Resolve(value string) (HookEvent, bool) {
	if id, err := strconv.Atoi(value); err == nil {
		name, ok := t.ByID[id]
		return HookEvent{ID: id, LuaName: name}, ok
	}
	ev, ok := t.ByEnum[value]
	return ev, ok
}

// HookMap maps exported Lua hook categories (the names scripts see, such as
// "map") to their event tables. It is never modified after BuildHookMap
// returns, so one map can be shared by parsers running concurrently.
type HookMap map[string]HookTable

var (
	// #define SPELL_EVENTS_LIST(X) \
	macroStartRegex = regexp.MustCompile(`^\s*#define\s+([A-Z0-9_]+)_EVENTS_LIST\(X\)\s*\\\s*$`)
	// X(SPELL_EVENT_ON_CAST, 1, "on_cast") \
	macroItemRegex = regexp.MustCompile(`^\s*X\(\s*([A-Z0-9_]+)\s*,\s*([0-9]+)\s*,\s*"([^"]+)"\s*\)\s*\\?\s*$`)
	// { "spell", SpellEventsTable, CountOf(SpellEventsTable) },
	hookEntryRegex = regexp.MustCompile(`^\s*\{\s*"([^"]+)"\s*,\s*([A-Za-z0-9_]+)\s*,\s*CountOf\(\s*([A-Za-z0-9_]+)\s*\)\s*\}\s*,?\s*$`)
)

const (
	hookTableMarker   = "static constexpr HookStorage HookTypeTable"
	eventsTableSuffix = "EventsTable"
)

// ParseMacroLists collects every *_EVENTS_LIST(X) macro, keyed by the
// lowercased macro prefix (SPELL_EVENTS_LIST -> "spell"). A block runs until
// the first line that is neither an X(...) entry nor continued with a
// backslash.
func ParseMacroLists(lines []string) map[string]HookTable {
	lists := make(map[string]HookTable)
	current := ""

	for _, line := range lines {
		if m := macroStartRegex.FindStringSubmatch(line); m != nil {
			current = strings.ToLower(m[1])
			if _, ok := lists[current]; !ok {
				lists[current] = newHookTable()
			}
			continue
		}
		if current == "" {
			continue
		}

		if m := macroItemRegex.FindStringSubmatch(line); m != nil {
			id, err := strconv.Atoi(m[2])
			if err == nil {
				lists[current].ByID[id] = m[3]
				lists[current].ByEnum[m[1]] = HookEvent{ID: id, LuaName: m[3]}
				continue
			}
		}

		if !strings.HasSuffix(strings.TrimRight(line, " \t\r"), `\`) {
			current = ""
		}
	}

	return lists
}

// macroKey derives the macro list key from an events table identifier:
// InstanceEventsTable -> "instance".
func macroKey(tableName string) string {
	return strings.ToLower(strings.TrimSuffix(tableName, eventsTableSuffix))
}

// BuildHookMap reads a Hooks.h style header and binds every category
// exported by HookTypeTable to the macro list backing it. A category without
// a backing list is bound to an empty table and reported.
func BuildHookMap(r io.Reader) (HookMap, []Diagnostic, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read hooks header: %w", err)
	}

	lists := ParseMacroLists(lines)
	hooks := make(HookMap)
	var diags []Diagnostic
	inTable := false

	for i, line := range lines {
		if strings.Contains(line, hookTableMarker) {
			inTable = true
			continue
		}
		if inTable && strings.Contains(line, "};") {
			inTable = false
			continue
		}
		if !inTable {
			continue
		}

		m := hookEntryRegex.FindStringSubmatch(line)
		if m == nil || m[2] != m[3] {
			continue
		}
		category, tableName := m[1], m[2]

		key := macroKey(tableName)
		table, ok := lists[key]
		if !ok {
			hooks[category] = newHookTable()
			diags = append(diags, Diagnostic{
				Kind: MissingHookBackingTable,
				Line: i + 1,
				Message: fmt.Sprintf("HookTypeTable exports %q (%s) but no matching *_EVENTS_LIST was found for key %q",
					category, tableName, key),
			})
			continue
		}
		hooks[category] = table
	}

	return hooks, diags, nil
}

// LoadHookMap is BuildHookMap over a file.
func LoadHookMap(path string) (HookMap, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open hooks header: %w", err)
	}
	defer func() { _ = f.Close() }()

	hooks, diags, err := BuildHookMap(f)
	if err != nil {
		return nil, nil, err
	}
	return hooks, at(diags, path, 0), nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := newLineScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return scanner
}
