package luadoc

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// CellKind tells a plain table cell from one carrying tooltips.
type CellKind int

const (
	CellPlain CellKind = iota
	CellTooltip
)

// Tooltip displays Label and reveals Value on hover.
type Tooltip struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Cell is one value of a documented table row.
type Cell struct {
	Kind     CellKind
	Text     string
	Tooltips []Tooltip
}

// PlainCell returns a cell holding text.
func PlainCell(text string) Cell {
	return Cell{Kind: CellPlain, Text: text}
}

// TooltipCell returns a cell showing label with value as its tooltip.
func TooltipCell(label, value string) Cell {
	return Cell{Kind: CellTooltip, Tooltips: []Tooltip{{Label: label, Value: value}}}
}

// markdown renders the cell for a Markdown table row.
func (c Cell) markdown() string {
	if c.Kind == CellPlain {
		return c.Text
	}
	parts := make([]string, 0, len(c.Tooltips))
	for _, t := range c.Tooltips {
		parts = append(parts, fmt.Sprintf(`<span title="%s">%s</span>`, html.EscapeString(t.Value), t.Label))
	}
	return strings.Join(parts, ", ")
}

// TableSpec is a table declared with @table, @columns and @values.
type TableSpec struct {
	Columns []string
	Values  [][]Cell
}

var (
	// A run of plain characters, a double-quoted string, or an <...> blob.
	rowTokenRegex = regexp.MustCompile(`(?:[^,<>"]|"(?:\\.|[^"])*"|<[^>]*>)+`)
	pairRegex     = regexp.MustCompile(`(\w+):\s*([\w\s]+)`)
)

func parseColumns(s string) []string {
	return strings.Split(s, ", ")
}

// parseRow tokenizes the inside of @values [...]. Quotes and surrounding
// spaces are trimmed; a token written as <key: value, ...> becomes a
// tooltip cell.
func parseRow(s string) []Cell {
	tokens := rowTokenRegex.FindAllString(s, -1)
	row := make([]Cell, 0, len(tokens))

	for _, token := range tokens {
		value := strings.Trim(token, ` "`)
		if len(value) >= 2 && strings.HasPrefix(value, "<") && strings.HasSuffix(value, ">") {
			row = append(row, parseTooltips(value[1:len(value)-1]))
			continue
		}
		row = append(row, PlainCell(value))
	}

	return row
}

func parseTooltips(s string) Cell {
	cell := Cell{Kind: CellTooltip, Tooltips: []Tooltip{}}
	index := make(map[string]int)

	for _, m := range pairRegex.FindAllStringSubmatch(s, -1) {
		if i, ok := index[m[1]]; ok {
			cell.Tooltips[i].Value = m[2]
			continue
		}
		index[m[1]] = len(cell.Tooltips)
		cell.Tooltips = append(cell.Tooltips, Tooltip{Label: m[1], Value: m[2]})
	}

	return cell
}

// RewriteHookValues replaces the first cell of every row with the Lua global
// name of the event it identifies (events.<category>.<name>), keeping the
// numeric ID as the tooltip. Cells that do not resolve are left alone. It is
// a no-op without tables, without a category, or when hooks does not export
// the category.
func RewriteHookValues(tables []TableSpec, category string, hooks HookMap) {
	if len(tables) == 0 || category == "" || len(hooks) == 0 {
		return
	}
	table, ok := hooks[category]
	if !ok {
		return
	}

	for _, t := range tables {
		for _, row := range t.Values {
			if len(row) == 0 || row[0].Kind != CellPlain {
				continue
			}
			ev, ok := table.Resolve(row[0].Text)
			if !ok {
				continue
			}
			row[0] = TooltipCell(fmt.Sprintf("events.%s.%s", category, ev.LuaName), fmt.Sprint(ev.ID))
		}
	}
}

// renderTables converts tables to HTML through a Markdown table and
// concatenates the results.
func renderTables(tables []TableSpec, convert Converter) (string, error) {
	var out strings.Builder

	for _, t := range tables {
		var md strings.Builder
		md.WriteString("| " + strings.Join(t.Columns, " | ") + " |\n")
		seps := make([]string, len(t.Columns))
		for i := range seps {
			seps[i] = "---"
		}
		md.WriteString("| " + strings.Join(seps, " | ") + " |\n")

		for _, row := range t.Values {
			md.WriteString("| ")
			for _, cell := range row {
				md.WriteString(cell.markdown())
				md.WriteString(" | ")
			}
			md.WriteString("\n")
		}

		rendered, err := convert(md.String())
		if err != nil {
			return "", fmt.Errorf("failed to render table: %w", err)
		}
		out.WriteString(rendered)
	}

	return out.String(), nil
}
