// Package site assembles the documentation for a whole methods directory:
// it discovers headers, parses them concurrently, links references between
// classes, and writes the JSON consumed by the page templates.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/elunadoc/pkg/luadoc"
	"github.com/open-cli-collective/elunadoc/pkg/markup"
)

// Output file names, relative to the output directory.
const (
	ClassesFile     = "classes.json"
	SearchIndexFile = "search-index.json"
)

// Options configures Build.
type Options struct {
	MethodsDir  string
	HooksFile   string
	GlobalClass string
	FileSuffix  string
	Exclude     []string
	// Concurrency bounds the number of headers parsed at once.
	// Defaults to GOMAXPROCS.
	Concurrency int
	// Progress, when set, is called once per header before it is parsed.
	Progress func(format string, args ...interface{})
}

// SearchEntry is one row of the search index.
type SearchEntry struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Path    string `json:"path"`
}

// Site is the documentation of every class in a methods directory.
type Site struct {
	Classes     []luadoc.ClassDoc   `json:"classes"`
	Diagnostics []luadoc.Diagnostic `json:"diagnostics,omitempty"`
	Search      []SearchEntry       `json:"-"`
}

// Discover lists the headers in dir whose names end in suffix, skipping the
// excluded base names. The result is sorted.
func Discover(dir, suffix string, exclude []string) ([]string, error) {
	if suffix == "" {
		suffix = luadoc.DefaultFileSuffix
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read methods directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, suffix) || slices.Contains(exclude, name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	slices.Sort(files)
	return files, nil
}

// ParseAll parses files concurrently, one Parser per file. Results are in
// the same order as files. The first error cancels the remaining work.
func ParseAll(ctx context.Context, files []string, opts luadoc.Options, concurrency int) ([]*luadoc.Result, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]*luadoc.Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := luadoc.ParseFile(path, opts)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Build loads the hook tables, parses every header, and links the results.
func Build(ctx context.Context, opts Options) (*Site, error) {
	s := &Site{}
	progress := opts.Progress
	if progress == nil {
		progress = func(string, ...interface{}) {}
	}

	var hooks luadoc.HookMap
	if opts.HooksFile != "" {
		progress("Loading hooks from %s...", opts.HooksFile)
		h, diags, err := luadoc.LoadHookMap(opts.HooksFile)
		if err != nil {
			return nil, err
		}
		hooks = h
		s.Diagnostics = append(s.Diagnostics, diags...)
	}

	files, err := Discover(opts.MethodsDir, opts.FileSuffix, opts.Exclude)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		progress("Parsing file %s...", filepath.Base(f))
	}

	results, err := ParseAll(ctx, files, luadoc.Options{
		GlobalClass: opts.GlobalClass,
		Hooks:       hooks,
		FileSuffix:  opts.FileSuffix,
	}, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		s.Classes = append(s.Classes, r.Class)
		s.Diagnostics = append(s.Diagnostics, r.Diagnostics...)
	}
	slices.SortStableFunc(s.Classes, func(a, b luadoc.ClassDoc) int {
		return strings.Compare(a.Name, b.Name)
	})

	s.Search, err = SearchIndex(s.Classes)
	if err != nil {
		return nil, err
	}
	s.Classes = Link(s.Classes)

	return s, nil
}

// Link returns a copy of classes with [Class] and [Class:Method] references
// in their descriptions turned into links. Every page sits one directory
// below the output root.
func Link(classes []luadoc.ClassDoc) []luadoc.ClassDoc {
	linker := luadoc.NewLinker(classes)
	const level = 1

	linked := make([]luadoc.ClassDoc, len(classes))
	for i, c := range classes {
		c.Description = linker.Links(c.Description, level)
		c.ShortDescription = linker.Links(c.ShortDescription, level)

		methods := make([]luadoc.MethodDoc, len(c.Methods))
		for j, m := range c.Methods {
			m.Description = linker.Links(m.Description, level)
			m.ShortDescription = linker.Links(m.ShortDescription, level)
			m.Warning = linker.Links(m.Warning, level)
			m.Parameters = linkParams(linker, m.Parameters, level)
			m.Returned = linkParams(linker, m.Returned, level)
			methods[j] = m
		}
		c.Methods = methods
		linked[i] = c
	}
	return linked
}

func linkParams(linker *luadoc.Linker, params []luadoc.ParameterDoc, level int) []luadoc.ParameterDoc {
	if params == nil {
		return nil
	}
	out := make([]luadoc.ParameterDoc, len(params))
	for i, p := range params {
		p.Description = linker.Links(p.Description, level)
		out[i] = p
	}
	return out
}

// SearchIndex builds one entry per class and per method. Summaries are the
// short descriptions rendered back to plain Markdown.
func SearchIndex(classes []luadoc.ClassDoc) ([]SearchEntry, error) {
	var entries []SearchEntry
	for _, c := range classes {
		summary, err := markup.ToMarkdown(c.ShortDescription)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize %s: %w", c.Name, err)
		}
		entries = append(entries, SearchEntry{
			Name:    c.Name,
			Summary: summary,
			Path:    c.Name + "/index.html",
		})

		for _, m := range c.Methods {
			summary, err := markup.ToMarkdown(m.ShortDescription)
			if err != nil {
				return nil, fmt.Errorf("failed to summarize %s:%s: %w", c.Name, m.Name, err)
			}
			entries = append(entries, SearchEntry{
				Name:    c.Name + ":" + m.Name,
				Summary: summary,
				Path:    c.Name + "/" + m.Name + ".html",
			})
		}
	}
	return entries, nil
}

// Write stores the classes and the search index as JSON in dir.
func (s *Site) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, ClassesFile), s.Classes); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, SearchIndexFile), s.Search)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Counts summarizes a site for display.
type Counts struct {
	Classes    int
	Methods    int
	Documented int
}

// Count tallies classes and methods.
func (s *Site) Count() Counts {
	var c Counts
	c.Classes = len(s.Classes)
	for _, class := range s.Classes {
		c.Methods += len(class.Methods)
		for _, m := range class.Methods {
			if m.Documented {
				c.Documented++
			}
		}
	}
	return c
}
