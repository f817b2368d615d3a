package main

import (
	"flag"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/strutil"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/dstutil"
)

const (
	TagPrefix = "propdoc-"

	tagSection = "section"
	tagProp    = "prop"

	ConfigTableEmbedStart = "<!-- propdoc-table-start -->"
	ConfigTableEmbedEnd   = "<!-- propdoc-table-end -->"
)

var (
	Debug   = flag.Bool("debug", false, "Enable debug log")
	Path    = flag.String("path", "doc/config.md", "Path to the generated markdown config table file")
	Src     = flag.String("src", ".", "Root directory of the go source files")
	Include = flag.String("include", "**/prop.go", "Glob of the go source files that declare props, relative to src")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "\npropdoc - generate configuration tables based on propdoc-* comments\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), `
For example, in prop.go:

  // propdoc-section: Calendar Configuration
  const (

	  // propdoc-prop: IANA timezone | UTC
	  PropCalendarTimezone = "calendar.timezone"
  )

In ./doc/config.md:

  <!-- propdoc-table-start -->
  <!-- propdoc-table-end -->
`)
	}
	flag.Parse()

	files, err := findSources(*Src, *Include)
	if err != nil {
		fmt.Printf("[ERROR] findSources failed, %v\n", err)
		os.Exit(1)
	}
	sections, err := parseSections(files)
	if err != nil {
		fmt.Printf("[ERROR] parseSections failed, %v\n", err)
		os.Exit(1)
	}
	if err := writeConfigDoc(*Path, renderConfigTable(sections)); err != nil {
		fmt.Printf("[ERROR] writeConfigDoc failed, %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated config table to %v\n", *Path)
}

func debugf(format string, args ...any) {
	if *Debug {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// Find go files under root matching the glob, directories starting with '.' or '_' and testdata are skipped.
func findSources(root string, include string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(include, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			debugf("Found %v", p)
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errs.WrapErrf(err, "failed to walk '%v'", root)
	}
	return files, nil
}

type ConfigSection struct {
	Name    string
	Configs []ConfigDecl
}

type ConfigDecl struct {
	Name         string
	ConstName    string
	Description  string
	DefaultValue string
}

type propTag struct {
	Command string
	Body    string
}

func parsePropTags(start dst.Decorations) []propTag {
	t := []propTag{}
	for _, s := range start {
		s = strings.TrimSpace(s)
		s, _ = strings.CutPrefix(s, "//")
		s = strings.TrimSpace(s)
		m, ok := strings.CutPrefix(s, TagPrefix)
		if !ok {
			continue
		}
		cmd, body, _ := strutil.SplitKV(m, ":")
		t = append(t, propTag{Command: cmd, Body: body})
	}
	return t
}

// Parse sections of props declared in files, sections named 'Common' or 'General' go first, others are sorted by name.
func parseSections(files []string) ([]ConfigSection, error) {
	configs := map[string][]ConfigDecl{}
	for _, p := range files {
		df, err := decorator.ParseFile(token.NewFileSet(), p, nil, parser.ParseComments)
		if err != nil {
			return nil, errs.WrapErrf(err, "failed to parse '%v'", p)
		}
		section := "General"
		dstutil.Apply(df, func(c *dstutil.Cursor) bool {
			switch n := c.Node().(type) {
			case *dst.GenDecl:
				for _, t := range parsePropTags(n.Decs.Start) {
					if t.Command == tagSection {
						section = t.Body
					}
				}
			case *dst.ValueSpec:
				if cd, ok := parseConfigDecl(n); ok {
					debugf("%v: (%v) %#v", p, section, cd)
					configs[section] = append(configs[section], cd)
				}
			}
			return true
		}, nil)
	}

	sections := make([]ConfigSection, 0, len(configs))
	for k, v := range configs {
		sections = append(sections, ConfigSection{Configs: v, Name: k})
	}
	prioritised := func(n string) bool {
		return strings.Contains(n, "Common") || strings.Contains(n, "General")
	}
	sort.SliceStable(sections, func(i, j int) bool {
		pi, pj := prioritised(sections[i].Name), prioritised(sections[j].Name)
		if pi != pj {
			return pi
		}
		return sections[i].Name < sections[j].Name
	})
	return sections, nil
}

func parseConfigDecl(n *dst.ValueSpec) (ConfigDecl, bool) {
	var cd ConfigDecl
	found := false
	for _, t := range parsePropTags(n.Decs.Start) {
		if t.Command == tagProp {
			found = true
			desc, def, _ := strutil.SplitKV(t.Body, "|")
			cd.Description = desc
			cd.DefaultValue = def
		}
	}
	if !found || len(n.Names) < 1 {
		return cd, false
	}
	cd.ConstName = n.Names[len(n.Names)-1].Name
	for _, v := range n.Values {
		if bl, ok := v.(*dst.BasicLit); ok && bl.Kind == token.STRING {
			if s, err := strconv.Unquote(bl.Value); err == nil {
				cd.Name = s
			}
		}
	}
	return cd, cd.Name != ""
}

func renderConfigTable(sections []ConfigSection) string {
	var sb strings.Builder
	row := func(w [3]int, cols ...string) {
		sb.WriteString(fmt.Sprintf("| %v | %v | %v |\n",
			strutil.PadSpace(-w[0], cols[0]), strutil.PadSpace(-w[1], cols[1]), strutil.PadSpace(-w[2], cols[2])))
	}
	for _, sec := range sections {
		if len(sec.Configs) < 1 {
			continue
		}
		w := [3]int{len("property"), len("description"), len("default value")}
		for _, c := range sec.Configs {
			w[0] = max(w[0], strutil.StrWidth(c.Name))
			w[1] = max(w[1], strutil.StrWidth(c.Description))
			w[2] = max(w[2], strutil.StrWidth(c.DefaultValue))
		}

		sb.WriteString(fmt.Sprintf("\n## %v\n\n", sec.Name))
		row(w, "property", "description", "default value")
		sb.WriteString(fmt.Sprintf("| %v | %v | %v |\n",
			strutil.PadToken(-w[0], "---", "-"), strutil.PadToken(-w[1], "---", "-"), strutil.PadToken(-w[2], "---", "-")))
		for _, c := range sec.Configs {
			row(w, c.Name, c.Description, c.DefaultValue)
		}
	}
	return sb.String()
}

// Replace lines between the embed markers with table, false if the markers are missing.
func embedTable(contents string, table string) (string, bool) {
	startOffset, endOffset := -1, -1
	lines := strings.Split(contents, "\n")
	for i, l := range lines {
		switch strings.TrimSpace(l) {
		case ConfigTableEmbedStart:
			startOffset = i
		case ConfigTableEmbedEnd:
			endOffset = i
		}
	}
	if startOffset < 0 || endOffset < startOffset {
		return "", false
	}
	before := strings.Join(lines[:startOffset+1], "\n")
	after := strings.Join(lines[endOffset:], "\n")
	return before + "\n" + table + "\n" + after, true
}

// Embed table into the file at path, the whole file is replaced if it doesn't have the embed markers.
func writeConfigDoc(path string, table string) error {
	out := "# Configurations\n" + table
	if buf, err := os.ReadFile(path); err == nil {
		if v, ok := embedTable(string(buf), table); ok {
			out = v
		}
	} else if !os.IsNotExist(err) {
		return errs.WrapErrf(err, "failed to read '%v'", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.WrapErrf(err, "failed to create directory for '%v'", path)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return errs.WrapErrf(err, "failed to write '%v'", path)
	}
	return nil
}
