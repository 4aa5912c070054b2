// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Serialization prefixes for the namespaces Inkscape uses. The SVG
// namespace is the default and stays unprefixed.
var nsPrefixes = map[string]string{
	NSSVG:             "",
	NSXLink:           "xlink",
	NSInkscape:        "inkscape",
	NSSodipodi:        "sodipodi",
	NSDublinCore:      "dc",
	NSCreativeCommons: "cc",
	NSRDF:             "rdf",
}

// Encode serializes the document as UTF-8 XML. Namespace declarations are
// emitted on the root element for exactly the namespaces the tree uses.
func (d *Document) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xml.Header)
	writeElement(bw, d.Root, d.prefixes(), true)
	bw.WriteByte('\n')
	return bw.Flush()
}

// WriteFile writes the document to path via a temp file in the same
// directory, so a crash cannot leave a half-written SVG behind.
func (d *Document) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".svgtex-*.svg")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := d.Encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// prefixes maps every namespace present in the tree to its prefix.
// Namespaces outside the Inkscape set get generated ns1, ns2, ... prefixes.
func (d *Document) prefixes() map[string]string {
	seen := map[string]bool{NSSVG: true}
	d.Root.Walk(func(e *Element) {
		if e.Name.Space != "" {
			seen[e.Name.Space] = true
		}
		for _, a := range e.Attrs {
			if a.Name.Space != "" {
				seen[a.Name.Space] = true
			}
		}
	})

	spaces := make([]string, 0, len(seen))
	for s := range seen {
		spaces = append(spaces, s)
	}
	sort.Strings(spaces)

	prefixes := make(map[string]string, len(spaces))
	n := 0
	for _, s := range spaces {
		if p, ok := nsPrefixes[s]; ok {
			prefixes[s] = p
		} else {
			n++
			prefixes[s] = fmt.Sprintf("ns%d", n)
		}
	}
	return prefixes
}

func writeElement(w *bufio.Writer, e *Element, prefixes map[string]string, root bool) {
	name := qualifiedName(e.Name, prefixes)
	w.WriteByte('<')
	w.WriteString(name)
	if root {
		writeNamespaceDecls(w, prefixes)
	}
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(qualifiedName(a.Name, prefixes))
		w.WriteString(`="`)
		escapeText(w, a.Value)
		w.WriteByte('"')
	}
	if len(e.Children) == 0 && e.Text == "" {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')
	escapeText(w, e.Text)
	for _, c := range e.Children {
		writeElement(w, c, prefixes, false)
		escapeText(w, c.Tail)
	}
	w.WriteString("</")
	w.WriteString(name)
	w.WriteByte('>')
}

func writeNamespaceDecls(w *bufio.Writer, prefixes map[string]string) {
	type decl struct{ prefix, space string }
	decls := make([]decl, 0, len(prefixes))
	for space, prefix := range prefixes {
		decls = append(decls, decl{prefix, space})
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].prefix < decls[j].prefix })
	for _, dc := range decls {
		if dc.prefix == "" {
			w.WriteString(` xmlns="`)
		} else {
			fmt.Fprintf(w, ` xmlns:%s="`, dc.prefix)
		}
		escapeText(w, dc.space)
		w.WriteByte('"')
	}
}

func qualifiedName(n xml.Name, prefixes map[string]string) string {
	if n.Space == "" {
		return n.Local
	}
	if p := prefixes[n.Space]; p != "" {
		return p + ":" + n.Local
	}
	return n.Local
}

func escapeText(w *bufio.Writer, s string) {
	if s == "" {
		return
	}
	// bufio keeps the first write error; Encode reports it from Flush.
	_ = xml.EscapeText(w, []byte(s))
}
