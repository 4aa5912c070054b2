// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// ParseError reports input that is not a well-formed SVG document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing SVG: %v", e.Err)
	}
	return fmt.Sprintf("parsing SVG %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads an SVG document from r.
func Parse(r io.Reader) (*Document, error) {
	return parse(r, "")
}

// ParseFile reads an SVG document from the named file. A missing file
// surfaces as the os.Open error, not a ParseError.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f, path)
}

func parse(r io.Reader, path string) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name}
			for _, a := range t.Attr {
				// namespace declarations are regenerated on write
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, a)
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			if n := len(cur.Children); n > 0 {
				cur.Children[n-1].Tail += string(t)
			} else {
				cur.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, &ParseError{Path: path, Err: errors.New("no elements found")}
	}
	if !root.Is("svg") {
		return nil, &ParseError{
			Path: path,
			Err:  fmt.Errorf("root element is <%s>, not <svg>", root.Name.Local),
		}
	}
	return &Document{Root: root, Path: path}, nil
}
