// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gen

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/folding"
	"github.com/ianlewis/go-dictview/nav"
)

var (
	// ErrNotEntry indicates that a document's root element is not <entry>.
	ErrNotEntry = errors.New("not an entry document")

	// ErrMissingNumber indicates that an entry has no number attribute.
	ErrMissingNumber = errors.New("entry has no number")
)

// DefaultLemma is used for entries without a lemma.
const DefaultLemma = "N/A"

// Entry is a parsed entry document.
type Entry struct {
	// Record is the entry's index record.
	Record *idx.Record

	// HTML is the rendered entry content.
	HTML []byte
}

// node is an element or, when name is empty, a text node.
type node struct {
	name     string
	text     string
	parent   *node
	children []*node
}

func (n *node) isElement(name string) bool {
	return n != nil && n.name == name
}

// textContent returns the concatenated text of n and its descendants.
func (n *node) textContent() string {
	if n.name == "" {
		return n.text
	}
	var b strings.Builder
	n.walk(func(c *node) {
		if c.name == "" {
			b.WriteString(c.text)
		}
	})
	return b.String()
}

// walk calls fn for every descendant of n in document order.
func (n *node) walk(fn func(*node)) {
	for _, c := range n.children {
		fn(c)
		c.walk(fn)
	}
}

// child returns the first direct child element with the given name.
func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func parseXML(r io.Reader) (*node, map[string]string, error) {
	d := xml.NewDecoder(r)

	var root, cur *node
	var rootAttrs map[string]string
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, parent: cur}
			if cur == nil {
				if root != nil {
					return nil, nil, fmt.Errorf("parsing XML: multiple root elements")
				}
				root = n
				rootAttrs = map[string]string{}
				for _, a := range t.Attr {
					rootAttrs[a.Name.Local] = a.Value
				}
			} else {
				cur.children = append(cur.children, n)
			}
			cur = n
		case xml.EndElement:
			cur = cur.parent
		case xml.CharData:
			if cur != nil {
				cur.children = append(cur.children, &node{text: string(t), parent: cur})
			}
		}
	}
	if root == nil {
		return nil, nil, fmt.Errorf("parsing XML: %w", io.ErrUnexpectedEOF)
	}
	return root, rootAttrs, nil
}

// ParseEntry parses an entry document and renders its HTML content.
func ParseEntry(r io.Reader) (*Entry, error) {
	root, attrs, err := parseXML(r)
	if err != nil {
		return nil, err
	}
	if root.name != "entry" {
		return nil, fmt.Errorf("%w: <%s>", ErrNotEntry, root.name)
	}
	number := strings.TrimSpace(attrs["number"])
	if number == "" {
		return nil, ErrMissingNumber
	}

	lemma := DefaultLemma
	if n := root.child("lemma"); n != nil {
		lemma = folding.FoldWhitespace(n.textContent())
	}
	var pos string
	if n := root.child("pos"); n != nil {
		pos = folding.FoldWhitespace(n.textContent())
	}

	rec := &idx.Record{
		ID:              idx.ID(number),
		Lemma:           lemma,
		SimplifiedLemma: folding.Simplify(lemma),
		PartOfSpeech:    pos,
		Definition:      firstDefinition(root),
	}

	html, err := render(rec.ID, root)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Record: rec,
		HTML:   html,
	}, nil
}

var quoteReplacer = strings.NewReplacer("„", "", "“", "", `"`, "")

// firstDefinition returns the text of the entry's definition. A definition
// directly under the entry wins, then one inside senses/sense, then the first
// definition anywhere.
func firstDefinition(root *node) string {
	var first, found *node
	root.walk(func(n *node) {
		if found != nil || n.name != "definition" {
			return
		}
		if first == nil {
			first = n
		}
		p := n.parent
		if p == root {
			found = n
			return
		}
		if p.isElement("sense") && p.parent.isElement("senses") && p.parent.parent == root {
			found = n
		}
	})
	if found == nil {
		found = first
	}
	if found == nil {
		return ""
	}
	return quoteReplacer.Replace(folding.FoldWhitespace(found.textContent()))
}

// elementTags maps entry elements to the HTML elements they are rendered as.
// Other elements are rendered as div.
var elementTags = map[string]string{
	"lemma":      "h2",
	"pos":        "span",
	"definition": "p",
	"senses":     "ol",
	"sense":      "li",
	"example":    "blockquote",
	"b":          "b",
	"i":          "i",
	"em":         "em",
	"sup":        "sup",
	"sub":        "sub",
}

var entryTemplate = template.Must(template.New("entry").Parse(
	`<article class="entry" id="{{.Fragment}}">{{.Body}}</article>` + "\n",
))

func render(id idx.ID, root *node) ([]byte, error) {
	var body strings.Builder
	for _, c := range root.children {
		renderNode(&body, c)
	}

	var buf bytes.Buffer
	err := entryTemplate.Execute(&buf, struct {
		Fragment string
		Body     template.HTML
	}{
		Fragment: nav.Fragment(id),
		//nolint:gosec // Body is built from escaped text and fixed tags.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering entry %s: %w", id, err)
	}
	return buf.Bytes(), nil
}

func renderNode(b *strings.Builder, n *node) {
	if n.name == "" {
		b.WriteString(template.HTMLEscapeString(n.text))
		return
	}

	tag, ok := elementTags[n.name]
	if !ok {
		tag = "div"
	}
	fmt.Fprintf(b, `<%s class="%s">`, tag, template.HTMLEscapeString(n.name))
	for _, c := range n.children {
		renderNode(b, c)
	}
	fmt.Fprintf(b, "</%s>", tag)
}
