// Package manifest reads, patches and writes Cargo.toml files.
//
// A Document keeps the original text of every table so that content the
// patcher does not touch round-trips byte for byte. Syntax is validated with
// go-toml before any section is split out.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// Section is one table of a document: its header line and every line up
// to the next header.
type Section struct {
	// Key is the dotted table name, e.g. "dependencies.burn".
	Key string

	// Array is true for [[array.of.tables]] headers.
	Array bool

	// Raw is the section text including the header line.
	Raw string
}

// Document is an ordered TOML document. Root key/value pairs before the
// first header are kept as preamble entries so dotted keys such as
// dependencies.serde can be removed like tables.
type Document struct {
	preamble []Section
	sections []Section
}

// ParseError reports malformed TOML.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse validates data as TOML and splits it into sections.
func Parse(data []byte) (*Document, error) {
	var probe map[string]any
	if err := toml.Unmarshal(data, &probe); err != nil {
		perr := &ParseError{Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			perr.Line, perr.Column = decodeErr.Position()
		}
		return nil, perr
	}

	exprs, err := expressions(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return split(data, exprs), nil
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Sections returns a copy of the document's sections in order.
func (d *Document) Sections() []Section {
	out := make([]Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// Keys returns the section keys in order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.sections))
	for _, s := range d.sections {
		keys = append(keys, s.Key)
	}
	return keys
}

// Index returns the position of the first section named key, or -1.
func (d *Document) Index(key string) int {
	for i, s := range d.sections {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// RemoveTable removes the table key, all of its sub-tables (key.*) and
// root dotted keys under it, returning how many entries were removed.
func (d *Document) RemoveTable(key string) int {
	var removed int
	d.preamble, removed = removeKey(d.preamble, key)
	n := 0
	d.sections, n = removeKey(d.sections, key)
	return removed + n
}

func removeKey(sections []Section, key string) ([]Section, int) {
	kept := sections[:0]
	removed := 0
	for _, s := range sections {
		if s.Key != "" && (s.Key == key || strings.HasPrefix(s.Key, key+".")) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}

// InsertAt inserts s so that it becomes section i. Positions past the end
// append. Neighbouring sections are separated by a blank line.
func (d *Document) InsertAt(i int, s Section) {
	if i < 0 {
		i = 0
	}
	if i > len(d.sections) {
		i = len(d.sections)
	}

	s.Raw = ensureNewline(s.Raw)
	if i < len(d.sections) {
		s.Raw = ensureBlankLine(s.Raw)
	}
	if i > 0 {
		d.sections[i-1].Raw = ensureBlankLine(d.sections[i-1].Raw)
	} else if last := len(d.preamble) - 1; last >= 0 && d.preamble[last].Raw != "" {
		d.preamble[last].Raw = ensureBlankLine(d.preamble[last].Raw)
	}

	d.sections = append(d.sections, Section{})
	copy(d.sections[i+1:], d.sections[i:])
	d.sections[i] = s
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, s := range d.preamble {
		buf.WriteString(s.Raw)
	}
	for _, s := range d.sections {
		if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
			buf.WriteByte('\n')
		}
		buf.WriteString(s.Raw)
	}
	return buf.Bytes()
}

// String implements fmt.Stringer.
func (d *Document) String() string {
	return string(d.Bytes())
}

// expression is a root key/value pair or table header and the offset of
// the line it starts on.
type expression struct {
	key   string
	kind  unstable.Kind
	start int
}

// expressions returns the key/value pairs and headers of data in document
// order. Positions come from the parser, so brackets inside strings are
// never mistaken for headers.
func expressions(data []byte) ([]expression, error) {
	var exprs []expression

	p := unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable, unstable.KeyValue:
		default:
			continue
		}

		it := e.Key()
		if !it.Next() {
			continue
		}
		offset := p.Shape(it.Node().Raw).Start.Offset

		exprs = append(exprs, expression{
			key:   joinKey(e),
			kind:  e.Kind,
			start: lineStart(data, offset),
		})
	}
	if err := p.Error(); err != nil {
		return nil, err
	}

	return exprs, nil
}

func joinKey(n *unstable.Node) string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return strings.Join(parts, ".")
}

func lineStart(data []byte, offset int) int {
	return bytes.LastIndexByte(data[:offset], '\n') + 1
}

// split cuts data at the start of every header line. Before the first
// header, each root key/value pair becomes its own preamble entry; text
// ahead of the first pair is an entry with an empty key.
func split(data []byte, exprs []expression) *Document {
	doc := &Document{}

	firstHeader := len(exprs)
	for i, e := range exprs {
		if e.kind != unstable.KeyValue {
			firstHeader = i
			break
		}
	}

	end := func(i int) int {
		if i < len(exprs) {
			return exprs[i].start
		}
		return len(data)
	}

	lead := end(0)
	if lead > 0 {
		doc.preamble = append(doc.preamble, Section{Raw: string(data[:lead])})
	}
	for i := 0; i < firstHeader; i++ {
		doc.preamble = append(doc.preamble, Section{
			Key: exprs[i].key,
			Raw: string(data[exprs[i].start:end(i+1)]),
		})
	}

	headers := exprs[firstHeader:]
	for i, h := range headers {
		if h.kind == unstable.KeyValue {
			continue
		}
		stop := len(data)
		for _, next := range headers[i+1:] {
			if next.kind != unstable.KeyValue {
				stop = next.start
				break
			}
		}
		doc.sections = append(doc.sections, Section{
			Key:   h.key,
			Array: h.kind == unstable.ArrayTable,
			Raw:   string(data[h.start:stop]),
		})
	}

	return doc
}

func ensureNewline(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}

func ensureBlankLine(s string) string {
	s = ensureNewline(s)
	if s != "" && !strings.HasSuffix(s, "\n\n") {
		return s + "\n"
	}
	return s
}
