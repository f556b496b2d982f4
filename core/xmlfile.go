package core

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// XMLAttributes is the game's view of a loaded XML file: string attributes addressed by keys such as
// "vehicle.combinations.combination(1)#xmlFilename".
type XMLAttributes interface {
	GetString(key string) (string, bool)
	SetString(key string, value string) error
	HasProperty(key string) bool
}

// ErrNoElement is returned when a key addresses an element that doesn't exist
var ErrNoElement = errors.New("no such element")

type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*xmlNode `xml:",any"`
}

// XMLFile is an XML document held in memory, addressed with game-style keys
type XMLFile struct {
	root *xmlNode
	file string
}

// LoadXMLFile reads and parses an XML file from disk
func LoadXMLFile(file string) (*XMLFile, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	x, err := ParseXML(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	x.file = file
	return x, nil
}

// ParseXML parses an XML document
func ParseXML(r io.Reader) (*XMLFile, error) {
	var root xmlNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	trimWhitespace(&root)
	return &XMLFile{root: &root}, nil
}

// Indentation is regenerated on write
func trimWhitespace(n *xmlNode) {
	if len(strings.TrimSpace(n.Text)) == 0 {
		n.Text = ""
	}
	for _, c := range n.Children {
		trimWhitespace(c)
	}
}

type keySegment struct {
	name  string
	index int
}

func parseKey(key string) ([]keySegment, string, error) {
	elemPath, attr, _ := strings.Cut(key, "#")
	if len(elemPath) == 0 {
		return nil, "", fmt.Errorf("invalid key %q", key)
	}
	var segs []keySegment
	for _, part := range strings.Split(elemPath, ".") {
		seg := keySegment{name: part}
		if open := strings.IndexByte(part, '('); open >= 0 {
			if !strings.HasSuffix(part, ")") {
				return nil, "", fmt.Errorf("invalid key %q", key)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, "", fmt.Errorf("invalid index in key %q", key)
			}
			seg.name = part[:open]
			seg.index = idx
		}
		if len(seg.name) == 0 {
			return nil, "", fmt.Errorf("invalid key %q", key)
		}
		segs = append(segs, seg)
	}
	return segs, attr, nil
}

func (x *XMLFile) find(segs []keySegment) *xmlNode {
	if x.root == nil || segs[0].name != x.root.XMLName.Local || segs[0].index != 0 {
		return nil
	}
	node := x.root
	for _, seg := range segs[1:] {
		var next *xmlNode
		seen := 0
		for _, c := range node.Children {
			if c.XMLName.Local != seg.name {
				continue
			}
			if seen == seg.index {
				next = c
				break
			}
			seen++
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// GetString returns the attribute addressed by key, or the element's text when the key has no attribute part
func (x *XMLFile) GetString(key string) (string, bool) {
	segs, attr, err := parseKey(key)
	if err != nil {
		return "", false
	}
	node := x.find(segs)
	if node == nil {
		return "", false
	}
	if len(attr) == 0 {
		return node.Text, len(node.Text) > 0
	}
	return node.attr(attr)
}

// SetString overwrites (or adds) the attribute addressed by key. The element must already exist.
func (x *XMLFile) SetString(key string, value string) error {
	segs, attr, err := parseKey(key)
	if err != nil {
		return err
	}
	node := x.find(segs)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNoElement, key)
	}
	if len(attr) == 0 {
		node.Text = value
		return nil
	}
	for i, a := range node.Attrs {
		if a.Name.Local == attr {
			node.Attrs[i].Value = value
			return nil
		}
	}
	node.Attrs = append(node.Attrs, xml.Attr{Name: xml.Name{Local: attr}, Value: value})
	return nil
}

// HasProperty reports whether the element (and attribute, if given) addressed by key exists
func (x *XMLFile) HasProperty(key string) bool {
	segs, attr, err := parseKey(key)
	if err != nil {
		return false
	}
	node := x.find(segs)
	if node == nil {
		return false
	}
	if len(attr) == 0 {
		return true
	}
	_, ok := node.attr(attr)
	return ok
}

// WriteTo writes the document, indented, with an XML header
func (x *XMLFile) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "    ")
	if err := enc.Encode(x.root); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}

// Save writes the document back to the file it was loaded from
func (x *XMLFile) Save() error {
	if len(x.file) == 0 {
		return errors.New("xml file was not loaded from disk")
	}
	f, err := os.Create(x.file)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = x.WriteTo(f)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
