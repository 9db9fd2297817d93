// Package xmlutils provides XML loading and XPath extraction helpers used
// by the CAMT parsers.
//
// All lookups go through gopkg.in/xmlpath.v2, which matches elements by
// local name only. CAMT files in the wild use different namespace prefixes
// (or none) for the same message, so prefix-agnostic matching lets one set
// of paths handle all of them.
package xmlutils

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Load parses XML from a reader into a navigable node tree. The decoder
// honors the encoding declared in the XML header, so ISO-8859-1 bank
// exports load as cleanly as UTF-8 ones.
func Load(r io.Reader) (*xmlpath.Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	root, err := xmlpath.ParseDecoder(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// LoadFile loads an XML file and returns its root node.
func LoadFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return Load(file)
}

// LoadBytes parses an in-memory XML document and returns its root node.
func LoadBytes(data []byte) (*xmlpath.Node, error) {
	return Load(bytes.NewReader(data))
}

// First returns the first node matched by path below the context node.
func First(n *xmlpath.Node, path *xmlpath.Path) (*xmlpath.Node, bool) {
	iter := path.Iter(n)
	if iter.Next() {
		return iter.Node(), true
	}
	return nil, false
}

// Each returns all nodes matched by path below the context node, in
// document order.
func Each(n *xmlpath.Node, path *xmlpath.Path) []*xmlpath.Node {
	var nodes []*xmlpath.Node
	iter := path.Iter(n)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes
}

// Text returns the whitespace-trimmed text of the first match, or "" when
// the path matches nothing.
func Text(n *xmlpath.Node, path *xmlpath.Path) string {
	if s, ok := path.String(n); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Strings returns the whitespace-trimmed texts of all matches, in document
// order. Matches whose text is empty are included; callers that only want
// content should filter.
func Strings(n *xmlpath.Node, path *xmlpath.Path) []string {
	var values []string
	iter := path.Iter(n)
	for iter.Next() {
		values = append(values, strings.TrimSpace(iter.Node().String()))
	}
	return values
}
