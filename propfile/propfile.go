// Package propfile reads property declaration documents.
//
// A document is YAML (or JSON, which YAML accepts) in one of two shapes:
//
//	extensionKey: acme_tools
//	className: Settings
//	properties:
//	  - name: apiKey
//	    type: string
//	    required: true
//
// or a bare list of properties, leaving the extension key and class name to
// the caller. Mappings nested in defaults keep their declaration order.
package propfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/takumakei/typed-extconf-gen/classgen"
)

var (
	// ErrEmptyDocument is returned for input holding no YAML document.
	ErrEmptyDocument = errors.New("empty document")

	// ErrMalformedDocument is returned when the document is neither a
	// mapping nor a sequence, or its properties are not a sequence.
	ErrMalformedDocument = errors.New("malformed document")
)

// Document keys.
const (
	KeyExtensionKey = "extensionKey"
	KeyClassName    = "className"
	KeyProperties   = "properties"
)

// Document is a decoded declaration document.
type Document struct {
	ExtensionKey string
	ClassName    string
	Properties   []classgen.PropertySpec
}

// Request returns the document as a generation request.
func (d *Document) Request() classgen.Request {
	return classgen.Request{
		ExtensionKey: d.ExtensionKey,
		ClassName:    d.ClassName,
		Properties:   d.Properties,
	}
}

// Load decodes the document stored at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads the first document from r.
func Decode(r io.Reader) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, err
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		node = node.Content[0]
	}
	node = resolve(node)

	switch node.Kind {
	case yaml.SequenceNode:
		props, err := properties(node)
		if err != nil {
			return nil, err
		}
		return &Document{Properties: props}, nil
	case yaml.MappingNode:
		return document(node)
	}
	return nil, fmt.Errorf("%w: line %d: expected a mapping or a sequence", ErrMalformedDocument, node.Line)
}

func document(node *yaml.Node) (*Document, error) {
	doc := &Document{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolve(node.Content[i+1])
		switch key.Value {
		case KeyExtensionKey:
			if err := val.Decode(&doc.ExtensionKey); err != nil {
				return nil, fmt.Errorf("%s: %w", KeyExtensionKey, err)
			}
		case KeyClassName:
			if err := val.Decode(&doc.ClassName); err != nil {
				return nil, fmt.Errorf("%s: %w", KeyClassName, err)
			}
		case KeyProperties:
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("%w: line %d: %s must be a sequence", ErrMalformedDocument, val.Line, KeyProperties)
			}
			props, err := properties(val)
			if err != nil {
				return nil, err
			}
			doc.Properties = props
		}
	}
	return doc, nil
}

// properties converts every item of a sequence. Items that are not mappings
// become empty specs, which generation skips like any other malformed entry.
func properties(node *yaml.Node) ([]classgen.PropertySpec, error) {
	props := make([]classgen.PropertySpec, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolve(item)
		spec := classgen.PropertySpec{}
		if item.Kind == yaml.MappingNode {
			m, err := mapping(item)
			if err != nil {
				return nil, err
			}
			for _, kv := range m {
				spec[kv.Key] = kv.Value
			}
		}
		props = append(props, spec)
	}
	return props, nil
}

// value converts a node into nil, a scalar, []any or classgen.Map.
func value(node *yaml.Node) (any, error) {
	node = resolve(node)
	switch node.Kind {
	case yaml.SequenceNode:
		out := make([]any, len(node.Content))
		for i, item := range node.Content {
			v, err := value(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		return mapping(node)
	}
	if node.ShortTag() == "!!timestamp" {
		// Keep dates as written instead of time.Time.
		return node.Value, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func mapping(node *yaml.Node) (classgen.Map, error) {
	out := make(classgen.Map, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		v, err := value(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, classgen.MapItem{Key: resolve(node.Content[i]).Value, Value: v})
	}
	return out, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
