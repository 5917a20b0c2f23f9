package classgen

import (
	"fmt"
	"strings"
)

// Attribute names carried by the generated source.
const (
	ExtensionConfigAttribute = "ExtensionConfig"
	PropertyAttribute        = "ExtConfProperty"
)

// DefaultAttributeNamespace is where the hydration layer declares its
// attributes.
const DefaultAttributeNamespace = "mteu.TypedExtConf.Attribute"

// Request is one generation call.
type Request struct {
	ExtensionKey string
	ClassName    string
	Properties   []PropertySpec
}

// Validate checks the request shape. Individual malformed properties are
// not an error.
func (r Request) Validate() error {
	switch {
	case len(r.Properties) == 0:
		return fmt.Errorf("%w: at least one property must be defined", ErrInvalidRequest)
	case strings.TrimSpace(r.ExtensionKey) == "":
		return fmt.Errorf("%w: extension key must not be empty", ErrInvalidRequest)
	case strings.TrimSpace(r.ClassName) == "":
		return fmt.Errorf("%w: class name must not be empty", ErrInvalidRequest)
	}
	return nil
}

// ClassDescription is the in-memory model of the generated class.
type ClassDescription struct {
	Namespace     string
	ClassName     string
	Documentation string
	ExtensionKey  string
	Parameters    []ParameterDescription
}

// ParameterDescription is one promoted constructor parameter.
type ParameterDescription struct {
	Name       string
	Type       TypeTag
	Default    any
	HasDefault bool
	Metadata   []Arg
}

// Describe validates req and builds the description of its class.
func Describe(req Request) (*ClassDescription, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	valid := ValidProperties(req.Properties)
	desc := &ClassDescription{
		Namespace:     DeriveNamespace(req.ExtensionKey),
		ClassName:     req.ClassName,
		Documentation: documentation(req.ClassName, req.ExtensionKey),
		ExtensionKey:  req.ExtensionKey,
		Parameters:    make([]ParameterDescription, 0, len(valid)),
	}
	for _, p := range valid {
		name, _ := p.Name()
		t, _ := p.Type()
		def, ok := CoerceDefault(p.Default(), t)
		desc.Parameters = append(desc.Parameters, ParameterDescription{
			Name:       name,
			Type:       t,
			Default:    def,
			HasDefault: ok,
			Metadata:   AssembleMetadata(p),
		})
	}
	return desc, nil
}

func documentation(className, extensionKey string) string {
	return className + ".\n\n" +
		"Typed configuration class for extension '" + extensionKey + "'.\n\n" +
		"This class provides type-safe access to extension configuration properties.\n" +
		"Generated using typed-extconf-gen."
}

// ClassGenerator renders configuration classes through a SourceBuilder.
// It holds no mutable state and may be shared between goroutines.
type ClassGenerator struct {
	newBuilder         BuilderFunc
	attributeNamespace string
}

// Option configures a ClassGenerator.
type Option func(*ClassGenerator)

// WithAttributeNamespace sets the namespace the two attributes are imported
// from.
func WithAttributeNamespace(ns string) Option {
	return func(g *ClassGenerator) {
		g.attributeNamespace = ns
	}
}

// New returns a ClassGenerator printing with builders made by newBuilder.
func New(newBuilder BuilderFunc, opts ...Option) *ClassGenerator {
	g := &ClassGenerator{
		newBuilder:         newBuilder,
		attributeNamespace: DefaultAttributeNamespace,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the source text of className for the extension.
func (g *ClassGenerator) Generate(extensionKey, className string, properties []PropertySpec) (string, error) {
	return g.GenerateRequest(Request{
		ExtensionKey: extensionKey,
		ClassName:    className,
		Properties:   properties,
	})
}

// GenerateRequest is Generate taking a Request. The builder's output and
// errors are returned as they are.
func (g *ClassGenerator) GenerateRequest(req Request) (string, error) {
	desc, err := Describe(req)
	if err != nil {
		return "", err
	}
	if g.newBuilder == nil {
		return "", ErrNoBuilder
	}
	b := g.newBuilder()
	g.emit(b, desc)
	return b.Render()
}

func (g *ClassGenerator) emit(b SourceBuilder, desc *ClassDescription) {
	b.StrictTypes()
	b.Namespace(desc.Namespace, []string{
		g.qualify(PropertyAttribute),
		g.qualify(ExtensionConfigAttribute),
	})
	b.Class(ClassDecl{
		Name:     desc.ClassName,
		Comment:  desc.Documentation,
		Final:    true,
		ReadOnly: true,
		Attributes: []Attribute{{
			Name: ExtensionConfigAttribute,
			Args: []Arg{{Name: ArgExtensionKey, Value: desc.ExtensionKey}},
		}},
	})
	b.Constructor(Public)
	for _, p := range desc.Parameters {
		b.PromotedParameter(ParamDecl{
			Name:       p.Name,
			Type:       p.Type,
			Visibility: Public,
			Default:    p.Default,
			HasDefault: p.HasDefault,
			Attributes: []Attribute{{Name: PropertyAttribute, Args: p.Metadata}},
		})
	}
}

func (g *ClassGenerator) qualify(name string) string {
	if g.attributeNamespace == "" {
		return name
	}
	return g.attributeNamespace + NamespaceSeparator + name
}
