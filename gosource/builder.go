// Package gosource prints configuration classes as Go source.
//
// The class becomes a struct whose fields carry `extconf` tags holding the
// mapping metadata, the class-level extension key becomes an ExtensionKey
// method and the constructor defaults become a New<Class> function.
package gosource

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/takumakei/typed-extconf-gen/classgen"
)

// TagKey is the struct tag key holding "<path>[,required]".
const TagKey = "extconf"

var errNoClass = errors.New("gosource: no class declared")

// Option configures a Builder.
type Option func(*Builder)

// WithPackage sets the package name. By default the last namespace segment
// is used, lower-cased.
func WithPackage(name string) Option {
	return func(b *Builder) {
		b.pkg = name
	}
}

// WithHeader sets the header comment placed above the package clause.
func WithHeader(text string) Option {
	return func(b *Builder) {
		b.header = text
	}
}

// Builder is a classgen.SourceBuilder producing one Go file.
type Builder struct {
	pkg       string
	header    string
	namespace string
	class     *classgen.ClassDecl
	ctor      bool
	params    []classgen.ParamDecl
}

// New returns an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{header: "Code generated by extconf-gen. DO NOT EDIT."}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Factory returns a classgen.BuilderFunc making Builders with opts.
func Factory(opts ...Option) classgen.BuilderFunc {
	return func() classgen.SourceBuilder {
		return New(opts...)
	}
}

// StrictTypes has nothing to declare in Go.
func (b *Builder) StrictTypes() {}

// Namespace records the namespace for the package comment. The used
// attribute names are not imported; they become struct tags.
func (b *Builder) Namespace(name string, _ []string) {
	b.namespace = name
}

func (b *Builder) Class(c classgen.ClassDecl) {
	b.class = &c
}

// Constructor enables the New<Class> function. Go has no member visibility
// beyond exported names, so the argument is ignored.
func (b *Builder) Constructor(classgen.Visibility) {
	b.ctor = true
}

func (b *Builder) PromotedParameter(p classgen.ParamDecl) {
	b.params = append(b.params, p)
}

// Render prints the file through jennifer, which gofmt-formats it.
func (b *Builder) Render() (string, error) {
	if b.class == nil {
		return "", errNoClass
	}
	name := b.class.Name
	if !token.IsIdentifier(name) {
		return "", fmt.Errorf("gosource: invalid identifier %q", name)
	}
	pkg := b.packageName()
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("gosource: invalid package name %q", pkg)
	}

	f := jen.NewFile(pkg)
	if b.header != "" {
		f.HeaderComment(b.header)
	}
	if b.namespace != "" {
		f.PackageComment(fmt.Sprintf("Package %s holds the configuration of namespace %s.", pkg, b.namespace))
	}

	fields := make([]jen.Code, 0, len(b.params))
	defaults := jen.Dict{}
	declared := make(map[string]string, len(b.params))
	for _, p := range b.params {
		field, err := exportedName(p.Name)
		if err != nil {
			return "", err
		}
		if prev, ok := declared[field]; ok {
			return "", fmt.Errorf("gosource: %q and %q both map to field %s", prev, p.Name, field)
		}
		declared[field] = p.Name
		fields = append(fields, jen.Id(field).Add(fieldType(p)).Tag(map[string]string{TagKey: tag(p)}))
		if p.HasDefault {
			v, err := value(p.Default)
			if err != nil {
				return "", fmt.Errorf("gosource: default of %s: %w", p.Name, err)
			}
			defaults[jen.Id(field)] = v
		}
	}

	if b.class.Comment != "" {
		for _, l := range strings.Split(b.class.Comment, "\n") {
			f.Comment(l)
		}
	}
	f.Type().Id(name).Struct(fields...)

	if key, ok := classArg(b.class, classgen.ArgExtensionKey); ok {
		f.Line()
		f.Comment("ExtensionKey returns the key of the extension the configuration belongs to.")
		f.Func().Params(jen.Id(name)).Id("ExtensionKey").Params().String().Block(
			jen.Return(jen.Lit(fmt.Sprint(key))),
		)
	}

	if b.ctor {
		f.Line()
		f.Commentf("New%s returns %s holding the declared defaults.", name, name)
		f.Func().Id("New" + name).Params().Id(name).Block(
			jen.Return(jen.Id(name).Values(defaults)),
		)
	}

	buf := &bytes.Buffer{}
	if err := f.Render(buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (b *Builder) packageName() string {
	if b.pkg != "" {
		return b.pkg
	}
	segments := strings.Split(b.namespace, classgen.NamespaceSeparator)
	return strings.ToLower(segments[len(segments)-1])
}

// exportedName upper-cases the first letter so the field is exported.
func exportedName(name string) (string, error) {
	r, size := utf8.DecodeRuneInString(name)
	exported := string(unicode.ToUpper(r)) + name[size:]
	if r == utf8.RuneError || !token.IsIdentifier(exported) || !token.IsExported(exported) {
		return "", fmt.Errorf("gosource: invalid identifier %q", name)
	}
	return exported, nil
}

// tag builds the extconf tag value: the source path, which defaults to the
// parameter name, optionally followed by ",required".
func tag(p classgen.ParamDecl) string {
	path := p.Name
	required := false
	for _, a := range p.Attributes {
		if v, ok := a.Lookup(classgen.ArgPath); ok {
			path = fmt.Sprint(v)
		}
		if v, ok := a.Lookup(classgen.ArgRequired); ok {
			required = v == true
		}
	}
	if required {
		return path + ",required"
	}
	return path
}

func classArg(c *classgen.ClassDecl, name string) (any, bool) {
	for _, a := range c.Attributes {
		if v, ok := a.Lookup(name); ok {
			return v, true
		}
	}
	return nil, false
}

// fieldType maps a type tag to a Go type. Tags without a Go counterpart
// coerce like strings and are typed as such.
func fieldType(p classgen.ParamDecl) *jen.Statement {
	switch p.Type {
	case classgen.TypeBool:
		return jen.Bool()
	case classgen.TypeInt:
		return jen.Int()
	case classgen.TypeFloat:
		return jen.Float64()
	case classgen.TypeArray:
		switch p.Default.(type) {
		case classgen.Map, map[string]any:
			return jen.Map(jen.String()).Interface()
		}
		return jen.Index().Interface()
	default:
		return jen.String()
	}
}

// value returns the Go expression of a coerced default.
func value(v any) (jen.Code, error) {
	switch x := v.(type) {
	case nil:
		return jen.Nil(), nil
	case string, bool, int:
		return jen.Lit(x), nil
	case float64:
		switch {
		case math.IsNaN(x):
			return jen.Qual("math", "NaN").Call(), nil
		case math.IsInf(x, 1):
			return jen.Qual("math", "Inf").Call(jen.Lit(1)), nil
		case math.IsInf(x, -1):
			return jen.Qual("math", "Inf").Call(jen.Lit(-1)), nil
		}
		return jen.Lit(x), nil
	case []any:
		items := make([]jen.Code, len(x))
		for i, e := range x {
			c, err := value(e)
			if err != nil {
				return nil, err
			}
			items[i] = c
		}
		return jen.Index().Interface().Values(items...), nil
	case classgen.Map:
		// jen.Dict sorts its keys; the entries keep declaration order.
		items := make([]jen.Code, len(x))
		for i, item := range x {
			c, err := value(item.Value)
			if err != nil {
				return nil, err
			}
			items[i] = jen.Lit(item.Key).Op(":").Add(c)
		}
		return jen.Map(jen.String()).Interface().Values(items...), nil
	case map[string]any:
		return value(classgen.MapOf(x))
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}
