// Package phpsource prints configuration classes as PSR-12 formatted PHP.
package phpsource

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/takumakei/typed-extconf-gen/classgen"
)

const indent = "    "

var errNoClass = errors.New("phpsource: no class declared")

var reIdentifier = regexp.MustCompile(`^[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*$`)

// Builder is a classgen.SourceBuilder producing one PHP file.
type Builder struct {
	strict    bool
	namespace string
	uses      []string
	class     *classgen.ClassDecl
	ctor      classgen.Visibility
	params    []classgen.ParamDecl
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// NewBuilder is a classgen.BuilderFunc.
func NewBuilder() classgen.SourceBuilder {
	return New()
}

func (b *Builder) StrictTypes() {
	b.strict = true
}

func (b *Builder) Namespace(name string, uses []string) {
	b.namespace = name
	b.uses = append(b.uses, uses...)
}

func (b *Builder) Class(c classgen.ClassDecl) {
	b.class = &c
}

func (b *Builder) Constructor(visibility classgen.Visibility) {
	b.ctor = visibility
}

// PromotedParameter adds p. A parameter redeclared under the same name
// replaces the earlier one in its position.
func (b *Builder) PromotedParameter(p classgen.ParamDecl) {
	for i := range b.params {
		if b.params[i].Name == p.Name {
			b.params[i] = p
			return
		}
	}
	b.params = append(b.params, p)
}

// Render prints the file. It fails on names PHP cannot declare and on
// default values that have no PHP literal.
func (b *Builder) Render() (string, error) {
	if b.class == nil {
		return "", errNoClass
	}
	w := &writer{}
	w.line("<?php")
	w.line("")
	if b.strict {
		w.line("declare(strict_types=1);")
		w.line("")
	}
	if b.namespace != "" {
		ns, err := qualifiedName(b.namespace)
		if err != nil {
			return "", err
		}
		w.line("namespace " + ns + ";")
		w.line("")
	}
	if len(b.uses) > 0 {
		for _, use := range b.uses {
			name, err := qualifiedName(use)
			if err != nil {
				return "", err
			}
			w.line("use " + name + ";")
		}
		w.line("")
	}
	if err := b.renderClass(w); err != nil {
		return "", err
	}
	return w.String(), nil
}

func (b *Builder) renderClass(w *writer) error {
	c := b.class
	if err := checkIdentifier(c.Name); err != nil {
		return err
	}
	if c.Comment != "" {
		w.docComment(c.Comment)
	}
	for _, a := range c.Attributes {
		s, err := attribute(a)
		if err != nil {
			return err
		}
		w.line(s)
	}
	var mods []string
	if c.Final {
		mods = append(mods, "final")
	}
	if c.ReadOnly {
		mods = append(mods, "readonly")
	}
	mods = append(mods, "class", c.Name)
	w.line(strings.Join(mods, " "))
	w.line("{")
	if b.ctor != "" {
		if err := b.renderConstructor(w); err != nil {
			return err
		}
	}
	w.line("}")
	return nil
}

func (b *Builder) renderConstructor(w *writer) error {
	head := indent + string(b.ctor) + " function __construct("
	if len(b.params) == 0 {
		w.line(head + ")")
		w.line(indent + "{")
		w.line(indent + "}")
		return nil
	}
	w.line(head)
	for _, p := range b.params {
		if err := checkIdentifier(p.Name); err != nil {
			return err
		}
		for _, a := range p.Attributes {
			s, err := attribute(a)
			if err != nil {
				return err
			}
			w.line(indent + indent + s)
		}
		decl := indent + indent
		if p.Visibility != "" {
			decl += string(p.Visibility) + " "
		}
		if p.Type != "" {
			if err := checkType(string(p.Type)); err != nil {
				return err
			}
			decl += string(p.Type) + " "
		}
		decl += "$" + p.Name
		if p.HasDefault {
			lit, err := Literal(p.Default)
			if err != nil {
				return fmt.Errorf("phpsource: default of $%s: %w", p.Name, err)
			}
			decl += " = " + lit
		}
		w.line(decl + ",")
	}
	w.line(indent + ") {")
	w.line(indent + "}")
	return nil
}

// attribute prints #[Name] or #[Name(arg: value, ...)].
func attribute(a classgen.Attribute) (string, error) {
	if err := checkIdentifier(a.Name); err != nil {
		return "", err
	}
	if len(a.Args) == 0 {
		return "#[" + a.Name + "]", nil
	}
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		lit, err := Literal(arg.Value)
		if err != nil {
			return "", fmt.Errorf("phpsource: attribute %s argument %s: %w", a.Name, arg.Name, err)
		}
		args[i] = arg.Name + ": " + lit
	}
	return "#[" + a.Name + "(" + strings.Join(args, ", ") + ")]", nil
}

// qualifiedName turns a classgen namespace path into a PHP qualified name.
func qualifiedName(name string) (string, error) {
	segments := strings.Split(name, classgen.NamespaceSeparator)
	for _, s := range segments {
		if err := checkIdentifier(s); err != nil {
			return "", fmt.Errorf("%w in %q", err, name)
		}
	}
	return strings.Join(segments, `\`), nil
}

var reTypeName = regexp.MustCompile(`^\\?[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*(\\[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*)*$`)

// checkType accepts a PHP type declaration: a possibly qualified name, a
// nullable ?name, or names joined by | or &, where a union member may be a
// parenthesized intersection.
func checkType(t string) error {
	invalid := fmt.Errorf("phpsource: invalid type %q", t)
	if rest, ok := strings.CutPrefix(t, "?"); ok {
		if !reTypeName.MatchString(rest) {
			return invalid
		}
		return nil
	}
	union := strings.Split(t, "|")
	for _, member := range union {
		if len(union) > 1 && strings.HasPrefix(member, "(") && strings.HasSuffix(member, ")") {
			member = member[1 : len(member)-1]
			if !strings.Contains(member, "&") {
				return invalid
			}
		} else if len(union) > 1 && strings.Contains(member, "&") {
			return invalid
		}
		for _, name := range strings.Split(member, "&") {
			if !reTypeName.MatchString(name) {
				return invalid
			}
		}
	}
	return nil
}

func checkIdentifier(name string) error {
	if !reIdentifier.MatchString(name) {
		return fmt.Errorf("phpsource: invalid identifier %q", name)
	}
	return nil
}

type writer struct {
	strings.Builder
}

func (w *writer) line(s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *writer) docComment(text string) {
	w.line("/**")
	for _, l := range strings.Split(text, "\n") {
		if l == "" {
			w.line(" *")
			continue
		}
		w.line(" * " + l)
	}
	w.line(" */")
}
