package classgen

// Visibility of a class member.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// ClassDecl declares the class of a file unit.
type ClassDecl struct {
	Name       string
	Comment    string
	Final      bool
	ReadOnly   bool
	Attributes []Attribute
}

// ParamDecl declares a promoted constructor parameter, which is at the same
// time a field of the class.
type ParamDecl struct {
	Name       string
	Type       TypeTag
	Visibility Visibility
	Default    any
	HasDefault bool
	Attributes []Attribute
}

// SourceBuilder prints one file unit holding a single class.
//
// ClassGenerator calls the methods in declaration order: StrictTypes,
// Namespace, Class, Constructor, PromotedParameter once per parameter and
// finally Render. Namespaces and used names are given with
// NamespaceSeparator; a builder translates them to its own syntax.
type SourceBuilder interface {
	StrictTypes()
	Namespace(name string, uses []string)
	Class(c ClassDecl)
	Constructor(visibility Visibility)
	PromotedParameter(p ParamDecl)
	Render() (string, error)
}

// BuilderFunc returns a fresh SourceBuilder for every generated file.
type BuilderFunc func() SourceBuilder
