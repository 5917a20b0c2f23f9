package classgen

// Metadata argument names understood by the hydration layer.
const (
	ArgPath         = "path"
	ArgRequired     = "required"
	ArgExtensionKey = "extensionKey"
)

// Arg is a named attribute argument.
type Arg struct {
	Name  string
	Value any
}

// Attribute is a metadata annotation attached to a class or a parameter.
type Attribute struct {
	Name string
	Args []Arg
}

// Lookup returns the value of the named argument.
func (a Attribute) Lookup(name string) (any, bool) {
	for _, arg := range a.Args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// AssembleMetadata returns the mapping arguments of a property, path first.
//
// Both arguments are omitted whenever the hydration layer's convention
// already implies them: path only appears when it was declared and differs
// from the name, required only when it was declared exactly true.
func AssembleMetadata(p PropertySpec) []Arg {
	var args []Arg
	name, _ := p.Name()
	if path, ok := p.Path(); ok && path != name {
		args = append(args, Arg{Name: ArgPath, Value: path})
	}
	if p.Required() {
		args = append(args, Arg{Name: ArgRequired, Value: true})
	}
	return args
}
