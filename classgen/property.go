package classgen

// TypeTag is the declared type of a property. Tags outside the known set are
// handed to the printer verbatim and coerce like TypeString.
type TypeTag string

const (
	TypeString TypeTag = "string"
	TypeBool   TypeTag = "bool"
	TypeInt    TypeTag = "int"
	TypeFloat  TypeTag = "float"
	TypeArray  TypeTag = "array"
)

// Keys of a PropertySpec.
const (
	KeyName     = "name"
	KeyType     = "type"
	KeyDefault  = "default"
	KeyPath     = "path"
	KeyRequired = "required"
	KeyLabel    = "label"
)

// PropertySpec declares one configuration field.
//
// It is a loosely typed record because declarations come from untyped
// documents: a spec whose name or type is missing or not a string is not an
// error, it is simply left out of the generated class.
type PropertySpec map[string]any

// Name returns the declared field name and whether it is a string.
func (p PropertySpec) Name() (string, bool) {
	return p.str(KeyName)
}

// Type returns the declared type tag and whether it is a string.
func (p PropertySpec) Type() (TypeTag, bool) {
	s, ok := p.str(KeyType)
	return TypeTag(s), ok
}

// Default returns the raw default value, nil when none was declared.
func (p PropertySpec) Default() any {
	return p[KeyDefault]
}

// Path returns the source path within the configuration store and whether
// one was declared as a string.
func (p PropertySpec) Path() (string, bool) {
	return p.str(KeyPath)
}

// Required reports whether the spec is marked required with exactly true.
func (p PropertySpec) Required() bool {
	v, ok := p[KeyRequired].(bool)
	return ok && v
}

// Label returns the human readable label. Generation does not use it.
func (p PropertySpec) Label() string {
	s, _ := p.str(KeyLabel)
	return s
}

// Valid reports whether the spec carries a non-empty string name and type.
func (p PropertySpec) Valid() bool {
	name, ok := p.Name()
	if !ok || name == "" {
		return false
	}
	t, ok := p.Type()
	return ok && t != ""
}

func (p PropertySpec) str(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// ValidProperties returns the specs that can become class parameters, in
// input order. Malformed specs are dropped without diagnostics.
func ValidProperties(specs []PropertySpec) []PropertySpec {
	valid := make([]PropertySpec, 0, len(specs))
	for _, p := range specs {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	return valid
}
