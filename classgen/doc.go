// Package classgen turns a list of configuration property declarations into
// the source text of an immutable, typed configuration class.
//
// The package performs no I/O. It derives the namespace from the extension
// key, coerces each declared default to its declared type, assembles the
// mapping metadata read later by the hydration layer and emits the result
// into a [SourceBuilder], which owns the actual text printing.
//
//	gen := classgen.New(phpsource.NewBuilder)
//	src, err := gen.Generate("acme_tools", "Settings", []classgen.PropertySpec{
//		{"name": "apiKey", "type": "string", "required": true},
//	})
package classgen
