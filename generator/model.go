package generator

import (
	"github.com/takumakei/typed-extconf-gen/classgen"
	"github.com/takumakei/typed-extconf-gen/propfile"
)

// Language selects the printer.
type Language string

const (
	LangPHP Language = "php"
	LangGo  Language = "go"
)

// Model is everything one run needs to produce its output.
type Model struct {
	Gen     Gen
	Input   Input
	Request classgen.Request
	Output  Output
}

type Gen struct {
	Name               string
	AttributeNamespace string
}

type Input struct {
	Path     string
	Document *propfile.Document
}

type Output struct {
	Path      string // empty for stdout
	Language  Language
	Package   string
	Formatter string
}
