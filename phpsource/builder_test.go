package phpsource_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takumakei/typed-extconf-gen/classgen"
	"github.com/takumakei/typed-extconf-gen/phpsource"
)

const settingsPHP = `<?php

declare(strict_types=1);

namespace Acme\Tools\Configuration;

use mteu\TypedExtConf\Attribute\ExtConfProperty;
use mteu\TypedExtConf\Attribute\ExtensionConfig;

/**
 * Settings.
 *
 * Typed configuration class for extension 'acme_tools'.
 *
 * This class provides type-safe access to extension configuration properties.
 * Generated using typed-extconf-gen.
 */
#[ExtensionConfig(extensionKey: 'acme_tools')]
final readonly class Settings
{
    public function __construct(
        #[ExtConfProperty(required: true)]
        public string $apiKey,
        #[ExtConfProperty]
        public int $timeout = 30,
        #[ExtConfProperty(path: 'tuning.ratio')]
        public float $ratio = 0.5,
        #[ExtConfProperty]
        public array $hosts = ['a', 'b'],
        #[ExtConfProperty]
        public array $options = ['debug' => true, 'level' => 3],
        #[ExtConfProperty]
        public bool $enabled = true,
    ) {
    }
}
`

func TestGenerateSettings(t *testing.T) {
	gen := classgen.New(phpsource.NewBuilder)
	src, err := gen.Generate("acme_tools", "Settings", []classgen.PropertySpec{
		{"name": "apiKey", "type": "string", "default": nil, "required": true},
		{"name": "timeout", "type": "int", "default": "30", "path": "timeout"},
		{"name": "ratio", "type": "float", "default": 0.5, "path": "tuning.ratio", "required": false},
		{"name": "hosts", "type": "array", "default": []any{"a", "b"}},
		{"name": "options", "type": "array", "default": classgen.Map{
			{Key: "debug", Value: true},
			{Key: "level", Value: 3},
		}},
		{"name": "enabled", "type": "bool", "default": "yes"},
		{"name": "ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, settingsPHP, src)

	again, err := gen.Generate("acme_tools", "Settings", []classgen.PropertySpec{
		{"name": "apiKey", "type": "string", "default": nil, "required": true},
	})
	require.NoError(t, err)
	assert.Contains(t, again, "namespace Acme\\Tools\\Configuration;")
	assert.Contains(t, again, "        #[ExtConfProperty(required: true)]\n        public string $apiKey,\n")
	assert.NotContains(t, again, "path:")
	assert.NotContains(t, again, "$apiKey =")
}

func TestRenderEmptyConstructor(t *testing.T) {
	b := phpsource.New()
	b.Class(classgen.ClassDecl{Name: "Empty", Final: true})
	b.Constructor(classgen.Public)

	src, err := b.Render()
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\nfinal class Empty\n{\n    public function __construct()\n    {\n    }\n}\n", src)
}

func TestRenderErrors(t *testing.T) {
	t.Run("no class", func(t *testing.T) {
		_, err := phpsource.New().Render()
		assert.Error(t, err)
	})

	t.Run("degenerate namespace", func(t *testing.T) {
		b := phpsource.New()
		b.Namespace(classgen.DeriveNamespace(""), nil)
		b.Class(classgen.ClassDecl{Name: "Settings"})
		_, err := b.Render()
		assert.ErrorContains(t, err, "invalid identifier")
	})

	t.Run("parameter name", func(t *testing.T) {
		_, err := classgen.New(phpsource.NewBuilder).Generate("acme_tools", "Settings", []classgen.PropertySpec{
			{"name": "api-key", "type": "string"},
		})
		assert.ErrorContains(t, err, `invalid identifier "api-key"`)
	})

	t.Run("class name", func(t *testing.T) {
		_, err := classgen.New(phpsource.NewBuilder).Generate("acme_tools", "1st", []classgen.PropertySpec{
			{"name": "a", "type": "string"},
		})
		assert.ErrorContains(t, err, `invalid identifier "1st"`)
	})

	for _, typ := range []classgen.TypeTag{
		"my type) { evil(); } function f(",
		"list<string>",
		"?int|null",
		"A&B|C",
		"(A|B)&C",
		"int|",
		"?",
	} {
		t.Run("type "+string(typ), func(t *testing.T) {
			_, err := classgen.New(phpsource.NewBuilder).Generate("acme_tools", "Settings", []classgen.PropertySpec{
				{"name": "a", "type": string(typ), "default": "x"},
			})
			assert.ErrorContains(t, err, "phpsource: invalid type")
		})
	}

	t.Run("unsupported default", func(t *testing.T) {
		b := phpsource.New()
		b.Class(classgen.ClassDecl{Name: "Settings"})
		b.Constructor(classgen.Public)
		b.PromotedParameter(classgen.ParamDecl{Name: "ch", Type: "mixed", Default: make(chan int), HasDefault: true})
		_, err := b.Render()
		assert.ErrorContains(t, err, "default of $ch")
	})
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: "null"},
		{in: "plain", want: "'plain'"},
		{in: `it's C:\dir`, want: `'it\'s C:\\dir'`},
		{in: "two\nlines", want: "'two\nlines'"},
		{in: true, want: "true"},
		{in: false, want: "false"},
		{in: 0, want: "0"},
		{in: -42, want: "-42"},
		{in: int64(7), want: "7"},
		{in: uint16(7), want: "7"},
		{in: 0.0, want: "0.0"},
		{in: 30.0, want: "30.0"},
		{in: 0.5, want: "0.5"},
		{in: -1.25, want: "-1.25"},
		{in: 1234567.0, want: "1234567.0"},
		{in: 1e21, want: "1e+21"},
		{in: 0.00001, want: "1e-05"},
		{in: math.Inf(1), want: "INF"},
		{in: math.Inf(-1), want: "-INF"},
		{in: math.NaN(), want: "NAN"},
		{in: []any{}, want: "[]"},
		{in: []any{1, "a", []any{true}}, want: "[1, 'a', [true]]"},
		{in: classgen.Map{{Key: "z", Value: 1}, {Key: "a", Value: nil}}, want: "['z' => 1, 'a' => null]"},
		{in: map[string]any{"b": 2, "a": 1}, want: "['a' => 1, 'b' => 2]"},
	}
	for _, tt := range tests {
		got, err := phpsource.Literal(tt.in)
		require.NoError(t, err, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestRenderTypes(t *testing.T) {
	for _, typ := range []classgen.TypeTag{"mixed", "?string", `\Acme\Tools\Clock`, "int|string", "A&B", "(A&B)|null"} {
		t.Run(string(typ), func(t *testing.T) {
			b := phpsource.New()
			b.Class(classgen.ClassDecl{Name: "Settings"})
			b.Constructor(classgen.Public)
			b.PromotedParameter(classgen.ParamDecl{Name: "a", Type: typ, Visibility: classgen.Public})
			src, err := b.Render()
			require.NoError(t, err)
			assert.Contains(t, src, "        public "+string(typ)+" $a,\n")
		})
	}
}

func TestRenderRedeclaredParameter(t *testing.T) {
	src, err := classgen.New(phpsource.NewBuilder).Generate("acme_tools", "Settings", []classgen.PropertySpec{
		{"name": "a", "type": "int", "default": 1},
		{"name": "b", "type": "bool"},
		{"name": "a", "type": "string", "default": "x"},
	})
	require.NoError(t, err)
	assert.Contains(t, src, "        public string $a = 'x',\n        #[ExtConfProperty]\n        public bool $b,\n")
	assert.NotContains(t, src, "$a = 1")
	assert.Equal(t, 1, strings.Count(src, "$a"))
}
