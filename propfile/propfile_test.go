package propfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takumakei/typed-extconf-gen/classgen"
)

func TestDecodeDocument(t *testing.T) {
	doc, err := Decode(strings.NewReader(`
extensionKey: acme_tools
className: Settings
properties:
  - name: apiKey
    type: string
    required: true
    label: API key
  - name: options
    type: array
    default:
      zeta: 1
      alpha: [a, b]
      nested:
        second: 2.5
        first: ~
  - name: since
    type: string
    default: 2024-01-02
  - just a string
`))
	require.NoError(t, err)

	assert.Equal(t, "acme_tools", doc.ExtensionKey)
	assert.Equal(t, "Settings", doc.ClassName)
	require.Len(t, doc.Properties, 4)

	assert.Equal(t, classgen.PropertySpec{
		"name":     "apiKey",
		"type":     "string",
		"required": true,
		"label":    "API key",
	}, doc.Properties[0])

	assert.Equal(t, classgen.Map{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: []any{"a", "b"}},
		{Key: "nested", Value: classgen.Map{
			{Key: "second", Value: 2.5},
			{Key: "first", Value: nil},
		}},
	}, doc.Properties[1].Default())

	assert.Equal(t, "2024-01-02", doc.Properties[2].Default())

	assert.Empty(t, doc.Properties[3])
	assert.False(t, doc.Properties[3].Valid())
}

func TestDecodeList(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"name": "port", "type": "int", "default": "8080"}]`))
	require.NoError(t, err)

	assert.Empty(t, doc.ExtensionKey)
	assert.Empty(t, doc.ClassName)
	assert.Equal(t, []classgen.PropertySpec{{"name": "port", "type": "int", "default": "8080"}}, doc.Properties)
}

func TestDecodeAliases(t *testing.T) {
	doc, err := Decode(strings.NewReader(`
defaults: &hosts [a, b]
properties:
  - name: hosts
    type: array
    default: *hosts
`))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, doc.Properties[0].Default())
}

func TestDecodeMissingNameStaysMalformed(t *testing.T) {
	doc, err := Decode(strings.NewReader(`
properties:
  - type: string
  - name: 42
    type: int
`))
	require.NoError(t, err)
	require.Len(t, doc.Properties, 2)
	assert.Empty(t, classgen.ValidProperties(doc.Properties))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Decode(strings.NewReader("just text"))
	assert.ErrorIs(t, err, ErrMalformedDocument)

	_, err = Decode(strings.NewReader("properties: {name: a}"))
	assert.ErrorIs(t, err, ErrMalformedDocument)

	_, err = Decode(strings.NewReader("properties: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("className: Settings\nproperties: []\n"), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Settings", doc.ClassName)
	assert.Empty(t, doc.Properties)

	req := doc.Request()
	assert.ErrorIs(t, req.Validate(), classgen.ErrInvalidRequest)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
