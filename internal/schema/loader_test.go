package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-extractor/internal/descriptor"
)

const sampleYAML = `
types:
  - name: Order
    properties:
      - name: CustomerId
        type: int
      - name: Items
        type: List
        collection: true
        element: OrderItem
      - name: Note
        type: string
        nullable: true
  - name: OrderItem
    base: Entity
  - name: Status
    kind: enum
    members: [Pending, Paid]
`

func sampleFile() *File {
	return &File{
		Version: CurrentVersion,
		Types: []descriptor.TypeDescriptor{
			{
				Kind: descriptor.KindClass,
				Name: "Order",
				Properties: []descriptor.Property{
					{Name: "CustomerId", DeclaredTypeName: "int"},
					{Name: "Items", DeclaredTypeName: "List", IsCollection: true, ElementTypeName: "OrderItem"},
					{Name: "Note", DeclaredTypeName: "string", IsNullable: true},
				},
			},
			{Kind: descriptor.KindClass, Name: "OrderItem", BaseTypeName: "Entity"},
			{Kind: descriptor.KindEnum, Name: "Status", MemberNames: []string{"Pending", "Paid"}},
		},
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	require.NotNil(t, f)

	// Defaults applied
	assert.Equal(t, "1", f.Version)
	assert.Equal(t, sampleFile(), f)
}

func TestParse_JSON(t *testing.T) {
	data := `{
		"version": "1",
		"types": [
			{"name": "Shape", "kind": "class"},
			{"name": "Circle", "base": "Shape", "properties": [{"name": "Radius", "type": "double"}]}
		]
	}`

	f, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)

	require.Len(t, f.Types, 2)
	assert.Equal(t, "Shape", f.Types[1].BaseTypeName)
	assert.Equal(t, descriptor.KindClass, f.Types[1].Kind)
	assert.Equal(t, []descriptor.Property{{Name: "Radius", DeclaredTypeName: "double"}}, f.Types[1].Properties)
}

func TestParse_TOML(t *testing.T) {
	data := `
version = "1"

[[types]]
name = "Customer"

  [[types.properties]]
  name = "Tier"
  type = "Tier"
  enum = true

[[types]]
name = "Tier"
kind = "enum"
members = ["Basic", "Gold"]
`

	f, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)

	require.Len(t, f.Types, 2)
	assert.Equal(t, descriptor.KindClass, f.Types[0].Kind)
	assert.Equal(t, []descriptor.Property{{Name: "Tier", DeclaredTypeName: "Tier", IsEnum: true}}, f.Types[0].Properties)
	assert.Equal(t, []string{"Basic", "Gold"}, f.Types[1].MemberNames)
}

func TestParse_UnknownKeys(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml", FormatYAML, "types:\n  - name: A\n    colour: red\n"},
		{"json", FormatJSON, `{"types": [{"name": "A", "colour": "red"}]}`},
		{"toml", FormatTOML, "[[types]]\nname = \"A\"\ncolour = \"red\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "colour")
		})
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)
	assert.Empty(t, f.Types)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("x"), Format("xml"))
	require.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(sampleFile(), format)
			require.NoError(t, err)

			f, err := Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, sampleFile(), f)
		})
	}
}

func TestWriteFile_LoadFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"model.yaml", "model.yml", "model.json", "model.toml"} {
		path := filepath.Join(dir, name)

		require.NoError(t, WriteFile(sampleFile(), path))

		f, err := LoadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, sampleFile(), f, name)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "model.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema file extension")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"dir/a.json", FormatJSON},
		{"a.toml", FormatTOML},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFromPath("a")
	require.Error(t, err)
}
