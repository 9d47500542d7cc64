package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-extractor/internal/descriptor"
	"entity-extractor/internal/extract"
)

const (
	storePkg     = "entity-extractor/store"
	warehousePkg = "entity-extractor/warehouse"
)

func findDescriptor(t *testing.T, descs []descriptor.TypeDescriptor, name string) descriptor.TypeDescriptor {
	t.Helper()

	for _, d := range descs {
		if d.Name == name {
			return d
		}
	}

	require.Failf(t, "descriptor not found", "no descriptor named %s", name)

	return descriptor.TypeDescriptor{}
}

func findProperty(t *testing.T, d descriptor.TypeDescriptor, name string) descriptor.Property {
	t.Helper()

	for _, p := range d.Properties {
		if p.Name == name {
			return p
		}
	}

	require.Failf(t, "property not found", "%s has no property %s", d.Name, name)

	return descriptor.Property{}
}

func descriptorNames(descs []descriptor.TypeDescriptor) []string {
	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.Name)
	}

	return names
}

func propertyNames(d descriptor.TypeDescriptor) []string {
	names := make([]string, 0, len(d.Properties))
	for _, p := range d.Properties {
		names = append(names, p.Name)
	}

	return names
}

func TestAnalyzer_LoadModule(t *testing.T) {
	analyzer := NewAnalyzer()
	descs, err := analyzer.LoadModule(context.Background(), storePkg)
	require.NoError(t, err)

	// Declaration order; Cents has no constants and auditEntry is unexported
	assert.Equal(t,
		[]string{"Model", "Product", "Customer", "Order", "OrderItem", "OrderStatus", "CustomerTier"},
		descriptorNames(descs))

	for _, d := range descs {
		assert.Equal(t, storePkg, d.Namespace, d.Name)
	}

	info := analyzer.Package(storePkg)
	require.NotNil(t, info)
	assert.Equal(t, "store", info.Name)
	assert.Equal(t, descriptorNames(descs), info.Types)
}

func TestAnalyzer_PackagesSortedByPath(t *testing.T) {
	analyzer := NewAnalyzer()
	descs, err := analyzer.LoadModule(context.Background(), warehousePkg, storePkg)
	require.NoError(t, err)

	require.NotEmpty(t, descs)
	assert.Equal(t, storePkg, descs[0].Namespace)
	assert.Equal(t, warehousePkg, descs[len(descs)-1].Namespace)
}

func TestAnalyzer_StructFields(t *testing.T) {
	descs, err := NewAnalyzer().LoadModule(context.Background(), storePkg)
	require.NoError(t, err)

	order := findDescriptor(t, descs, "Order")
	assert.True(t, order.IsClass())
	assert.Equal(t, "Model", order.BaseTypeName)

	// Promoted fields come first, unexported fields are dropped
	assert.Equal(t,
		[]string{"ID", "CreatedAt", "UpdatedAt", "CustomerID", "Status", "PreviousStatus", "Items", "Meta", "Matrix", "Checksum"},
		propertyNames(order))

	assert.Equal(t, descriptor.Property{Name: "CustomerID", DeclaredTypeName: "int"}, findProperty(t, order, "CustomerID"))
	assert.Equal(t, descriptor.Property{Name: "CreatedAt", DeclaredTypeName: "Time"}, findProperty(t, order, "CreatedAt"))
	assert.Equal(t,
		descriptor.Property{Name: "UpdatedAt", DeclaredTypeName: "Time", IsNullable: true},
		findProperty(t, order, "UpdatedAt"))
}

func TestAnalyzer_EnumField(t *testing.T) {
	descs, err := NewAnalyzer().LoadModule(context.Background(), storePkg)
	require.NoError(t, err)

	order := findDescriptor(t, descs, "Order")

	status := findProperty(t, order, "Status")
	assert.Equal(t, "OrderStatus", status.DeclaredTypeName)
	assert.True(t, status.IsEnum)
	assert.False(t, status.IsNullable)

	previous := findProperty(t, order, "PreviousStatus")
	assert.True(t, previous.IsEnum)
	assert.True(t, previous.IsNullable)
}

func TestAnalyzer_SliceFields(t *testing.T) {
	descs, err := NewAnalyzer().LoadModule(context.Background(), storePkg)
	require.NoError(t, err)

	order := findDescriptor(t, descs, "Order")

	items := findProperty(t, order, "Items")
	assert.True(t, items.IsCollection)
	assert.Equal(t, "OrderItem", items.ElementTypeName)
	assert.Equal(t, "[]store.OrderItem", items.DeclaredTypeName)

	// Nested slices and byte slices are not collections
	matrix := findProperty(t, order, "Matrix")
	assert.False(t, matrix.IsCollection)
	assert.Equal(t, "[][]int", matrix.DeclaredTypeName)

	checksum := findProperty(t, order, "Checksum")
	assert.False(t, checksum.IsCollection)
	assert.Equal(t, "[]byte", checksum.DeclaredTypeName)

	meta := findProperty(t, order, "Meta")
	assert.False(t, meta.IsCollection)
	assert.Equal(t, "map[string]string", meta.DeclaredTypeName)

	// Pointer elements are unwrapped
	customer := findDescriptor(t, descs, "Customer")
	orders := findProperty(t, customer, "Orders")
	assert.True(t, orders.IsCollection)
	assert.Equal(t, "Order", orders.ElementTypeName)

	product := findDescriptor(t, descs, "Product")
	tags := findProperty(t, product, "Tags")
	assert.True(t, tags.IsCollection)
	assert.Equal(t, "string", tags.ElementTypeName)
}

func TestAnalyzer_Enums(t *testing.T) {
	descs, err := NewAnalyzer().LoadModule(context.Background(), storePkg)
	require.NoError(t, err)

	status := findDescriptor(t, descs, "OrderStatus")
	assert.True(t, status.IsEnum())
	assert.Empty(t, status.Properties)
	assert.Equal(t, []string{"StatusPending", "StatusPaid", "StatusShipped", "StatusCancelled"}, status.MemberNames)

	tier := findDescriptor(t, descs, "CustomerTier")
	assert.Equal(t, []string{"TierBasic", "TierGold", "TierPlatinum"}, tier.MemberNames)
}

func TestAnalyzer_Diagnostics(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadModule(context.Background(), storePkg)
	require.NoError(t, err)

	diags := analyzer.Diagnostics()
	assert.False(t, diags.HasErrors())

	byCode := make(map[string][]string)
	for _, d := range diags.Infos {
		byCode[d.Code] = append(byCode[d.Code], d.TypeName+"|"+d.Path)
	}

	assert.Contains(t, byCode["type_skipped"], "Cents|")
	assert.Contains(t, byCode["opaque_field_type"], "Order|Order.Meta")
	assert.Contains(t, byCode["nested_collection"], "Order|Order.Matrix")
}

func TestAnalyzer_ImportedEnumAndSelfEmbed(t *testing.T) {
	descs, err := NewAnalyzer().LoadModule(context.Background(), warehousePkg)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zone", "Bin", "Stock", "Node"}, descriptorNames(descs))

	stock := findDescriptor(t, descs, "Stock")
	assert.Empty(t, stock.BaseTypeName)
	assert.Equal(t, descriptor.Property{Name: "Product", DeclaredTypeName: "Product"}, findProperty(t, stock, "Product"))
	assert.True(t, findProperty(t, stock, "Status").IsEnum)

	pending := findProperty(t, stock, "Pending")
	assert.True(t, pending.IsCollection)
	assert.Equal(t, "OrderStatus", pending.ElementTypeName)

	// A self embed stays a plain nullable property
	node := findDescriptor(t, descs, "Node")
	assert.Empty(t, node.BaseTypeName)
	assert.Equal(t,
		[]descriptor.Property{
			{Name: "Node", DeclaredTypeName: "Node", IsNullable: true},
			{Name: "Label", DeclaredTypeName: "string"},
		},
		node.Properties)
}

func TestAnalyzer_LoadNamespace(t *testing.T) {
	analyzer := NewAnalyzer()

	// store is only reachable as an import of warehouse
	descs, err := analyzer.LoadNamespace(context.Background(), storePkg, warehousePkg)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Model", "Product", "Customer", "Order", "OrderItem", "OrderStatus", "CustomerTier"},
		descriptorNames(descs))
	assert.NotNil(t, analyzer.Package(storePkg))
	assert.Nil(t, analyzer.Package(warehousePkg))
}

func TestAnalyzer_LoadNamespaceNotFound(t *testing.T) {
	_, err := NewAnalyzer().LoadNamespace(context.Background(), "entity-extractor/stor", warehousePkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNamespaceNotFound)

	var notFound *NamespaceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "entity-extractor/stor", notFound.Namespace)
	require.NotEmpty(t, notFound.Suggestions)
	assert.Equal(t, storePkg, notFound.Suggestions[0])
	assert.Contains(t, err.Error(), "did you mean entity-extractor/store")
}

func TestAnalyzer_LoadModuleError(t *testing.T) {
	_, err := NewAnalyzer().LoadModule(context.Background(), "entity-extractor/does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModuleLoad)
	assert.False(t, errors.Is(err, ErrNamespaceNotFound))

	var loadErr *ModuleLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, []string{"entity-extractor/does-not-exist"}, loadErr.Patterns)
}

func TestProviders(t *testing.T) {
	ctx := context.Background()

	module, err := ModuleProvider{Patterns: []string{storePkg}}.Descriptors(ctx)
	require.NoError(t, err)

	namespace, err := NamespaceProvider{Namespace: storePkg, Patterns: []string{warehousePkg}}.Descriptors(ctx)
	require.NoError(t, err)

	assert.Equal(t, module, namespace)
}

func TestProviders_UseGivenAnalyzer(t *testing.T) {
	ctx := context.Background()

	moduleAnalyzer := NewAnalyzer()
	_, err := ModuleProvider{Analyzer: moduleAnalyzer, Patterns: []string{storePkg}}.Descriptors(ctx)
	require.NoError(t, err)
	assert.NotNil(t, moduleAnalyzer.Package(storePkg))

	namespaceAnalyzer := NewAnalyzer()
	p := NamespaceProvider{Analyzer: namespaceAnalyzer, Namespace: storePkg, Patterns: []string{warehousePkg}}
	_, err = p.Descriptors(ctx)
	require.NoError(t, err)
	assert.NotNil(t, namespaceAnalyzer.Package(storePkg))
}

func TestExtractStore(t *testing.T) {
	opts := extract.DefaultOptions()
	opts.UseNamingHeuristics = true
	opts.ForeignKeySuffix = "ID"

	res, err := extract.FromProvider(context.Background(), ModuleProvider{Patterns: []string{storePkg}}, opts)
	require.NoError(t, err)

	assert.Equal(t, []extract.Relationship{
		{FromEntity: "Model", ToEntity: "Product", Key: extract.KeyInherits},
		{FromEntity: "Customer", ToEntity: "Order", Key: extract.KeyHasChildren},
		{FromEntity: "Customer", ToEntity: "CustomerTier", Key: extract.KeyEnum},
		{FromEntity: "Model", ToEntity: "Customer", Key: extract.KeyInherits},
		{FromEntity: "Order", ToEntity: "Customer", Key: extract.KeyReferences},
		{FromEntity: "Order", ToEntity: "OrderStatus", Key: extract.KeyEnum},
		{FromEntity: "Order", ToEntity: "OrderItem", Key: extract.KeyHasChildren},
		{FromEntity: "Model", ToEntity: "Order", Key: extract.KeyInherits},
		{FromEntity: "OrderItem", ToEntity: "Order", Key: extract.KeyReferences},
		{FromEntity: "OrderItem", ToEntity: "Product", Key: extract.KeyReferences},
	}, res.Relationships)

	order := res.Entities[3]
	require.Equal(t, "Order", order.Name)

	items, ok := order.Attribute("Items")
	require.True(t, ok)
	assert.Equal(t, "List<OrderItem>", items.Type)

	status, ok := res.Entities[5].Attribute(extract.ValuesAttribute)
	require.True(t, ok)
	assert.Equal(t, []string{"StatusPending", "StatusPaid", "StatusShipped", "StatusCancelled"}, status.Values)
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "enum", TypeKindEnum.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "type parameter", TypeKindTypeParam.String())
	assert.Equal(t, "Unknown", TypeKindUnknown.String())
}
