package venues

import (
	"testing"

	"venue-manager/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_UserOverridesDefault(t *testing.T) {
	def := buildTable(entry("A", []string{"Default Name"}, []string{"dn"}))
	user := buildTable(entry("A", []string{"User Name"}, []string{"un"}))

	res := Merge(def, user, table.New())

	assert.True(t, res.Safe)
	assert.Empty(t, res.Excluded)
	rec, ok := res.Table.Get("A")
	require.True(t, ok)
	assert.Equal(t, []string{"User Name"}, rec.FullNames)
	assert.Equal(t, []string{"un"}, rec.AbbrNames)
}

func TestMerge_DefaultOverridesNew(t *testing.T) {
	def := buildTable(entry("A", []string{"Curated"}, []string{"c"}))
	newOnly := buildTable(
		entry("A", []string{"Parsed"}, []string{"p"}),
		entry("B", []string{"Brand New"}, []string{"bn"}),
	)

	res := Merge(def, table.New(), newOnly)

	assert.True(t, res.Safe)
	rec, _ := res.Table.Get("A")
	assert.Equal(t, []string{"Curated"}, rec.FullNames)
	assert.True(t, res.Table.Has("B"))
}

func TestMerge_Idempotent(t *testing.T) {
	tbl := buildTable(
		entry("A", []string{"Alpha"}, []string{"a"}),
		entry("B", []string{"Beta"}, []string{"b"}),
	)

	res := Merge(tbl, tbl, tbl)

	assert.True(t, res.Safe)
	assert.True(t, res.Table.Equal(tbl))
}

func TestMerge_ExcludesConflictingNewKeys(t *testing.T) {
	def := buildTable(entry("NIPS",
		[]string{"Advances in Neural Information Processing Systems"}, []string{"NeurIPS"}))
	newOnly := buildTable(
		entry("NEURIPS", []string{"Advances in Neural Information Processing Systems"}, []string{"x"}),
		entry("ICML", []string{"International Conference on Machine Learning"}, []string{"ICML"}),
	)

	res := Merge(def, table.New(), newOnly)

	assert.True(t, res.Safe)
	assert.Equal(t, []string{"NEURIPS"}, res.Excluded)
	assert.NotEmpty(t, res.Diags)
	assert.Equal(t, []string{"ICML", "NIPS"}, res.Table.Keys())
}

func TestMerge_DefaultUserConflictIsUnsafe(t *testing.T) {
	def := buildTable(
		entry("A", []string{"Shared Venue"}, []string{"a"}),
		entry("B", []string{"Shared Venue"}, []string{"b"}),
	)

	res := Merge(def, table.New(), table.New())

	// Both offenders belong to the curated tier; nothing can be excluded
	// automatically and the merge stays unsafe.
	assert.False(t, res.Safe)
	assert.Empty(t, res.Excluded)
	assert.NotEmpty(t, res.Diags)
}

func TestMerge_CollidingKeyKeepsFirstPosition(t *testing.T) {
	def := buildTable(
		entry("A", []string{"Alpha"}, []string{"a"}),
		entry("B", []string{"Beta"}, []string{"b"}),
	)
	user := buildTable(entry("A", []string{"Alpha Prime"}, []string{"ap"}))
	newOnly := buildTable(entry("C", []string{"Gamma"}, []string{"g"}))

	res := Merge(def, user, newOnly)

	require.True(t, res.Safe)
	assert.Equal(t, []string{"C", "A", "B"}, res.Table.Keys())
	rec, _ := res.Table.Get("A")
	assert.Equal(t, []string{"Alpha Prime"}, rec.FullNames)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	def := buildTable(entry("A", []string{"Alpha"}, []string{"a"}))
	newOnly := buildTable(entry("B", []string{"Beta"}, []string{"b"}))

	res := Merge(def, table.New(), newOnly)

	rec, _ := res.Table.Get("A")
	rec.FullNames[0] = "mutated"
	orig, _ := def.Get("A")
	assert.Equal(t, []string{"Alpha"}, orig.FullNames)
	assert.Equal(t, 1, newOnly.Len())
}
