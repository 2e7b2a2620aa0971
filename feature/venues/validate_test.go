package venues

import (
	"testing"

	"venue-manager/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(entries ...struct {
	key  string
	full []string
	abbr []string
}) *table.Table {
	t := table.New()
	for _, e := range entries {
		t.Set(e.key, table.Record{FullNames: e.full, AbbrNames: e.abbr})
	}
	return t
}

func entry(key string, full, abbr []string) struct {
	key  string
	full []string
	abbr []string
} {
	return struct {
		key  string
		full []string
		abbr []string
	}{key, full, abbr}
}

func TestValidate_LengthMismatchDropsRecord(t *testing.T) {
	in := buildTable(entry("A", []string{"X", "Y"}, []string{"x"}))

	cleaned, diags, ok := Validate(in)

	assert.False(t, ok)
	assert.Equal(t, 0, cleaned.Len())
	require.Len(t, diags, 1)
	assert.Equal(t, DiagLengthMismatch, diags[0].Kind)
	assert.Equal(t, "A", diags[0].Acronym)
}

func TestValidate_DuplicateFullNameDropsBothRecords(t *testing.T) {
	in := buildTable(
		entry("A", []string{"X"}, []string{"x"}),
		entry("B", []string{"X"}, []string{"y"}),
	)

	cleaned, diags, ok := Validate(in)

	assert.False(t, ok)
	assert.Equal(t, 0, cleaned.Len())
	require.Len(t, diags, 1)
	assert.Equal(t, DiagDuplicateName, diags[0].Kind)
	assert.Equal(t, "B", diags[0].Acronym)
	assert.Equal(t, "A", diags[0].Other)
	assert.Equal(t, "names_full", diags[0].Field)
}

func TestValidate_DuplicateIsCaseInsensitive(t *testing.T) {
	in := buildTable(
		entry("A", []string{"Machine Learning"}, []string{"ML"}),
		entry("B", []string{"MACHINE LEARNING"}, []string{"ml"}),
	)

	cleaned, diags, ok := Validate(in)

	assert.False(t, ok)
	assert.Equal(t, 0, cleaned.Len())
	// Both the abbreviated and the full name collide.
	assert.Len(t, diags, 2)
}

func TestValidate_FuzzyMatchStripsParentheses(t *testing.T) {
	in := buildTable(
		entry("NIPS", []string{"Neural Information Processing Systems"}, []string{"NeurIPS"}),
		entry("NEURIPS", []string{"Neural Information Processing Systems (NeurIPS)"}, []string{"(NeurIPS)"}),
	)

	cleaned, diags, ok := Validate(in)

	assert.False(t, ok)
	assert.Equal(t, 0, cleaned.Len())
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, DiagFuzzyMatch, d.Kind)
	}
}

func TestValidate_CleanTableSurvivesInOrder(t *testing.T) {
	in := buildTable(
		entry("NIPS", []string{"Advances in Neural Information Processing Systems"}, []string{"NeurIPS"}),
		entry("ICML", []string{"International Conference on Machine Learning"}, []string{"ICML 2021"}),
		entry("COLT", []string{"Conference on Learning Theory"}, []string{"COLT"}),
	)

	cleaned, diags, ok := Validate(in)

	assert.True(t, ok)
	assert.Empty(t, diags)
	assert.Equal(t, []string{"NIPS", "ICML", "COLT"}, cleaned.Keys())
}

func TestValidate_OffenderRemovalSparesOthers(t *testing.T) {
	in := buildTable(
		entry("A", []string{"Alpha", "Extra"}, []string{"a"}),
		entry("B", []string{"Beta"}, []string{"b"}),
		entry("C", []string{"beta"}, []string{"c"}),
		entry("D", []string{"Delta"}, []string{"d"}),
	)

	cleaned, diags, ok := Validate(in)

	// A fails the length check, B and C share a full name; D survives.
	assert.False(t, ok)
	assert.Equal(t, []string{"D"}, cleaned.Keys())
	assert.Len(t, diags, 2)
}

func TestValidate_PairingInvariantHolds(t *testing.T) {
	in := buildTable(
		entry("A", []string{"Alpha"}, []string{"a", "aa"}),
		entry("B", []string{"Beta", "Second Beta"}, []string{"b", "sb"}),
	)

	cleaned, _, _ := Validate(in)

	for _, key := range cleaned.Keys() {
		rec, _ := cleaned.Get(key)
		assert.Len(t, rec.AbbrNames, len(rec.FullNames))
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "neural information processing systems neurips",
		normalizeName("Neural Information Processing Systems (NeurIPS)"))
	assert.Equal(t, "jmlr", normalizeName("JMLR"))
}
