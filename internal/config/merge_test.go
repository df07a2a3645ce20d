package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func keysOf(mapping *yaml.Node) []string {
	var keys []string
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	return keys
}

func TestMergeAddsNewKeys(t *testing.T) {
	target := mustParse(t, `
qc:
  threads: 4
`)
	src := mustParse(t, `
qc:
  kz_threshold: 0.55
mapping:
  genomes_fp: "genomes"
`)

	merged, err := Merge(target, src)
	require.NoError(t, err)

	assert.Equal(t, "0.55", lookup(t, merged, "qc", "kz_threshold"))
	assert.Equal(t, "4", lookup(t, merged, "qc", "threads"))
	assert.Equal(t, "genomes", lookup(t, merged, "mapping", "genomes_fp"))
}

func TestMergeComposes(t *testing.T) {
	target := mustParse(t, ``)

	_, err := Merge(target, mustParse(t, `qc: {threads: 4}`))
	require.NoError(t, err)
	_, err = Merge(target, mustParse(t, `qc: {kz_threshold: 0.55}`))
	require.NoError(t, err)

	// Successive merges accumulate within nested mappings.
	assert.Equal(t, "4", lookup(t, target, "qc", "threads"))
	assert.Equal(t, "0.55", lookup(t, target, "qc", "kz_threshold"))

	// An empty source is a no-op.
	before := dumpString(t, target)
	_, err = Merge(target, mustParse(t, ``))
	require.NoError(t, err)
	assert.Equal(t, before, dumpString(t, target))
}

func TestMergeRecursesAndOverwrites(t *testing.T) {
	target := mustParse(t, `
all:
  output_fp: "out"
  paired_end: true
qc:
  threads: 4
`)
	src := mustParse(t, `
qc:
  threads: 16
`)

	merged, err := Merge(target, src)
	require.NoError(t, err)

	assert.Equal(t, "16", lookup(t, merged, "qc", "threads"))
	// Untouched siblings keep their values.
	assert.Equal(t, "out", lookup(t, merged, "all", "output_fp"))
	assert.Equal(t, "true", lookup(t, merged, "all", "paired_end"))
}

func TestMergeReplacesSequencesWholesale(t *testing.T) {
	target := mustParse(t, `
qc:
  fwd_adapters: ["AAAA", "CCCC"]
`)
	src := mustParse(t, `
qc:
  fwd_adapters: ["GGGG"]
`)

	merged, err := Merge(target, src)
	require.NoError(t, err)

	adapters := mappingValue(Section(merged, "qc"), "fwd_adapters")
	require.NotNil(t, adapters)
	require.Equal(t, yaml.SequenceNode, adapters.Kind)
	require.Len(t, adapters.Content, 1)
	assert.Equal(t, "GGGG", adapters.Content[0].Value)
}

func TestMergeReplacesOnTypeMismatch(t *testing.T) {
	target := mustParse(t, `
qc: off
`)
	src := mustParse(t, `
qc:
  threads: 4
`)

	merged, err := Merge(target, src)
	require.NoError(t, err)

	assert.Equal(t, "4", lookup(t, merged, "qc", "threads"))
}

func TestMergeReturnsTargetAndKeepsSource(t *testing.T) {
	target := mustParse(t, `qc: {threads: 4}`)
	src := mustParse(t, `qc: {threads: 16}`)
	before := dumpString(t, src)

	merged, err := Merge(target, src)
	require.NoError(t, err)

	assert.Same(t, target, merged)
	assert.Equal(t, before, dumpString(t, src))
}

func TestMergeKeepsComments(t *testing.T) {
	target := mustParse(t, `
qc:
  threads: 4 # worker count
`)
	src := mustParse(t, `
qc:
  threads: 8
`)

	merged, err := Merge(target, src)
	require.NoError(t, err)

	out := dumpString(t, merged)
	assert.Contains(t, out, "threads: 8")
	assert.Contains(t, out, "# worker count")
}

func TestMergeRequiresMappings(t *testing.T) {
	mapping := mustParse(t, `a: 1`)

	_, err := Merge(nil, mapping)
	assert.Error(t, err)

	_, err = Merge(mapping, nil)
	assert.Error(t, err)

	_, _, err = MergeStrict(nil, mapping)
	assert.Error(t, err)
}

func TestMergeStrictNeverAddsKeys(t *testing.T) {
	target := mustParse(t, `
all:
  output_fp: "out"
qc:
  threads: 4
`)
	src := mustParse(t, `
qc:
  threads: 16
  new_opt: 1
newsec:
  a: 1
`)

	merged, skipped, err := MergeStrict(target, src)
	require.NoError(t, err)

	assert.Equal(t, "16", lookup(t, merged, "qc", "threads"))
	assert.Nil(t, Section(merged, "newsec"))
	assert.Equal(t, []string{"all", "qc"}, keysOf(merged))
	assert.Equal(t, []string{"threads"}, keysOf(Section(merged, "qc")))

	// Every skipped key is reported by its dotted path.
	assert.Equal(t, []string{"qc.new_opt", "newsec"}, skipped)
}

func TestMergeStrictOverwritesExisting(t *testing.T) {
	target := mustParse(t, `
qc:
  threads: 4
mapping:
  samtools_opts: ""
`)
	src := mustParse(t, `
qc:
  threads: 16
mapping: off
`)

	merged, skipped, err := MergeStrict(target, src)
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, "16", lookup(t, merged, "qc", "threads"))

	// A scalar may overwrite a whole mapping; that removes keys, never adds.
	mapping := Section(merged, "mapping")
	require.NotNil(t, mapping)
	assert.Equal(t, yaml.ScalarNode, mapping.Kind)
	assert.Equal(t, "off", mapping.Value)
}

func TestMergeStrictSkipsMappingOntoScalar(t *testing.T) {
	target := mustParse(t, `
qc: off
`)
	src := mustParse(t, `
qc:
  threads: 4
`)

	merged, skipped, err := MergeStrict(target, src)
	require.NoError(t, err)

	assert.Equal(t, []string{"qc"}, skipped)
	qc := Section(merged, "qc")
	require.NotNil(t, qc)
	assert.Equal(t, "off", qc.Value)
}

func TestUpdateFoldsExtensions(t *testing.T) {
	sunbeamDir := t.TempDir()
	writeExtension(t, sunbeamDir, "sbx_assembly", "sbx_assembly:\n  threads: 8\n")
	t.Setenv(EnvSunbeamDir, sunbeamDir)

	data := []byte("all:\n  output_fp: \"out\"\nqc:\n  threads: 4\n")
	overrides := mustParse(t, "qc:\n  threads: 16\n")

	updated, err := Update(data, overrides)
	require.NoError(t, err)

	assert.Equal(t, "16", lookup(t, updated, "qc", "threads"))
	assert.Equal(t, "8", lookup(t, updated, "sbx_assembly", "threads"))
}

func TestUpdateStrictIgnoresExtensions(t *testing.T) {
	sunbeamDir := t.TempDir()
	writeExtension(t, sunbeamDir, "sbx_assembly", "sbx_assembly:\n  threads: 8\n")
	t.Setenv(EnvSunbeamDir, sunbeamDir)

	data := []byte("qc:\n  threads: 4\n")

	updated, skipped, err := UpdateStrict(data, mustParse(t, "qc:\n  threads: 16\n  new_opt: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "16", lookup(t, updated, "qc", "threads"))
	assert.Nil(t, Section(updated, "sbx_assembly"))
	assert.Equal(t, []string{"qc.new_opt"}, skipped)
}

func TestUpdateEmptyDocument(t *testing.T) {
	t.Setenv(EnvSunbeamDir, t.TempDir())

	updated, err := Update([]byte(""), mustParse(t, "qc:\n  threads: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, "4", lookup(t, updated, "qc", "threads"))

	// No overrides at all is fine too.
	updated, err = Update([]byte("all:\n  paired_end: true\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "true", lookup(t, updated, "all", "paired_end"))
}
