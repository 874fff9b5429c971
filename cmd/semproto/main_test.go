package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vocabulary = `<https://schema.org/Thing> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .
<https://schema.org/CreativeWork> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .
<https://schema.org/CreativeWork> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <https://schema.org/Thing> .
<https://schema.org/Text> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .
<https://schema.org/name> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/1999/02/22-rdf-syntax-ns#Property> .
<https://schema.org/name> <https://schema.org/domainIncludes> <https://schema.org/Thing> .
<https://schema.org/name> <https://schema.org/rangeIncludes> <https://schema.org/Text> .
`

// execute runs the root command and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	return out.String(), err
}

// project writes a vocabulary and a config file into a temp directory.
func project(t *testing.T, configYAML string) (dir, configPath string) {
	t.Helper()

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vocab.nt"), []byte(vocabulary), 0644))

	configPath = filepath.Join(dir, "semproto.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0644))
	return dir, configPath
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "semproto version "+Version+" (build: "+BuildTime+")\n", out)
}

func TestFormatsCommand(t *testing.T) {
	out, err := execute(t, "formats")
	require.NoError(t, err)

	for _, want := range []string{"jsonld", "ntriples", "rdfxml", "turtle", ".ttl", ".nt .nq"} {
		assert.Contains(t, out, want)
	}
}

func TestCompileCommand(t *testing.T) {
	dir, cfgPath := project(t, "package: schemaorg\n")
	outDir := filepath.Join(dir, "gen")

	out, err := execute(t, "compile", "-c", cfgPath,
		"--src", filepath.Join(dir, "vocab.nt"),
		"--out", outDir,
		"--package", "vocab")
	require.NoError(t, err)
	assert.Contains(t, out, "(2 classes, 0 enumerations, 1 properties)")

	schema, err := os.ReadFile(filepath.Join(outDir, "schema.proto"))
	require.NoError(t, err)
	assert.Contains(t, string(schema), "package vocab;")
	assert.Contains(t, string(schema), "message CreativeWork {")
	assert.Contains(t, string(schema), `repeated NameProperty name = 1 [json_name = "name"];`)

	assert.FileExists(t, filepath.Join(outDir, "schema_descriptor.json"))
}

func TestCompileCommandUsesConfig(t *testing.T) {
	dir, _ := project(t, "")
	cfgPath := filepath.Join(dir, "custom.yaml")
	cfg := "package: fromconfig\n" +
		"source: " + filepath.Join(dir, "*.nt") + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"metrics_file: " + filepath.Join(dir, "semproto.prom") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	_, err := execute(t, "compile", "--config", cfgPath)
	require.NoError(t, err)

	schema, err := os.ReadFile(filepath.Join(dir, "out", "schema.proto"))
	require.NoError(t, err)
	assert.Contains(t, string(schema), "package fromconfig;")

	metrics, err := os.ReadFile(filepath.Join(dir, "semproto.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `semproto_compiler_compiles_total{status="success"} 1`)
}

func TestCompileCommandErrors(t *testing.T) {
	dir, cfgPath := project(t, "package: schemaorg\n")

	t.Run("no source", func(t *testing.T) {
		_, err := execute(t, "compile", "-c", cfgPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no source")
	})

	t.Run("invalid comment style", func(t *testing.T) {
		_, err := execute(t, "compile", "-c", cfgPath,
			"--src", filepath.Join(dir, "vocab.nt"),
			"--comment-style", "html")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := execute(t, "compile", "-c", cfgPath,
			"--src", filepath.Join(dir, "missing.nt"),
			"--out", filepath.Join(dir, "gen"))
		require.Error(t, err)
		assert.NoFileExists(t, filepath.Join(dir, "gen", "schema.proto"))
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := execute(t, "compile", "-c", filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load config")
	})
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "semproto.yaml")
	assert.Equal(t, path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package: schemaorg")

	// A second run keeps the existing file.
	require.NoError(t, os.WriteFile(path, []byte("package: mine\n"), 0644))
	_, err = execute(t, "init", dir)
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package: mine\n", string(data))
}

func TestInitCommandMissingDir(t *testing.T) {
	_, err := execute(t, "init", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
