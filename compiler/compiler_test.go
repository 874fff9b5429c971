package compiler_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semproto/compiler"
	"github.com/c360studio/semproto/resolver"
	"github.com/c360studio/semproto/store"
)

const fixture = "testdata/movie.nt"

func newCompiler(t *testing.T, opts compiler.Options) *compiler.Compiler {
	t.Helper()
	c, err := compiler.New(opts)
	require.NoError(t, err)
	return c
}

func compileFixture(t *testing.T, opts compiler.Options) (*compiler.Result, string, compiler.Descriptor) {
	t.Helper()
	out := t.TempDir()
	res, err := newCompiler(t, opts).Compile(fixture, out, "schemaorg")
	require.NoError(t, err)

	schema, err := os.ReadFile(res.SchemaPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(res.DescriptorPath)
	require.NoError(t, err)
	var desc compiler.Descriptor
	require.NoError(t, json.Unmarshal(raw, &desc))

	return res, string(schema), desc
}

func TestCompile_WritesBothOutputs(t *testing.T) {
	res, schema, _ := compileFixture(t, compiler.Options{})

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, compiler.SchemaFile, filepath.Base(res.SchemaPath))
	assert.Equal(t, compiler.DescriptorFile, filepath.Base(res.DescriptorPath))
	assert.Equal(t, "http://schema.org/", res.Namespace)
	assert.Equal(t, 7, res.Classes)
	assert.Equal(t, 1, res.Enumerations)
	assert.Equal(t, 7, res.Properties)

	assert.True(t, strings.HasPrefix(schema, "syntax = \"proto3\";\npackage schemaorg;\n\nimport \"google/protobuf/descriptor.proto\";\n"))
	assert.Contains(t, schema, "extend google.protobuf.MessageOptions {\n\toptional string type = 50001;\n}")
	assert.Contains(t, schema, "extend google.protobuf.EnumValueOptions {\n\toptional string schemaorg_value = 50002;\n}")
	assert.Contains(t, schema, "message DateTime {\n\toption (type) = \"DatatypeDateTime\";\n\tDate date = 1;\n\tTime time = 2;\n}")
}

func TestCompile_SectionOrder(t *testing.T) {
	_, schema, _ := compileFixture(t, compiler.Options{})

	classes := strings.Index(schema, "// Definition of classes begin here.")
	enums := strings.Index(schema, "// Definition of enumerations begin here.")
	props := strings.Index(schema, "// Definition of properties begin here.")
	require.True(t, classes > 0 && enums > classes && props > enums)

	classSection := schema[classes:enums]
	for _, excluded := range []string{"message DayOfWeek ", "message Duration ", "message Text ", "message Number "} {
		assert.NotContains(t, classSection, excluded)
	}

	// Alphabetical within the class section.
	prev := -1
	for _, name := range []string{"CreativeWork", "Enumeration", "Intangible", "Movie", "Patient", "Person", "Thing"} {
		i := strings.Index(classSection, "message "+name+" {")
		require.Greater(t, i, prev, name)
		prev = i
	}
}

func TestCompile_MovieMessage(t *testing.T) {
	_, schema, desc := compileFixture(t, compiler.Options{})

	want := `// A movie.
message Movie {
	option (type) = "Movie";

	// Properties from Movie.
	repeated ActorProperty actor = 1 [json_name = "actor"];
	repeated DurationProperty duration = 2 [json_name = "duration"];

	// Properties from CreativeWork.
	repeated AudioProperty audio = 3 [json_name = "audio"];
	repeated RatingValueProperty rating_value = 4 [json_name = "ratingValue"];

	// Properties from Thing.
	repeated DayOfWeekProperty day_of_week = 5 [json_name = "dayOfWeek"];
	repeated NameProperty name = 6 [json_name = "name"];
	repeated SameAsProperty same_as = 7 [json_name = "sameAs"];
}
`
	assert.Contains(t, schema, want)

	movie := desc.Messages["Movie"]
	assert.Equal(t, "Movie", movie.Type)
	assert.Equal(t, []string{"actor", "duration", "audio", "ratingValue", "dayOfWeek", "name", "sameAs"}, movie.Fields)
}

func TestCompile_PropertyMessages(t *testing.T) {
	_, schema, desc := compileFixture(t, compiler.Options{})

	assert.Contains(t, schema, "message ActorProperty {\n\toption (type) = \"Property\";\n\toneof values {\n\t\tPatient patient = 1;\n\t\tPerson person = 2;\n\t}\n}")
	assert.Contains(t, schema, "\t\tDuration duration = 1;\n")
	assert.Contains(t, schema, "\t\tDayOfWeek day_of_week = 1;\n")
	assert.Contains(t, schema, "\t\tstring audio_object = 1;\n")
	assert.Contains(t, schema, "message SameAsProperty {\n\toption (type) = \"Property\";\n}")

	assert.Equal(t, compiler.MessageDescriptor{Type: "Property", Fields: []string{"Patient", "Person"}}, desc.Messages["actor"])
	assert.Equal(t, []string{"Float", "Integer", "Number", "Text", "URL"}, desc.Messages["ratingValue"].Fields)
	assert.Equal(t, []string{}, desc.Messages["sameAs"].Fields)
}

func TestCompile_Enumeration(t *testing.T) {
	_, schema, desc := compileFixture(t, compiler.Options{})

	assert.Contains(t, schema, "\t\tUNKNOWN = 0 [(schemaorg_value)=\"Unknown\"];\n\t\tMONDAY = 1 [(schemaorg_value) = \"https://schema.org/Monday\"];\n\t\tTUESDAY = 2 [(schemaorg_value) = \"https://schema.org/Tuesday\"];\n")
	assert.Contains(t, schema, "message DayOfWeek {\n\toption (type) = \"EnumWrapper\";\n\toneof values {\n\t\tDayOfWeekClass.Id id = 1;\n\t\tDayOfWeekClass day_of_week = 2;\n\t}\n}")

	wrapper := desc.Messages["DayOfWeek"]
	assert.Equal(t, "EnumWrapper", wrapper.Type)
	assert.Equal(t, []string{"id", "DayOfWeekClass"}, wrapper.Fields)
	assert.Equal(t, []string{"Unknown", "https://schema.org/Monday", "https://schema.org/Tuesday"}, wrapper.Values)

	inner := desc.Messages["DayOfWeekClass"]
	assert.Equal(t, "DayOfWeek", inner.Type)
	assert.Equal(t, []string{"@id", "dayOfWeek", "name", "sameAs"}, inner.Fields)
}

func TestCompile_Descriptor(t *testing.T) {
	res, _, desc := compileFixture(t, compiler.Options{})

	assert.Equal(t, []string{"AudioObject", "Boolean", "Float", "Integer", "Number", "Text", "URL"}, desc.Primitives)
	assert.Equal(t, "DatatypeQuantitative", desc.Messages["Mass"].Type)
	assert.Equal(t, []string{"value", "unit"}, desc.Messages["Mass"].Fields)
	assert.Equal(t, "DatatypeTimezone", desc.Messages["Timezone"].Type)

	raw, err := os.ReadFile(res.DescriptorPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n    \"messages\": {\n"), "4-space indentation")
}

func TestCompile_Comments(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		_, schema, _ := compileFixture(t, compiler.Options{CommentStyle: compiler.CommentText})
		assert.Contains(t, schema, "// The duration of the item in ISO 8601 date format.\nmessage DurationProperty {")
		assert.Contains(t, schema, "// Originally, URLs from GoodRelations were used.\nmessage DayOfWeekClass {")
	})

	t.Run("markdown", func(t *testing.T) {
		_, schema, _ := compileFixture(t, compiler.Options{CommentStyle: compiler.CommentMarkdown})
		assert.Contains(t, schema, "[ISO 8601 date format](http://en.wikipedia.org/wiki/ISO_8601)")
	})

	t.Run("unknown style", func(t *testing.T) {
		_, err := compiler.New(compiler.Options{CommentStyle: "rst"})
		assert.Error(t, err)
	})
}

func TestCompile_Deterministic(t *testing.T) {
	_, first, _ := compileFixture(t, compiler.Options{})

	// Reversed triple order must not change the output.
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	reversed := filepath.Join(t.TempDir(), "reversed.nt")
	require.NoError(t, os.WriteFile(reversed, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	for range 3 {
		res, err := newCompiler(t, compiler.Options{}).Compile(reversed, t.TempDir(), "schemaorg")
		require.NoError(t, err)
		again, err := os.ReadFile(res.SchemaPath)
		require.NoError(t, err)
		assert.Equal(t, first, string(again))
	}
}

func TestCompile_GlobMergesSources(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)

	// Split the vocabulary across two files.
	lines := strings.SplitAfter(string(data), "\n")
	half := len(lines) / 2
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ext"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core.nt"), []byte(strings.Join(lines[:half], "")), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ext", "more.nt"), []byte(strings.Join(lines[half:], "")), 0644))

	merged, err := newCompiler(t, compiler.Options{}).Compile(filepath.Join(dir, "**", "*.nt"), t.TempDir(), "schemaorg")
	require.NoError(t, err)
	assert.Len(t, merged.Sources, 2)

	_, want, _ := compileFixture(t, compiler.Options{})
	got, err := os.ReadFile(merged.SchemaPath)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestCompile_Patch(t *testing.T) {
	patch := resolver.Patch{
		Enumerations: []string{"Patient", "DriveWheelConfigurationValue"},
		Subclasses:   map[string][]string{"Person": {"Movie", "Researcher"}},
	}
	_, schema, desc := compileFixture(t, compiler.Options{Patch: patch})

	assert.Contains(t, schema, "message Patient {\n\toption (type) = \"EnumWrapper\";")
	assert.NotContains(t, schema, "DriveWheelConfigurationValue")
	assert.NotContains(t, desc.Messages["actor"].Fields, "Researcher")
	assert.Equal(t, []string{"Movie", "Patient", "Person"}, desc.Messages["actor"].Fields)
}

func TestCompile_CanonicalNamespace(t *testing.T) {
	_, schema, _ := compileFixture(t, compiler.Options{CanonicalNamespace: "https://example.org/vocab/"})
	assert.Contains(t, schema, `MONDAY = 1 [(schemaorg_value) = "https://example.org/vocab/Monday"];`)
}

func TestCompile_DetectsNamespace(t *testing.T) {
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	https := strings.ReplaceAll(string(data), "http://schema.org/", "https://schema.org/")
	src := filepath.Join(t.TempDir(), "https.nt")
	require.NoError(t, os.WriteFile(src, []byte(https), 0644))

	res, err := newCompiler(t, compiler.Options{}).Compile(src, t.TempDir(), "schemaorg")
	require.NoError(t, err)
	assert.Equal(t, "https://schema.org/", res.Namespace)
	assert.Equal(t, 7, res.Classes)
}

func TestCompile_Errors(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "broken.nt")
		require.NoError(t, os.WriteFile(src, []byte("<http://schema.org/Thing> <broken\n"), 0644))

		out := t.TempDir()
		_, err := newCompiler(t, compiler.Options{}).Compile(src, out, "schemaorg")
		require.Error(t, err)
		assert.True(t, store.IsParseError(err))

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := newCompiler(t, compiler.Options{}).Compile(filepath.Join(t.TempDir(), "nope.nt"), t.TempDir(), "schemaorg")
		require.Error(t, err)
		assert.True(t, store.IsParseError(err))
	})

	t.Run("glob without matches", func(t *testing.T) {
		_, err := newCompiler(t, compiler.Options{}).Compile(filepath.Join(t.TempDir(), "*.nt"), t.TempDir(), "schemaorg")
		assert.ErrorIs(t, err, compiler.ErrNoSources)
	})

	t.Run("output is a file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		_, err := newCompiler(t, compiler.Options{}).Compile(fixture, blocker, "schemaorg")
		require.Error(t, err)
		assert.True(t, compiler.IsIOError(err))
	})

	t.Run("existing outputs untouched on failure", func(t *testing.T) {
		out := t.TempDir()
		old := filepath.Join(out, compiler.SchemaFile)
		require.NoError(t, os.WriteFile(old, []byte("previous"), 0644))

		src := filepath.Join(t.TempDir(), "broken.nt")
		require.NoError(t, os.WriteFile(src, []byte("not rdf at all <"), 0644))
		_, err := newCompiler(t, compiler.Options{}).Compile(src, out, "schemaorg")
		require.Error(t, err)

		got, err := os.ReadFile(old)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(got))
	})

	t.Run("missing package", func(t *testing.T) {
		_, err := newCompiler(t, compiler.Options{}).Compile(fixture, t.TempDir(), "")
		assert.Error(t, err)
	})
}

func TestCompile_Metrics(t *testing.T) {
	m := compiler.NewMetrics()
	c := newCompiler(t, compiler.Options{Metrics: m})

	_, err := c.Compile(fixture, t.TempDir(), "schemaorg")
	require.NoError(t, err)
	_, err = c.Compile(filepath.Join(t.TempDir(), "*.nt"), t.TempDir(), "schemaorg")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompilesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompilesTotal.WithLabelValues("error")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Entities.WithLabelValues("class")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Entities.WithLabelValues("enumeration")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.Triples))

	path := filepath.Join(t.TempDir(), "semproto.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `semproto_compiler_compiles_total{status="success"} 1`)
}

func TestGenerate_InMemory(t *testing.T) {
	st, err := store.ParseFile(fixture)
	require.NoError(t, err)

	out, err := newCompiler(t, compiler.Options{}).Generate(st, "example.v1")
	require.NoError(t, err)
	assert.Contains(t, string(out.Schema), "package example.v1;")
	assert.NotEmpty(t, out.Descriptor)
}
