package kv_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/0xalexb/kvline/config/parser/kv"
	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Truc   string `kv:"truc"`
	Bidule uint   `kv:"bidule"`
	Blah   []uint `kv:"blah"`
}

func TestParser_Struct(t *testing.T) {
	t.Parallel()

	var cfg settings

	err := kv.NewParser().Parse([]byte("truc=machin\nbidule=2\nblah=4,5,6\n"), &cfg, "")
	require.NoError(t, err)

	assert.Equal(t, settings{Truc: "machin", Bidule: 2, Blah: []uint{4, 5, 6}}, cfg)
}

func TestParser_StructFieldMatching(t *testing.T) {
	t.Parallel()

	type target struct {
		Count    int
		Ratio    float32 `kv:"ratio,omitempty"`
		Ignored  string  `kv:"-"`
		Enabled  bool
		internal string
	}

	var cfg target

	err := kv.NewParser().Parse([]byte("count=-3\nratio=0.5\nenabled=true"), &cfg, "")
	require.NoError(t, err)
	assert.Equal(t, -3, cfg.Count)
	assert.InDelta(t, 0.5, cfg.Ratio, 1e-9)
	assert.True(t, cfg.Enabled)

	err = kv.NewParser().Parse([]byte("ignored=x"), &cfg, "")
	require.ErrorIs(t, err, parse.ErrKeyNotFound)

	err = kv.NewParser().Parse([]byte("internal=x"), &cfg, "")
	require.ErrorIs(t, err, parse.ErrKeyNotFound)
	assert.Empty(t, cfg.internal)
}

func TestParser_PropertiesWithSchema(t *testing.T) {
	t.Parallel()

	schema := properties.Schema{
		"truc":   properties.String,
		"bidule": properties.Uint,
		"blah":   properties.UintList,
	}

	props, err := kv.NewParser(kv.WithSchema(schema)).Properties([]byte("truc=machin\nbidule=2\nblah=4,5,6"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"truc", "bidule", "blah"}, props.Keys())

	count, err := props.Uint("bidule")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	blah, ok := props.Get("blah")
	require.True(t, ok)
	assert.Equal(t, []uint64{4, 5, 6}, blah.Data)
	assert.Equal(t, 26, blah.Offset)
}

func TestParser_PropertiesWithoutSchemaKeepsRawText(t *testing.T) {
	t.Parallel()

	props, err := kv.NewParser().Properties([]byte("greeting=hello world\nn=5"), "")
	require.NoError(t, err)

	greeting, err := props.Text("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello world", greeting)

	n, ok := props.Get("n")
	require.True(t, ok)
	assert.Equal(t, properties.String, n.Kind)
}

func TestParser_CommandLine(t *testing.T) {
	t.Parallel()

	var cfg settings

	parser := kv.NewParser(kv.WithPattern(parse.WordPattern))

	err := parser.Parse([]byte("truc=machin bidule=2 blah=4,5,6"), &cfg, "")
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 5, 6}, cfg.Blah)
}

func TestParser_AbortPolicy(t *testing.T) {
	t.Parallel()

	var cfg settings

	err := kv.NewParser().Parse([]byte("truc=machin\nbidule=-2\nblah=x"), &cfg, "")
	require.ErrorIs(t, err, parse.ErrValueNotParsed)

	var lineErr *kv.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Position.Line)
	assert.Equal(t, 8, lineErr.Position.Column)
	assert.Equal(t, "2:8: value not parsed at offset 19: \"-2\": negative value for unsigned type", err.Error())

	assert.Len(t, kv.Errors(err), 1)
	assert.Equal(t, "machin", cfg.Truc, "entries before the failure are applied")
	assert.Nil(t, cfg.Blah)
}

func TestParser_CollectPolicy(t *testing.T) {
	t.Parallel()

	var cfg settings

	text := "truc=machin\nbidule=-2\nnoequals\nunknown=1\nblah=4,5,6\nblah=4,,6"

	err := kv.NewParser(kv.WithPolicy(kv.Collect)).Parse([]byte(text), &cfg, "")
	require.Error(t, err)

	errs := kv.Errors(err)
	require.Len(t, errs, 4)

	expected := []struct {
		kind parse.Kind
		line int
	}{
		{kind: parse.ValueNotParsed, line: 2},
		{kind: parse.KeyValueNotParsed, line: 3},
		{kind: parse.KeyNotFound, line: 4},
		{kind: parse.VectorValueNotParsed, line: 6},
	}

	for i, want := range expected {
		kind, ok := parse.KindOf(errs[i])
		require.True(t, ok)
		assert.Equal(t, want.kind, kind, errs[i].Error())

		var lineErr *kv.LineError
		require.ErrorAs(t, errs[i], &lineErr)
		assert.Equal(t, want.line, lineErr.Position.Line)
	}

	assert.Equal(t, []uint{4, 5, 6}, cfg.Blah, "a failed vector leaves the earlier value")
}

func TestParser_SkipPolicyLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var cfg settings

	parser := kv.NewParser(kv.WithPolicy(kv.Skip), kv.WithLogger(logger))

	err := parser.Parse([]byte("bidule=oops\nbidule=3\nbidule=4"), &cfg, "")
	require.NoError(t, err)
	assert.Equal(t, uint(4), cfg.Bidule)
	assert.Contains(t, buf.String(), "skipping entry")
	assert.Contains(t, buf.String(), "position=1:8")
	assert.Contains(t, buf.String(), "duplicate key")
}

func TestParser_PathPrefix(t *testing.T) {
	t.Parallel()

	text := "server.host=example.com\nserver.port=8080\ndb.primary.port=5432\nname=app"

	type server struct {
		Host string
		Port uint16
	}

	var srv server

	err := kv.NewParser().Parse([]byte(text), &srv, "server")
	require.NoError(t, err)
	assert.Equal(t, server{Host: "example.com", Port: 8080}, srv)

	props, err := kv.NewParser(kv.WithSchema(properties.Schema{"port": properties.Uint})).
		Properties([]byte(text), "db:primary")
	require.NoError(t, err)
	assert.Equal(t, []string{"port"}, props.Keys())
}

func TestParser_KeyNormalization(t *testing.T) {
	t.Parallel()

	type limits struct {
		MaxCount uint `kv:"max_count"`
	}

	var cfg limits

	err := kv.NewParser().Parse([]byte("Max_Count=7"), &cfg, "")
	require.ErrorIs(t, err, parse.ErrKeyNotFound)

	err = kv.NewParser(kv.WithKeyNormalization()).Parse([]byte("Max_Count=7"), &cfg, "")
	require.NoError(t, err)
	assert.Equal(t, uint(7), cfg.MaxCount)

	props, err := kv.NewParser(
		kv.WithKeyNormalization(),
		kv.WithSchema(properties.Schema{"Max Count": properties.Uint}),
	).Properties([]byte("MAX_COUNT=9"), "")
	require.NoError(t, err)

	count, err := props.Uint("maxcount")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), count)
}

func TestParser_EmptyInput(t *testing.T) {
	t.Parallel()

	var cfg settings

	err := kv.NewParser(kv.WithPolicy(kv.Collect)).Parse([]byte("# only a comment\n\n"), &cfg, "")
	require.ErrorIs(t, err, parse.ErrEmpty)
}

func TestParser_CustomCommentMarkers(t *testing.T) {
	t.Parallel()

	props, err := kv.NewParser(kv.WithCommentMarkers(";")).Properties([]byte("; note\n#tag=1"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"#tag"}, props.Keys())
}

func TestParser_UnsupportedTarget(t *testing.T) {
	t.Parallel()

	var nilProps *properties.Properties

	testCases := []struct {
		name   string
		target any
	}{
		{name: "nil", target: nil},
		{name: "non pointer", target: settings{}},
		{name: "pointer to scalar", target: new(int)},
		{name: "nil properties", target: nilProps},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := kv.NewParser().Parse([]byte("a=1"), testCase.target, "")
			require.ErrorIs(t, err, kv.ErrUnsupportedTarget)
		})
	}
}

func TestParser_Entries(t *testing.T) {
	t.Parallel()

	entries, err := kv.NewParser().Entries("a=1\n=bad\nc=3=4")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].Pair.Valid())
	assert.False(t, entries[1].Pair.Valid())
	require.ErrorIs(t, entries[1].Pair.Err(), parse.ErrKeyValueNotParsed)
	assert.Equal(t, "3=4", entries[2].Pair.Get().Value.Text())
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	for _, policy := range []kv.Policy{kv.Abort, kv.Skip, kv.Collect} {
		decoded, err := kv.ParsePolicy(policy.String())
		require.NoError(t, err)
		assert.Equal(t, policy, decoded)
	}

	decoded, err := kv.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, kv.Abort, decoded)

	_, err = kv.ParsePolicy("retry")
	require.ErrorIs(t, err, kv.ErrUnknownPolicy)
}

func TestErrors_Wrapped(t *testing.T) {
	t.Parallel()

	var cfg settings

	err := kv.NewParser(kv.WithPolicy(kv.Collect)).Parse([]byte("truc=a b\nbidule=x"), &cfg, "")
	require.Error(t, err)

	wrapped := fmt.Errorf("loading settings: %w", err)

	assert.Len(t, kv.Errors(wrapped), 2)
	assert.Empty(t, kv.Errors(nil))
	assert.Len(t, kv.Errors(parse.NewError(parse.Empty, -1, "", nil)), 1)
}
