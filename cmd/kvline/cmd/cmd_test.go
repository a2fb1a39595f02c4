package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/0xalexb/kvline/config/parser/kv"
	"github.com/0xalexb/kvline/listener"
	"github.com/0xalexb/kvline/logging"
	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func run(t *testing.T, stdin string, argv ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := NewRootCommand()
	root.SetArgs(argv)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestParse_FileWithSchema(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "schema.yaml", "port: uint\npeers: \"[]string\"\n")
	input := writeFile(t, "app.conf", "# demo\nport=8080\npeers=a,b\n")

	stdout, _, err := run(t, "", "parse", input, "--schema", schema)
	require.NoError(t, err)

	assert.Equal(t, "{\"port\":8080,\"peers\":[\"a\",\"b\"]}\n", stdout)
}

func TestParse_TOMLSchemaSection(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "schema.toml", "[server]\nport = \"uint\"\n")
	input := writeFile(t, "app.conf", "server.port=9000\nother=x\n")

	stdout, _, err := run(t, "", "parse", input,
		"--schema", schema, "--schema-path", "server", "--prefix", "server", "--format", "toml")
	require.NoError(t, err)

	assert.Equal(t, "port = 9000\n", stdout)
}

func TestParse_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "name=demo\n", "parse", "-", "--format", "yaml")
	require.NoError(t, err)

	assert.Equal(t, "name: demo\n", stdout)
}

func TestParse_Words(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "a=1 b=2\n", "parse", "-", "--words")
	require.NoError(t, err)

	assert.Equal(t, "{\"a\":\"1\",\"b\":\"2\"}\n", stdout)
}

func TestParse_CollectErrors(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "schema.yaml", "port: uint\ncount: int\n")
	input := writeFile(t, "app.conf", "port=-2\ncount=7\nport=x\n")

	stdout, stderr, err := run(t, "", "parse", input, "--schema", schema)
	require.ErrorIs(t, err, errReported)

	assert.Equal(t, "{\"count\":7}\n", stdout)
	assert.Equal(t, input+":1:6: ValueNotParsed: -2\n"+input+":3:6: ValueNotParsed: x\n", stderr)
}

func TestParse_AbortPolicy(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "schema.yaml", "port: uint\ncount: int\n")
	input := writeFile(t, "app.conf", "port=-2\ncount=7\nport=x\n")

	stdout, stderr, err := run(t, "", "parse", input, "--schema", schema, "--policy", "abort")
	require.ErrorIs(t, err, errReported)

	assert.Equal(t, "{}\n", stdout)
	assert.Equal(t, input+":1:6: ValueNotParsed: -2\n", stderr)
}

func TestParse_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.conf")

	stdout, stderr, err := run(t, "", "parse", missing)
	require.ErrorIs(t, err, errReported)

	assert.Empty(t, stdout)
	assert.Equal(t, missing+": FileNotOpened: "+missing+"\n", stderr)
}

func TestParse_CommentsOnly(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := run(t, "# nothing\n% here\n", "parse", "-")
	require.ErrorIs(t, err, errReported)

	assert.Equal(t, "{}\n", stdout)
	assert.Equal(t, "<stdin>: Empty\n", stderr)
}

func TestParse_InfoLogsStayOutOfErrors(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "schema.yaml", "port: uint\n")
	input := writeFile(t, "app.conf", "port=x\n")

	_, stderr, err := run(t, "", "parse", input, "--schema", schema, "--log-level", "error")
	require.ErrorIs(t, err, errReported)

	assert.Equal(t, input+":1:6: ValueNotParsed: x\n", stderr)
}

func TestParse_FlagErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		argv     []string
		expected error
	}{
		{name: "output format", argv: []string{"parse", "-", "--format", "xml"}, expected: errUnknownFormat},
		{name: "log format", argv: []string{"parse", "-", "--log-format", "xml"}, expected: logging.ErrUnknownFormat},
		{name: "policy", argv: []string{"parse", "-", "--policy", "ignore"}, expected: kv.ErrUnknownPolicy},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := run(t, "a=1", testCase.argv...)
			require.ErrorIs(t, err, testCase.expected)
		})
	}
}

func TestArgs(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "", "args", "port=8080", "name=x")
	require.NoError(t, err)

	assert.Equal(t, "{\"port\":\"8080\",\"name\":\"x\"}\n", stdout)
}

func TestArgs_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		argv     []string
		expected string
	}{
		{name: "no arguments", argv: []string{"args"}, expected: "<args>: ArgError\n"},
		{name: "whitespace", argv: []string{"args", "a=1", "b=x y"}, expected: "<args>: ArgError: b=x y\n"},
		{name: "negative unsigned", argv: []string{"args", "count=-5", "--schema", "{schema}"}, expected: "<args>:1:7: ValueNotParsed: -5\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			schema := writeFile(t, "schema.yaml", "count: uint\n")

			argv := make([]string, len(testCase.argv))
			for i, arg := range testCase.argv {
				argv[i] = strings.ReplaceAll(arg, "{schema}", schema)
			}

			_, stderr, err := run(t, "", argv...)
			require.ErrorIs(t, err, errReported)

			assert.Equal(t, testCase.expected, stderr)
		})
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)

	assert.Equal(t, "kvline dev (compiled unknown)\n", stdout)
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "positioned entry",
			err:      &kv.LineError{Position: parse.Position{Line: 2, Column: 3}, Err: parse.NewError(parse.KeyNotFound, 5, "port", nil)},
			expected: "f.conf:2:3: KeyNotFound: port",
		},
		{
			name:     "no token",
			err:      parse.NewError(parse.Empty, -1, "", nil),
			expected: "f.conf: Empty",
		},
		{
			name:     "foreign error",
			err:      errors.New("boom"),
			expected: "f.conf: boom",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, formatError("f.conf", testCase.err))
		})
	}
}

func TestServe_ListenerConfig(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "serve.conf", "listener.address=127.0.0.1:0\nlistener.shutdown_timeout=2\n")

	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, nil))
	flags := &serveFlags{addr: ":9999", configPath: path}

	cfg, err := flags.listenerConfig(false, logger)
	require.NoError(t, err)
	assert.Equal(t, listener.Config{
		Address:           "127.0.0.1:0",
		ReadHeaderTimeout: listener.DefaultReadHeaderTimeout,
		ShutdownTimeout:   2,
	}, cfg)
	assert.Contains(t, logs.String(), "defaults applied")

	cfg, err = flags.listenerConfig(true, logger)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Address)
}

func TestServe_StartStop(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "schema.yaml", "port: uint\n")
	global := &globalFlags{logLevel: "error", logFormat: "text"}

	var stderr bytes.Buffer

	cmd := newServeCommand(global)
	cmd.SetErr(&stderr)

	app, err := newServeApp(cmd, global, &serveFlags{
		addr:    "127.0.0.1:0",
		schema:  schema,
		maxBody: 1024,
		timeout: time.Second,
	})
	require.NoError(t, err)

	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
}

func TestServe_BadSchema(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "schema.yaml", "port: number\n")
	global := &globalFlags{logLevel: "error", logFormat: "text"}

	_, err := newServeApp(newServeCommand(global), global, &serveFlags{addr: "127.0.0.1:0", schema: schema})
	require.ErrorIs(t, err, properties.ErrUnknownKind)
}
