package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"github.com/alecthomas/kong"
	"github.com/epithet-ssh/uudecode/pkg/config"
	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	LogLevel      string `default:"warn"`
	NoColor       bool
	Checksum      bool
	MaxLineLength int `default:"1024"`

	Args []string `arg:"" optional:""`
}

func parseWithConfig(t *testing.T, configPath string, args ...string) testCLI {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(config.KongLoader, configPath))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadValueFromReader_YAML(t *testing.T) {
	val, err := config.LoadValueFromReader(strings.NewReader(dedent.Dedent(`
		log-level: debug
		checksum: true
		max-line-length: 4096
	`)))
	require.NoError(t, err)

	level, err := val.LookupPath(cue.ParsePath(`"log-level"`)).String()
	require.NoError(t, err)
	require.Equal(t, "debug", level)

	n, err := val.LookupPath(cue.MakePath(cue.Str("max-line-length"))).Int64()
	require.NoError(t, err)
	require.Equal(t, int64(4096), n)
}

func TestLoadValueFromReader_JSON(t *testing.T) {
	val, err := config.LoadValueFromReader(strings.NewReader(`{"no-color": true}`))
	require.NoError(t, err)

	b, err := val.LookupPath(cue.MakePath(cue.Str("no-color"))).Bool()
	require.NoError(t, err)
	require.True(t, b)
}

func TestLoadValueFromReader_CUE(t *testing.T) {
	val, err := config.LoadValueFromReader(strings.NewReader(
		`"log-level": "info", "max-line-length": 64 * 1024`))
	require.NoError(t, err)

	n, err := val.LookupPath(cue.MakePath(cue.Str("max-line-length"))).Int64()
	require.NoError(t, err)
	require.Equal(t, int64(65536), n)
}

func TestLoadValueFromReader_TOML(t *testing.T) {
	val, err := config.LoadValueFromReader(strings.NewReader(dedent.Dedent(`
		log-level = "info"
		checksum = true
		max-line-length = 8192
	`)))
	require.NoError(t, err)

	level, err := val.LookupPath(cue.MakePath(cue.Str("log-level"))).String()
	require.NoError(t, err)
	require.Equal(t, "info", level)

	b, err := val.LookupPath(cue.MakePath(cue.Str("checksum"))).Bool()
	require.NoError(t, err)
	require.True(t, b)

	n, err := val.LookupPath(cue.MakePath(cue.Str("max-line-length"))).Int64()
	require.NoError(t, err)
	require.Equal(t, int64(8192), n)
}

func TestLoadValueFromReader_Empty(t *testing.T) {
	val, err := config.LoadValueFromReader(strings.NewReader(""))
	require.NoError(t, err)
	require.False(t, val.LookupPath(cue.MakePath(cue.Str("log-level"))).Exists())
}

func TestLoadValueFromReader_NotAMapping(t *testing.T) {
	_, err := config.LoadValueFromReader(strings.NewReader("- a\n- b\n"))
	require.Error(t, err)
}

func TestKongLoader_SuppliesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", dedent.Dedent(`
		log-level: debug
		no-color: true
		checksum: true
		max-line-length: 2048
	`))

	cli := parseWithConfig(t, path)
	require.Equal(t, "debug", cli.LogLevel)
	require.True(t, cli.NoColor)
	require.True(t, cli.Checksum)
	require.Equal(t, 2048, cli.MaxLineLength)
}

func TestKongLoader_CommandLineWins(t *testing.T) {
	path := writeConfig(t, "config.yaml", "log-level: debug\n")

	cli := parseWithConfig(t, path, "--log-level=error", "in.uu", "out.bin")
	require.Equal(t, "error", cli.LogLevel)
	require.Equal(t, []string{"in.uu", "out.bin"}, cli.Args)
}

func TestKongLoader_MissingFileIgnored(t *testing.T) {
	cli := parseWithConfig(t, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Equal(t, "warn", cli.LogLevel)
	require.Equal(t, 1024, cli.MaxLineLength)
}

func TestKongLoader_UnsupportedValue(t *testing.T) {
	path := writeConfig(t, "config.yaml", "log-level: [a, b]\n")

	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(config.KongLoader, path))
	require.NoError(t, err)
	_, err = parser.Parse(nil)
	require.ErrorContains(t, err, "log-level")
}
