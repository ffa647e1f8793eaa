package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varstack/varstack/cli"
	"github.com/varstack/varstack/options"
	"github.com/varstack/varstack/pkg/log"
)

func TestInitAndStatusCommands(t *testing.T) {
	t.Parallel()

	collectionDir := t.TempDir()
	graphDir := filepath.Join(collectionDir, "graph")
	require.NoError(t, os.MkdirAll(graphDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(graphDir, "services.yml"), []byte("zookeeper_config: null\n"), 0644))

	varsDir := filepath.Join(t.TempDir(), "vars")

	var stdout bytes.Buffer

	opts := options.NewOptions()
	opts.Writer = &stdout
	opts.Logger = log.New(log.WithOutput(os.Stderr), log.WithLevel(log.ErrorLevel))

	app := cli.NewApp(opts)

	err := app.Run([]string{"varstack", "--vars", varsDir, "--collection-path", collectionDir, "init"})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "zookeeper: ")
	assert.FileExists(t, filepath.Join(varsDir, "zookeeper", "zookeeper.yml"))

	stdout.Reset()

	err = app.Run([]string{"varstack", "--vars", varsDir, "--collection-path", collectionDir, "status"})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "(clean)")
}

func TestInitFailsOnMissingCollection(t *testing.T) {
	t.Parallel()

	opts := options.NewOptions()
	opts.Writer = &bytes.Buffer{}
	opts.Logger = log.New(log.WithOutput(os.Stderr), log.WithLevel(log.ErrorLevel))

	app := cli.NewApp(opts)

	err := app.Run([]string{"varstack", "--vars", t.TempDir(), "--collection-path", filepath.Join(t.TempDir(), "missing"), "init"})
	require.Error(t, err)
}
