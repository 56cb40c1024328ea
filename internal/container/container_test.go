package container

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nqdsheat/adapters/excel"
	"nqdsheat/adapters/nqds"
	"nqdsheat/domain/misfit"
	"nqdsheat/internal/config"
	"nqdsheat/internal/testkit"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Level = "ERROR"
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestContainer_SourceFor(t *testing.T) {
	c := newTestContainer(t)

	src, err := c.SourceFor("runs.XLSX")
	require.NoError(t, err)
	assert.IsType(t, &excel.WorkbookSource{}, src)

	src, err = c.SourceFor("runs.txt")
	require.NoError(t, err)
	assert.IsType(t, &nqds.FileSource{}, src)

	src, err = c.SourceFor(StdinPath)
	require.NoError(t, err)
	assert.IsType(t, &nqds.ReaderSource{}, src)
}

func TestContainer_LoadFileFromStdin(t *testing.T) {
	var buf bytes.Buffer
	_, err := testkit.NewNQDSGenerator(testkit.DefaultNQDSConfig()).WriteTo(&buf)
	require.NoError(t, err)

	c := newTestContainer(t)
	c.Stdin = &buf
	require.NoError(t, c.LoadFile(StdinPath))

	first, err := c.Session.DefaultIteration()
	require.NoError(t, err)
	assert.Equal(t, 0, first)
}

func TestContainer_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = testkit.NewNQDSGenerator(testkit.DefaultNQDSConfig()).WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c := newTestContainer(t)
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, misfit.StateReady, c.Session.State())

	iterations, err := c.Session.Iterations()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, iterations)
}

func TestContainer_LoadFileUsesConfiguredPath(t *testing.T) {
	c := newTestContainer(t)
	assert.Error(t, c.LoadFile(""))

	c.Config.Data.SourceFile = filepath.Join(t.TempDir(), "missing.txt")
	assert.Error(t, c.LoadFile(""))
	assert.Equal(t, misfit.StateEmpty, c.Session.State())
}
