package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func init() {
	os.Setenv("XDG_CONFIG_HOME", "/tmp/fakeconfig")
	os.Setenv("XDG_DATA_HOME", "/tmp/fakedata")
	os.Unsetenv("ORIGAMI_GLOBAL_CONFIG")
	os.Unsetenv("ORIGAMI_GLOBAL_DATA")
}

func runDirs(c *cobra.Command) string {
	var b bytes.Buffer
	c.SetOut(&b)
	c.SetErr(&b)
	c.SetIn(bytes.NewReader(nil))
	c.Run(c, nil)
	return b.String()
}

func TestDirs(t *testing.T) {
	expected := filepath.FromSlash("/tmp/fakeconfig/origami") + "\n" +
		filepath.FromSlash("/tmp/fakedata/origami") + "\n"
	require.Equal(t, expected, runDirs(dirsCmd))
}

func TestConfigDir(t *testing.T) {
	require.Equal(t, filepath.FromSlash("/tmp/fakeconfig/origami")+"\n", runDirs(configDirCmd))
}

func TestDataDir(t *testing.T) {
	require.Equal(t, filepath.FromSlash("/tmp/fakedata/origami")+"\n", runDirs(dataDirCmd))
}
