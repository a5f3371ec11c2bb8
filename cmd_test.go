package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCSVSortsAndDeduplicates(t *testing.T) {
	in := strings.NewReader("2000,1,5,6\n\n1000,2,3,4\nbad,row,x,y\n1000,1,1,2\n1001,1,9,9\n")
	var out bytes.Buffer

	n, err := normalizeCSV(in, &out, 30)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "timestamp_ms,object_id,x,y\n1000,2,3,4\n1001,1,9,9\n2000,1,5,6\n", out.String())
}

func TestCSVNormalizeCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	dst := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(src, []byte("timestamp_ms,object_id,x,y\n500,1,1.5,2.5\n"), 0o644))

	cmd := newRootCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"csv", "normalize", src, dst})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "timestamp_ms,object_id,x,y\n500,1,1.5,2.5\n", string(got))
	assert.Contains(t, stderr.String(), "1 points")
}

func TestCSVNormalizeRequiresInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"csv", "normalize"})
	assert.Error(t, cmd.Execute())
}
