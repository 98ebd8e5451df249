package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteStdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "", "Output:\nabc"))
	require.Equal(t, "Output:\nabc\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, "", "line\n"))
	require.Equal(t, "line\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "quote.json")
	require.NoError(t, Write(&buf, path, `{"symbol":"WIPRO"}`))
	require.Empty(t, buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\"symbol\":\"WIPRO\"}\n", string(data))

	require.Error(t, Write(&buf, filepath.Join(t.TempDir(), "missing", "x.txt"), "x"))
}
