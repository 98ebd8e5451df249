package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeContent struct {
	text string
	err  error
}

func (f fakeContent) ToText() (string, error) { return f.text, f.err }
func (f fakeContent) ToJSON() ([]byte, error) { return []byte(`{"output":"` + f.text + `"}`), f.err }

func TestFormat(t *testing.T) {
	out, err := Format(fakeContent{text: `{"tradedDate":"x"}`}, "text")
	require.NoError(t, err)
	require.Equal(t, "Output:\n{\"tradedDate\":\"x\"}", out)

	out, err = Format(fakeContent{text: "abc"}, "json")
	require.NoError(t, err)
	require.Equal(t, `{"output":"abc"}`, out)

	_, err = Format(fakeContent{}, "markdown")
	require.Error(t, err)

	_, err = Format(fakeContent{err: errors.New("boom")}, "text")
	require.Error(t, err)
}
