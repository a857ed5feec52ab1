package xpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	for input, expected := range map[string]string{
		"":                 "",
		"output.txt":       "output.txt",
		"/tmp/out.txt":     "/tmp/out.txt",
		"~user/out.txt":    "~user/out.txt",
		"~":                "/home/tester",
		"~/videos/out.txt": filepath.Join("/home/tester", "videos", "out.txt"),
	} {
		actual, err := Expand(input)
		require.NoError(t, err)
		require.Equal(t, expected, actual, input)
	}
}
