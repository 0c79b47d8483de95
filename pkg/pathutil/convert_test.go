package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRelative(t *testing.T) {
	tests := []struct {
		name     string
		absPath  string
		rootDir  string
		expected string
	}{
		{"simple relative path", "/home/user/project/src/main.go", "/home/user/project", "src/main.go"},
		{"same directory", "/home/user/project", "/home/user/project", "."},
		{"already relative path", "src/main.go", "/home/user/project", "src/main.go"},
		{"path outside root falls back to absolute", "/other/location/file.go", "/home/user/project", "/other/location/file.go"},
		{"empty root directory", "/home/user/project/file.go", "", "/home/user/project/file.go"},
		{"empty absolute path", "", "/home/user/project", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRelative(tt.absPath, tt.rootDir)
			if runtime.GOOS == "windows" {
				got = filepath.ToSlash(got)
				assert.Equal(t, filepath.ToSlash(tt.expected), got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestJoinUsesSlashSeparatedRelativePath(t *testing.T) {
	got := Join("/out", "chapters/intro.html")
	assert.Equal(t, filepath.Join("/out", "chapters", "intro.html"), got)
}

func TestEnsureDirCreatesMissingAncestors(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c.txt")
	require.NoError(t, EnsureDir(target))
	info, err := os.Stat(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirWithNoDirectoryComponentIsNoOp(t *testing.T) {
	assert.NoError(t, EnsureDir("c.txt"))
}

func TestSplitExt(t *testing.T) {
	base, ext := SplitExt("chapters/intro.html")
	assert.Equal(t, "chapters/intro", base)
	assert.Equal(t, ".html", ext)

	base, ext = SplitExt("README")
	assert.Equal(t, "README", base)
	assert.Equal(t, "", ext)
}
