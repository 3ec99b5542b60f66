package natives

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/mcfetch/internals/downloadmgr"
	"github.com/minepkg/mcfetch/internals/minecraft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeJar creates a jar with the given entries. Entries ending with a slash are directories
func writeJar(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "lwjgl-natives-linux.jar")
	writeJar(t, jar, map[string]string{
		"META-INF/MANIFEST.MF":  "Manifest-Version: 1.0",
		"liblwjgl.so":           "lwjgl",
		"linux/x64/libglfw.so":  "glfw",
		"linux/":                "",
		"org/lwjgl/Version.txt": "3.3.1",
	})

	dest := filepath.Join(dir, "natives")
	n, err := ExtractAll([]Jar{{Path: jar, Exclude: []string{"org/"}}}, dest)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(dest, "liblwjgl.so"))
	assert.FileExists(t, filepath.Join(dest, "linux", "x64", "libglfw.so"))
	assert.NoDirExists(t, filepath.Join(dest, "META-INF"))
	assert.NoDirExists(t, filepath.Join(dest, "org"))
}

func TestExtract_PathTraversal(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "evil.jar")
	writeJar(t, jar, map[string]string{"../../evil.so": "evil"})

	_, err := Extract(Jar{Path: jar}, filepath.Join(dir, "natives"))
	var pathErr *downloadmgr.ErrInvalidPath
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "../../evil.so", pathErr.Path)
	assert.NoFileExists(t, filepath.Join(dir, "evil.so"))
}

func TestCollect(t *testing.T) {
	layout := downloadmgr.Layout{MetaDir: t.TempDir()}
	libs := minecraft.Libraries{
		{Name: "com.mojang:logging:1.1.1", Downloads: &minecraft.LibraryDownloads{
			Artifact: &minecraft.Artifact{Path: "com/mojang/logging-1.1.1.jar"},
		}},
		{
			Name: "org.lwjgl.lwjgl:lwjgl-platform:2.9.4",
			Downloads: &minecraft.LibraryDownloads{Classifiers: map[string]minecraft.Artifact{
				"natives-linux": {Path: "org/lwjgl/lwjgl-platform-natives-linux.jar"},
			}},
			Natives: map[string]string{"linux": "natives-linux"},
			Extract: &minecraft.ExtractRules{Exclude: []string{"META-INF/"}},
		},
	}

	jars, err := Collect(libs, minecraft.NewPlatform("linux", "amd64"), layout)
	require.NoError(t, err)
	require.Len(t, jars, 1)
	assert.Equal(t, filepath.Join(layout.MetaDir, "natives", "org", "lwjgl", "lwjgl-platform-natives-linux.jar"), jars[0].Path)
	assert.Equal(t, []string{"META-INF/"}, jars[0].Exclude)

	jars, err = Collect(libs, minecraft.NewPlatform("darwin", "arm64"), layout)
	require.NoError(t, err)
	assert.Empty(t, jars)
}
