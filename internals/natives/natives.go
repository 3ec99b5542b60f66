// Package natives extracts native libraries (.so, .dll, .dylib) out of their jars
// into the natives directory of a version
package natives

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/mholt/archiver/v3"
	"github.com/minepkg/mcfetch/internals/downloadmgr"
	"github.com/minepkg/mcfetch/internals/minecraft"
)

// defaultExclude is skipped in every jar
var defaultExclude = []string{"META-INF/"}

// Jar is a downloaded native jar
type Jar struct {
	Path    string
	Exclude []string
}

// Collect lists the native jars of the libraries that are required on the platform
func Collect(libs minecraft.Libraries, p minecraft.Platform, layout downloadmgr.Layout) ([]Jar, error) {
	jars := []Jar{}
	for _, lib := range libs.Required(p) {
		native, ok := lib.NativeArtifact(p)
		if !ok {
			continue
		}
		path, err := layout.Native(native.Path)
		if err != nil {
			return nil, err
		}
		jar := Jar{Path: path}
		if lib.Extract != nil {
			jar.Exclude = lib.Extract.Exclude
		}
		jars = append(jars, jar)
	}
	return jars, nil
}

// ExtractAll extracts all jars into dest and returns the number of extracted files
func ExtractAll(jars []Jar, dest string) (int, error) {
	if err := os.MkdirAll(dest, os.ModePerm); err != nil {
		return 0, err
	}
	total := 0
	for _, jar := range jars {
		n, err := Extract(jar, dest)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Extract extracts a single jar into dest. Directories and excluded paths are skipped
func Extract(jar Jar, dest string) (int, error) {
	extracted := 0
	exclude := append(append([]string{}, defaultExclude...), jar.Exclude...)

	// archiver flattens errors of the walk func, so they are kept here
	var entryErr error
	stop := func(err error) error {
		entryErr = err
		return archiver.ErrStopWalk
	}

	err := archiver.NewZip().Walk(jar.Path, func(f archiver.File) error {
		if f.IsDir() {
			return nil
		}
		header, ok := f.Header.(zip.FileHeader)
		if !ok {
			return stop(fmt.Errorf("unexpected header %T", f.Header))
		}
		name := header.Name
		if excluded(name, exclude) {
			return nil
		}

		target := filepath.Join(dest, filepath.FromSlash(name))
		rel, err := filepath.Rel(dest, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return stop(&downloadmgr.ErrInvalidPath{Path: name})
		}

		if err := writeEntry(target, f); err != nil {
			return stop(err)
		}
		extracted++
		return nil
	})
	if entryErr != nil {
		err = entryErr
	}
	if err != nil {
		return extracted, fmt.Errorf("could not extract natives from %s: %w", jar.Path, err)
	}
	return extracted, nil
}

func excluded(name string, exclude []string) bool {
	for _, prefix := range exclude {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
