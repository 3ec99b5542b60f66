package downloadmgr

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/mcfetch/internals/minecraft"
)

// metaSubdirectories are created below the meta directory for every acquisition
var metaSubdirectories = []string{
	"versions",
	"libraries",
	"assets",
	"assets/indexes",
	"assets/objects",
}

// Layout describes where files end up on disk
type Layout struct {
	// MetaDir contains the versions, libraries, natives & assets folders
	MetaDir string
	// ProfileDir is the game directory of one profile
	ProfileDir string
}

// Create creates all directories required to acquire the version with the given id.
// Existing directories are fine
func (l Layout) Create(versionID string) error {
	dirs := make([]string, 0, len(metaSubdirectories)+2)
	for _, sub := range metaSubdirectories {
		dirs = append(dirs, filepath.Join(l.MetaDir, filepath.FromSlash(sub)))
	}
	dirs = append(dirs, l.VersionDir(versionID), l.ProfileDir)

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return &ErrDirectoryCreateFailed{Path: dir, Err: err}
		}
	}
	return nil
}

// VersionDir returns the path to the directory of a version
func (l Layout) VersionDir(versionID string) string {
	return filepath.Join(l.MetaDir, "versions", versionID)
}

// ClientJar returns the path to the client jar of a version
func (l Layout) ClientJar(versionID string) string {
	return filepath.Join(l.VersionDir(versionID), versionID+".jar")
}

// LoggingConfig returns the path to the logging config of a version
func (l Layout) LoggingConfig(versionID string, fileID string) (string, error) {
	return within(l.VersionDir(versionID), fileID)
}

// Library returns the path of a library, relPath is slash separated
func (l Layout) Library(relPath string) (string, error) {
	return within(filepath.Join(l.MetaDir, "libraries"), relPath)
}

// Native returns the path of a native library, relPath is slash separated
func (l Layout) Native(relPath string) (string, error) {
	return within(filepath.Join(l.MetaDir, "natives"), relPath)
}

// NativesDir returns the directory natives of a version are extracted to
func (l Layout) NativesDir(versionID string) string {
	return filepath.Join(l.MetaDir, "natives", versionID)
}

// AssetIndex returns the path to an asset index
func (l Layout) AssetIndex(indexID string) (string, error) {
	return within(filepath.Join(l.MetaDir, "assets", "indexes"), indexID+".json")
}

// AssetObject returns the path of an asset object. The hash has to be a sha1 hex string
func (l Layout) AssetObject(obj minecraft.AssetObject) (string, error) {
	if !isSha1Hex(obj.Hash) {
		return "", &ErrInvalidPath{Path: obj.Hash}
	}
	return within(filepath.Join(l.MetaDir, "assets", "objects"), obj.UnixPath())
}

func isSha1Hex(s string) bool {
	if len(s) != 2*sha1.Size {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// within joins the slash separated relPath to root and makes sure
// the result does not escape root
func within(root string, relPath string) (string, error) {
	if relPath == "" {
		return "", &ErrInvalidPath{Path: relPath}
	}
	joined := filepath.Join(root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(root, joined)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &ErrInvalidPath{Path: relPath}
	}
	return joined, nil
}
