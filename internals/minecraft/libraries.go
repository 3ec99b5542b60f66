package minecraft

import (
	"fmt"
	"strings"
)

// Libraries as a collection of minecraft libs
type Libraries []Library

// Required returns only the libraries whose rules allow the given platform
func (l Libraries) Required(p Platform) Libraries {
	required := make(Libraries, 0, len(l))
	for _, lib := range l {
		// did some rules not apply? skip this library
		if !lib.Rules.Allowed(p) {
			continue
		}
		required = append(required, lib)
	}
	return required
}

// Library is a minecraft library
type Library struct {
	// Name is the maven coordinate of the library (group:artifact:version)
	Name string `json:"name"`
	// Downloads is not set for legacy (forge/fabric style) libraries
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	// URL is set for legacy libraries. It either is a maven repository
	// (ending with a slash) or the direct url of the jar
	URL string `json:"url,omitempty"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules Rules `json:"rules,omitempty"`
	// Natives is a map of OS names to native classifier keys.
	// This field is no longer used after 1.19
	// Newer library versions extract the native library from a jar at runtime.
	Natives map[string]string `json:"natives,omitempty"`
	// Extract lists paths that should not be extracted from native jars
	Extract *ExtractRules `json:"extract,omitempty"`
}

// ExtractRules are the extract rules of a native library
type ExtractRules struct {
	Exclude []string `json:"exclude"`
}

// LibraryDownloads lists the files of a library
type LibraryDownloads struct {
	Artifact *Artifact `json:"artifact,omitempty"`
	// Classifiers is a list of additional artifacts.
	// It is used to download native libraries.
	// The `Natives` field is used to determine which classifier to use.
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// HasDownloads reports whether the library has a structured downloads block
func (l *Library) HasDownloads() bool {
	return l.Downloads != nil && (l.Downloads.Artifact != nil || len(l.Downloads.Classifiers) != 0)
}

// NativeArtifact returns the native classifier for the given platform.
// ok is false if the library has no native for this platform
func (l *Library) NativeArtifact(p Platform) (native Artifact, ok bool) {
	if l.Downloads == nil || len(l.Downloads.Classifiers) == 0 {
		return Artifact{}, false
	}
	key, ok := l.Natives[p.OS]
	if !ok || key == "" {
		return Artifact{}, false
	}
	key = strings.ReplaceAll(key, "${arch}", p.Bits())
	native, ok = l.Downloads.Classifiers[key]
	return native, ok
}

// LegacyPath returns the slash separated path a legacy library is stored at.
// Every ":" and "." of the coordinate is turned into a "/"
// example: com.example:foo:1.2.3 -> com/example/foo/1/2/3.jar
func (l *Library) LegacyPath() string {
	replacer := strings.NewReplacer(":", "/", ".", "/")
	return replacer.Replace(l.Name) + ".jar"
}

// MavenPath returns the standard maven repository path of the library
// example: com.example:foo:1.2.3 -> com/example/foo/1.2.3/foo-1.2.3.jar
func (l *Library) MavenPath() (string, error) {
	grouped := strings.Split(l.Name, ":")
	if len(grouped) < 3 {
		return "", fmt.Errorf("invalid maven coordinate %q", l.Name)
	}
	basePath := strings.ReplaceAll(grouped[0], ".", "/")
	name := grouped[1]
	version := grouped[2]

	file := name + "-" + version
	if len(grouped) > 3 {
		file += "-" + grouped[3]
	}
	return basePath + "/" + name + "/" + version + "/" + file + ".jar", nil
}

// LegacyURL returns the download url of a legacy library.
// A URL ending with a slash is a maven repository and gets the maven path appended
func (l *Library) LegacyURL() (string, error) {
	if !strings.HasSuffix(l.URL, "/") {
		return l.URL, nil
	}
	mavenPath, err := l.MavenPath()
	if err != nil {
		return "", err
	}
	return l.URL + mavenPath, nil
}
