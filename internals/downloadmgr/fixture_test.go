package downloadmgr

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minepkg/mcfetch/internals/minecraft"
)

var testPlatform = minecraft.NewPlatform("linux", "amd64")

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// fileServer serves static files and records every request
type fileServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string][]byte
	hits  map[string]int
	// failures makes a path respond with 503 for the given number of requests
	failures map[string]int

	assetDelay  time.Duration
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func newFileServer(t *testing.T) *fileServer {
	s := &fileServer{
		files:    map[string][]byte{},
		hits:     map[string]int{},
		failures: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *fileServer) serve(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/assets/") {
		current := s.inFlight.Add(1)
		defer s.inFlight.Add(-1)
		for {
			seen := s.maxInFlight.Load()
			if current <= seen || s.maxInFlight.CompareAndSwap(seen, current) {
				break
			}
		}
		time.Sleep(s.assetDelay)
	}

	s.mu.Lock()
	s.hits[r.URL.Path]++
	data, ok := s.files[r.URL.Path]
	failing := s.failures[r.URL.Path] > 0
	if failing {
		s.failures[r.URL.Path]--
	}
	s.mu.Unlock()

	switch {
	case failing:
		w.WriteHeader(http.StatusServiceUnavailable)
	case !ok:
		http.NotFound(w, r)
	default:
		w.Write(data)
	}
}

func (s *fileServer) set(path string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return s.URL + path
}

func (s *fileServer) totalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

func (s *fileServer) hitsFor(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *fileServer) resetHits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits = map[string]int{}
}

// artifact registers content on the server and returns the matching artifact
func (s *fileServer) artifact(urlPath string, relPath string, content string) *minecraft.Artifact {
	data := []byte(content)
	return &minecraft.Artifact{
		Path: relPath,
		Sha1: sha1Hex(data),
		Size: int64(len(data)),
		URL:  s.set(urlPath, data),
	}
}

// newManifest builds a manifest with libCount libraries and assetCount assets served by s
func newManifest(t *testing.T, s *fileServer, libCount int, assetCount int) *minecraft.VersionManifest {
	t.Helper()

	objects := map[string]minecraft.AssetObject{}
	for i := 0; i < assetCount; i++ {
		data := []byte(fmt.Sprintf("asset number %d", i))
		hash := sha1Hex(data)
		s.set("/assets/"+hash[:2]+"/"+hash, data)
		objects[fmt.Sprintf("minecraft/sounds/sound-%03d.ogg", i)] = minecraft.AssetObject{Hash: hash, Size: int64(len(data))}
	}
	rawIndex, err := json.Marshal(minecraft.AssetIndex{Objects: objects})
	if err != nil {
		t.Fatal(err)
	}

	libs := minecraft.Libraries{}
	for i := 0; i < libCount; i++ {
		name := fmt.Sprintf("lib%d", i)
		libs = append(libs, minecraft.Library{
			Name: "com.example:" + name + ":1.0",
			Downloads: &minecraft.LibraryDownloads{
				Artifact: s.artifact(
					"/libraries/"+name+".jar",
					"com/example/"+name+"/1.0/"+name+"-1.0.jar",
					"library "+name,
				),
			},
		})
	}

	client := s.artifact("/client.jar", "", "the client jar")
	logging := s.artifact("/client-1.12.xml", "", "<Configuration/>")
	logging.ID = "client-1.12.xml"

	return &minecraft.VersionManifest{
		ID:        "1.12.2",
		Downloads: map[string]minecraft.Artifact{"client": *client},
		Libraries: libs,
		AssetIndex: minecraft.AssetIndexRef{
			ID:   "1.12",
			Sha1: sha1Hex(rawIndex),
			URL:  s.set("/indexes/1.12.json", rawIndex),
		},
		Logging: &minecraft.Logging{Client: &minecraft.LoggingClient{File: logging}},
	}
}

func newTestManager(s *fileServer) *DownloadManager {
	return New(Options{
		HTTPClient: s.Client(),
		Platform:   testPlatform,
		AssetCDN:   s.URL + "/assets",
		Timeout:    5 * time.Second,
	})
}

// progressRecorder keeps the last reported progress per class
type progressRecorder struct {
	mu    sync.Mutex
	calls int
	last  map[DownloadClass][2]int
	names []string
}

func newProgressRecorder() *progressRecorder {
	return &progressRecorder{last: map[DownloadClass][2]int{}}
}

func (p *progressRecorder) record(name string, completed int, total int, class DownloadClass) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.names = append(p.names, name)
	if prev, ok := p.last[class]; !ok || completed > prev[0] {
		p.last[class] = [2]int{completed, total}
	}
}
