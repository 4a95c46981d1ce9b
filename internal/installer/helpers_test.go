package installer

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"env-bootstrap/internal/config"
	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/testutil"
)

type archiveEntry struct {
	name string
	body string
	mode int64
}

func tarGz(t *testing.T, entries ...archiveEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for _, e := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     e.name,
			Mode:     e.mode,
			Size:     int64(len(e.body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipBytes(t *testing.T, entries ...archiveEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		hdr.SetMode(os.FileMode(e.mode))
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// artifactServer serves fixed bodies by path and counts requests.
type artifactServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string]int
}

func newArtifactServer(t *testing.T, routes map[string][]byte) *artifactServer {
	t.Helper()
	s := &artifactServer{hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *artifactServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// fixture reads a prebuilt archive from testdata.
func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.SetOutput(&buf)
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		logger.SetOutput(prev)
		color.NoColor = noColor
	})
	return &buf
}

func ubuntu() platform.Descriptor {
	d, _ := platform.Detect("Linux", "x86_64", map[string]string{"ID": "ubuntu", "VERSION_CODENAME": "jammy"})
	return d
}

func macOS() platform.Descriptor {
	d, _ := platform.Detect("Darwin", "arm64", nil)
	return d
}

func newTestInstaller(t *testing.T, desc platform.Descriptor, r *testutil.FakeRunner, srv *artifactServer) *Installer {
	t.Helper()
	cfg := config.Default()
	cfg.Install.BinDir = t.TempDir()
	cfg.Install.TempDir = t.TempDir()
	if srv != nil {
		cfg.Sources.AWSCLI = srv.URL + "/awscli"
		cfg.Sources.Eksctl = srv.URL + "/eksctl"
		cfg.Sources.Kubectl = srv.URL + "/k8s"
		cfg.Sources.NVM = srv.URL + "/nvm"
		cfg.Sources.Docker = srv.URL + "/docker"
	}
	in := &Installer{
		Platform: desc,
		Runner:   r,
		HTTP:     http.DefaultClient,
		Config:   cfg,
		Home:     t.TempDir(),
		User:     "ops",
		UseSudo:  true,
	}
	if srv != nil {
		in.HTTP = srv.Client()
	}
	return in
}

// assertTempEmpty checks that every scoped temp dir was removed.
func assertTempEmpty(t *testing.T, in *Installer) {
	t.Helper()
	entries, err := os.ReadDir(in.Config.Install.TempDir)
	require.NoError(t, err)
	require.Empty(t, entries, "temporary directories left behind")
}
