package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and dataset fixtures
// ---------------------------------------------------------------------------

const (
	testActivities = `[
  {"id":"a1","timestamp":"2026-02-19T08:00:00Z","type":"email","action":"Sent Digest","description":"Morning news","status":"completed"},
  {"id":"a2","timestamp":"2026-02-19T09:00:00Z","type":"search","action":"Research","description":"NIST agent standards","status":"pending"}
]`
	testSchedule = `{"recurring":[{"id":"r1","name":"Digest","schedule":"Daily 8:00 AM","type":"cron","source":"cron"}],"oneTime":[]}`
	testSessions = "---\ntitle: Sessions\ndescription: How sessions work\nicon: \"🧵\"\norder: 1\n---\n## Sessions\n\n- main\n- isolated\n"
)

// testData returns the dataset used as the bundled default in tests.
func testData() fstest.MapFS {
	return fstest.MapFS{
		"activities.json":        {Data: []byte(testActivities)},
		"scheduled.json":         {Data: []byte(testSchedule)},
		"explainers/sessions.md": {Data: []byte(testSessions)},
	}
}

// writeDataDir lays the test dataset out on disk and returns its path.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, f := range testData() {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// lockedBuffer is a bytes.Buffer safe for the server's concurrent logging.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *lockedBuffer
	stderr *lockedBuffer
}

func newTestEnv(stdin string) *testEnv {
	stdout, stderr := &lockedBuffer{}, &lockedBuffer{}
	return &testEnv{
		Environment: &Environment{
			Now:         func() time.Time { return time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC) },
			Stdin:       strings.NewReader(stdin),
			Stdout:      stdout,
			Stderr:      stderr,
			DefaultData: testData(),
			Listen:      net.Listen,
		},
		stdout: stdout,
		stderr: stderr,
	}
}
