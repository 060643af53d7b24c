package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/sources/directory"
)

func testConfig(t *testing.T, source string) *config.Config {
	t.Helper()
	return &config.Config{
		ListenPort:      "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		LogLevel:        "error",
		Source:          source,
		Title:           "Links",
		FetchTimeout:    time.Second,
		ReloadInterval:  time.Hour,
		PruneInterval:   time.Hour,
		BannerTTL:       3 * time.Second,
		ScrollOffset:    100,
		GoBurst:         30,
		GoRefillPerMin:  60,
	}
}

func TestExport(t *testing.T) {
	src := filepath.Join(t.TempDir(), "output.json")
	doc := `{"Tools":[{"title":"A","url":"http://a"}],"Docs":[{"title":"B","url":"http://b","description":"desc"}]}`
	if err := os.WriteFile(src, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Export(context.Background(), testConfig(t, src), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`data-category="Tools"`, `data-category="Docs"`, `href="http://b"`, `<title>Links</title>`} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestExport_MissingSource(t *testing.T) {
	var buf bytes.Buffer
	err := Export(context.Background(), testConfig(t, filepath.Join(t.TempDir(), "nope.json")), &buf)
	if !errors.Is(err, directory.ErrLoad) {
		t.Fatalf("Export() error = %v, want ErrLoad", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on failure")
	}
}

func TestNew_WithoutRedis(t *testing.T) {
	a, err := New(testConfig(t, "output.json"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.redisClient != nil || a.pruner != nil {
		t.Error("redis components should be disabled without SHELF_REDIS_ADDR")
	}
	if a.reloader == nil || a.server == nil {
		t.Error("reloader and server should always be wired")
	}
}
