package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/shelf/internal/utils"
)

// ErrLoad is wrapped by every failure to read or parse the source.
var ErrLoad = errors.New("load failure")

// maxDocumentSize caps how much of a remote source is read.
const maxDocumentSize = 16 << 20

// Loader reads the bookmark document from a file path or an http(s) URL.
type Loader struct {
	source string
	client *http.Client
}

// NewLoader creates a loader for source. timeout bounds remote fetches.
func NewLoader(source string, timeout time.Duration) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: timeout},
	}
}

// Source returns the configured location.
func (l *Loader) Source() string {
	return l.source
}

// Load reads and parses the document.
func (l *Loader) Load(ctx context.Context) (Document, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	if isYAML(l.source) {
		return parseYAML(data)
	}
	return parseJSON(data)
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !isRemote(l.source) {
		data, err := os.ReadFile(l.source)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read source file: %w", ErrLoad, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrLoad, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch source: %w", ErrLoad, err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrLoad, resp.StatusCode, l.source)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrLoad, err)
	}
	return data, nil
}

// parseJSON walks the top-level object in document order.
func parseJSON(data []byte) (Document, error) {
	var doc Document
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("category key %q: %w", key, err)
		}
		switch dataType {
		case jsonparser.Null:
			doc = append(doc, Group{Name: name})
			return nil
		case jsonparser.Array:
		default:
			return fmt.Errorf("category %q: expected a list, got %v", name, dataType)
		}

		var items []Item
		if err := json.Unmarshal(value, &items); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		doc = append(doc, Group{Name: name, Items: items})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse json: %w", ErrLoad, err)
	}
	return doc, nil
}

// parseYAML walks the top-level mapping node in document order.
func parseYAML(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: failed to parse yaml: %w", ErrLoad, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Document{}, nil
	}

	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: yaml root must be a mapping of categories", ErrLoad)
	}

	doc := make(Document, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		name := m.Content[i].Value
		var items []Item
		if err := m.Content[i+1].Decode(&items); err != nil {
			return nil, fmt.Errorf("%w: category %q: %w", ErrLoad, name, err)
		}
		doc = append(doc, Group{Name: name, Items: items})
	}
	return doc, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isYAML(source string) bool {
	if i := strings.IndexAny(source, "?#"); i >= 0 && isRemote(source) {
		source = source[:i]
	}
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".yaml" || ext == ".yml"
}
