// Package corpus supplies documents to the engine: the built-in sample set,
// the demo queries and a loader for YAML or JSON document files.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/metadex/core"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedLayout is returned for YAML nodes that are not a document,
// a list of documents or a mapping with a documents key.
var ErrUnsupportedLayout = errors.New("unsupported corpus layout")

// fileLayout is the wrapped form: {documents: [...]}.
type fileLayout struct {
	Documents []core.Document `yaml:"documents"`
}

// Load reads documents from a YAML or JSON file.
func Load(path string) ([]core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	docs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// Parse decodes documents from YAML or JSON. Each YAML stream document may be
// a list of documents, a single document or a mapping with a documents key.
// Streams separated by --- are concatenated in order.
func Parse(data []byte) ([]core.Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	docs := make([]core.Document, 0)

	for n := 1; ; n++ {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid YAML (document %d): %w", n, err)
		}
		if len(node.Content) == 0 {
			continue
		}

		batch, err := decodeNode(node.Content[0])
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", n, err)
		}
		docs = append(docs, batch...)
	}
	return docs, nil
}

func decodeNode(node *yaml.Node) ([]core.Document, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var docs []core.Document
		if err := node.Decode(&docs); err != nil {
			return nil, err
		}
		return docs, nil
	case yaml.MappingNode:
		if hasKey(node, "documents") {
			var wrapped fileLayout
			if err := node.Decode(&wrapped); err != nil {
				return nil, err
			}
			return wrapped.Documents, nil
		}
		var doc core.Document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return []core.Document{doc}, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w at line %d", ErrUnsupportedLayout, node.Line)
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
