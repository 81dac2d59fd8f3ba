package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a possibly multi-document YAML stream and returns one Object
// per non-empty mapping document. Empty documents (blank between ---
// markers) are skipped silently. Scalar or sequence documents are not
// manifests and are skipped as well.
//
// The stream is consumed eagerly: a structural parse failure anywhere
// discards already-decoded documents and returns the error, so a broken
// file degrades to exactly one parse finding at the orchestrator boundary.
func Decode(r io.Reader) ([]Object, error) {
	dec := yaml.NewDecoder(r)

	var objects []Object
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		m, ok := doc.(map[string]any)
		if !ok {
			continue
		}
		objects = append(objects, FromMap(m))
	}
	return objects, nil
}

// Load opens path and decodes it as a multi-document YAML stream.
func Load(path string) ([]Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f)
}
