// Package scan walks files or directory trees and aggregates rule findings
// into one ordered result.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KubeVet/kubevet/internal/log"
	"github.com/KubeVet/kubevet/internal/manifest"
	"github.com/KubeVet/kubevet/internal/model"
	"github.com/KubeVet/kubevet/internal/rules"
)

// Scan analyzes path, a single manifest file or a directory tree. For a
// directory every file named *.yaml or *.yml is visited in the lexical
// order of fs.WalkDir, which makes results deterministic and the
// directory result equal to the concatenation of per-file results.
//
// A file that cannot be opened or parsed never aborts the batch: it
// degrades to a single Low "Error parsing" finding. Only a path that
// cannot be statted at all is an error.
func Scan(ctx context.Context, path string) (model.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Result{}, fmt.Errorf("scan: %w", err)
	}

	if !info.IsDir() {
		return File(ctx, path), nil
	}

	var result model.Result
	for p, err := range manifestFiles(ctx, path) {
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable entry", "path", p, "error", err)
			continue
		}
		fileResult := File(ctx, p)
		result.Append(fileResult.Findings...)
	}
	return result, nil
}

// File analyzes one file and returns its findings in detection order. A
// parse failure yields exactly one Low finding with an empty snippet.
func File(ctx context.Context, path string) model.Result {
	ctx = log.ContextAttrs(ctx, slog.String("path", path))
	slog.DebugContext(ctx, "scanning")

	objects, err := manifest.Load(path)
	if err != nil {
		slog.DebugContext(ctx, "parse failed", "error", err)
		return model.Result{Findings: []model.Finding{{
			Severity: model.Low,
			Message:  fmt.Sprintf("Error parsing %s: %v", path, err),
		}}}
	}

	var result model.Result
	for _, obj := range objects {
		result.Append(rules.Evaluate(obj, path)...)
	}
	return result
}

// manifestFiles yields every regular *.yaml / *.yml file under root, in
// fs.WalkDir's lexical per-directory order.
func manifestFiles(ctx context.Context, root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		fn := func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return fs.SkipAll
			}
			if err != nil {
				if !yield(path, err) {
					return fs.SkipAll
				}
				return nil
			}
			if d.IsDir() || !isManifestName(d.Name()) {
				return nil
			}
			if !yield(path, nil) {
				return fs.SkipAll
			}
			return nil
		}
		_ = filepath.WalkDir(root, fn)
	}
}

func isManifestName(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
