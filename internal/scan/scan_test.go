package scan_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KubeVet/kubevet/internal/model"
	"github.com/KubeVet/kubevet/internal/scan"
)

// podWithLatest yields exactly two findings: missing resources and the
// latest tag, both naming the container.
func podWithLatest(container string) string {
	return fmt.Sprintf(`
kind: Pod
metadata:
  name: %[1]s-pod
spec:
  containers:
  - name: %[1]s
    image: %[1]s:latest
`, container)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScanSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", podWithLatest("web"))

	result, err := scan.Scan(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, result.Findings, 2)
	require.Contains(t, result.Findings[0].Message, path)
}

func TestScanFileWithoutManifestExtension(t *testing.T) {
	t.Parallel()

	// a single-file invocation has no extension filter
	dir := t.TempDir()
	path := writeFile(t, dir, "manifest.txt", podWithLatest("web"))

	result, err := scan.Scan(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, result.Findings, 2)
}

func TestScanMissingPath(t *testing.T) {
	t.Parallel()

	_, err := scan.Scan(t.Context(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestScanMalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yaml", "kind: [unclosed\n")

	result, err := scan.Scan(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)

	f := result.Findings[0]
	require.Equal(t, model.Low, f.Severity)
	require.True(t, strings.HasPrefix(f.Message, "Error parsing "+path+": "), f.Message)
	require.Empty(t, f.Snippet)
}

func TestScanDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", podWithLatest("bravo"))
	writeFile(t, dir, "a.yaml", podWithLatest("alpha"))
	writeFile(t, dir, "sub/c.yml", podWithLatest("charlie"))
	writeFile(t, dir, "notes.txt", podWithLatest("ignored"))
	writeFile(t, dir, "broken.yaml", "kind: {oops\n")

	result, err := scan.Scan(t.Context(), dir)
	require.NoError(t, err)

	// lexical walk order: a.yaml, b.yaml, broken.yaml, then sub/c.yml;
	// the txt file is skipped, the broken file degrades to one finding
	require.Len(t, result.Findings, 7)
	require.Contains(t, result.Findings[0].Message, "Container 'alpha'")
	require.Contains(t, result.Findings[1].Message, "Container 'alpha'")
	require.Contains(t, result.Findings[2].Message, "Container 'bravo'")
	require.Contains(t, result.Findings[3].Message, "Container 'bravo'")
	require.Contains(t, result.Findings[4].Message, "Error parsing")
	require.Contains(t, result.Findings[5].Message, "Container 'charlie'")
	require.Contains(t, result.Findings[6].Message, "Container 'charlie'")
}

func TestScanDirectoryEqualsFileConcatenation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.yaml", podWithLatest("alpha")),
		writeFile(t, dir, "b.yml", podWithLatest("bravo")),
		writeFile(t, dir, "c.yaml", "kind: Service\nmetadata:\n  name: s\nspec:\n  type: NodePort\n"),
	}

	dirResult, err := scan.Scan(t.Context(), dir)
	require.NoError(t, err)

	var concatenated model.Result
	for _, p := range paths {
		fileResult, err := scan.Scan(t.Context(), p)
		require.NoError(t, err)
		concatenated.Append(fileResult.Findings...)
	}

	require.Equal(t, concatenated, dirResult)
}

func TestScanIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", podWithLatest("alpha"))
	writeFile(t, dir, "b.yaml", "kind: ClusterRole\nmetadata:\n  name: cr\nrules:\n- verbs: [\"*\"]\n")

	first, err := scan.Scan(t.Context(), dir)
	require.NoError(t, err)
	second, err := scan.Scan(t.Context(), dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestScanMultiDocumentFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := podWithLatest("one") + "---\n" + "---\n" + podWithLatest("two")
	path := writeFile(t, dir, "multi.yaml", content)

	result, err := scan.Scan(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, result.Findings, 4)
	require.Contains(t, result.Findings[0].Message, "Container 'one'")
	require.Contains(t, result.Findings[2].Message, "Container 'two'")
}

func TestScanCleanDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "ok.yaml", `
kind: Pod
metadata:
  name: tidy
spec:
  containers:
  - name: app
    image: app:1.2.3
    resources:
      limits: {cpu: "1", memory: 128Mi}
      requests: {cpu: "0.5", memory: 64Mi}
`)

	result, err := scan.Scan(t.Context(), dir)
	require.NoError(t, err)
	require.True(t, result.Empty())
}
