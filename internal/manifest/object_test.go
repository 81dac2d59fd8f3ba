package manifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KubeVet/kubevet/internal/manifest"
)

func decodeOne(t *testing.T, doc string) manifest.Object {
	t.Helper()
	objects, err := manifest.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, objects, 1)
	return objects[0]
}

func TestObjectDefaults(t *testing.T) {
	t.Parallel()

	obj := decodeOne(t, "metadata: {}\n")
	require.Equal(t, "Unknown", obj.Kind())
	require.Equal(t, "unnamed", obj.Name())
	require.Empty(t, obj.Namespace())
}

func TestObjectAccessors(t *testing.T) {
	t.Parallel()

	obj := decodeOne(t, `
kind: Service
metadata:
  name: web
  namespace: prod
spec:
  type: NodePort
  ports:
    - port: 80
`)
	require.Equal(t, "Service", obj.Kind())
	require.Equal(t, "web", obj.Name())
	require.Equal(t, "prod", obj.Namespace())
	require.Equal(t, "NodePort", obj.StringAt("spec", "type"))
	require.Len(t, obj.ListAt("spec", "ports"), 1)
	require.NotNil(t, obj.MapAt("spec"))

	// missing and mistyped paths degrade to defaults
	require.Empty(t, obj.StringAt("spec", "missing"))
	require.Empty(t, obj.StringAt("spec", "ports")) // list, not string
	require.Nil(t, obj.MapAt("spec", "type"))
	require.Nil(t, obj.ListAt("metadata", "name"))
	require.False(t, obj.Has("spec", "selector"))
	require.True(t, obj.Has("spec", "type"))
}

func TestContainersLocations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scenario string
		doc      string
		names    []string
	}{
		{
			"pod-like",
			"kind: Pod\nspec:\n  containers:\n    - name: a\n    - name: b\n",
			[]string{"a", "b"},
		},
		{
			"workload-controller-like",
			"kind: Deployment\nspec:\n  template:\n    spec:\n      containers:\n        - name: c\n",
			[]string{"c"},
		},
		{
			"first location wins, no merge",
			"kind: Pod\nspec:\n  containers:\n    - name: top\n  template:\n    spec:\n      containers:\n        - name: nested\n",
			[]string{"top"},
		},
		{
			"no containers",
			"kind: Service\nspec: {}\n",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			obj := decodeOne(t, tt.doc)
			containers := obj.Containers()
			var names []string
			for _, c := range containers {
				names = append(names, manifest.FromMap(c).StringAt("name"))
			}
			require.Equal(t, tt.names, names)
		})
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scenario string
		value    any
		want     bool
	}{
		{"nil", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"zero", 0, false},
		{"one", 1, true},
		{"empty string", "", false},
		{"string", "yes", true},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"cpu": "1"}, true},
		{"empty list", []any{}, false},
		{"list", []any{1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, manifest.Truthy(tt.value))
		})
	}
}

func TestIntEquals(t *testing.T) {
	t.Parallel()

	require.True(t, manifest.IntEquals(0, 0))
	require.True(t, manifest.IntEquals(int64(0), 0))
	require.True(t, manifest.IntEquals(float64(0), 0))
	require.False(t, manifest.IntEquals(1, 0))
	require.False(t, manifest.IntEquals("0", 0))
	require.False(t, manifest.IntEquals(nil, 0))
}

func TestFragment(t *testing.T) {
	t.Parallel()

	obj := decodeOne(t, "kind: Pod\nmetadata:\n  name: p\n")
	fragment := obj.Fragment()
	require.Contains(t, fragment, "kind: Pod")
	require.Contains(t, fragment, "name: p")
	require.False(t, strings.HasSuffix(fragment, "\n"))
}
