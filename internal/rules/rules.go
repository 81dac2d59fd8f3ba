// Package rules holds the fixed misconfiguration rule set. Every rule is a
// pure function of a single object's shape, there is no cross-object
// correlation and no I/O, so the whole engine is unit-testable offline.
package rules

import (
	"fmt"
	"strings"

	"github.com/KubeVet/kubevet/internal/manifest"
	"github.com/KubeVet/kubevet/internal/model"
)

// Evaluate applies the rule set to one manifest object and returns its
// findings in detection order: for each container (spec.containers first,
// spec.template.spec.containers otherwise) the four container rules in
// order, then the object-level rules.
func Evaluate(obj manifest.Object, sourcePath string) []model.Finding {
	prefix := fmt.Sprintf("%s [%s/%s]", sourcePath, obj.Kind(), obj.Name())

	var findings []model.Finding
	for _, c := range obj.Containers() {
		findings = append(findings, evaluateContainer(prefix, c)...)
	}
	findings = append(findings, evaluateService(prefix, obj)...)
	findings = append(findings, evaluateRBAC(prefix, obj)...)
	return findings
}

func evaluateContainer(prefix string, raw map[string]any) []model.Finding {
	c := manifest.FromMap(raw)
	name := c.StringAt("name")
	if name == "" {
		name = "unnamed"
	}
	snippet := manifest.Fragment(raw)

	containerFinding := func(severity model.Severity, what string) model.Finding {
		return model.Finding{
			Severity: severity,
			Message:  fmt.Sprintf("%s Container '%s' %s", prefix, name, what),
			Snippet:  snippet,
		}
	}

	var findings []model.Finding

	resources := c.MapAt("resources")
	if !manifest.Truthy(resources["limits"]) || !manifest.Truthy(resources["requests"]) {
		findings = append(findings, containerFinding(model.Medium, "missing resource requests/limits"))
	}

	sc := c.MapAt("securityContext")
	if manifest.Truthy(sc["privileged"]) {
		findings = append(findings, containerFinding(model.High, "runs as privileged"))
	}

	// an explicit uid 0 only; omitting runAsUser is not flagged
	if runAsUser, ok := sc["runAsUser"]; ok && manifest.IntEquals(runAsUser, 0) {
		findings = append(findings, containerFinding(model.High, "runs as root user"))
	}

	if image := c.StringAt("image"); mutableTag(image) {
		findings = append(findings, containerFinding(model.Low, "uses 'latest' image tag"))
	}

	return findings
}

// mutableTag reports whether an image reference floats: an explicit
// :latest tag or a dangling colon with no tag at all.
func mutableTag(image string) bool {
	if image == "" {
		return false
	}
	return strings.Contains(image, ":latest") || strings.HasSuffix(image, ":")
}

func evaluateService(prefix string, obj manifest.Object) []model.Finding {
	if obj.Kind() != "Service" {
		return nil
	}

	var findings []model.Finding
	if obj.Namespace() == "" {
		findings = append(findings, model.Finding{
			Severity: model.Low,
			Message:  fmt.Sprintf("%s Service has no namespace set", prefix),
			Snippet:  obj.Fragment(),
		})
	}

	// absent spec.type means ClusterIP, which is not exposure
	switch svcType := obj.StringAt("spec", "type"); svcType {
	case "LoadBalancer", "NodePort":
		findings = append(findings, model.Finding{
			Severity: model.High,
			Message:  fmt.Sprintf("%s Service is externally exposed via %s", prefix, svcType),
			Snippet:  obj.Fragment(),
		})
	}
	return findings
}

func evaluateRBAC(prefix string, obj manifest.Object) []model.Finding {
	switch obj.Kind() {
	case "Role", "ClusterRole":
	default:
		return nil
	}

	entries := obj.ListAt("rules")
	if entries == nil {
		entries = obj.ListAt("spec", "rules")
	}

	var findings []model.Finding
	for _, entry := range entries {
		rule, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if containsWildcard(rule["verbs"]) || containsWildcard(rule["resources"]) {
			findings = append(findings, model.Finding{
				Severity: model.High,
				Message:  fmt.Sprintf("%s RBAC rule allows wildcard verbs or resources", prefix),
				Snippet:  manifest.Fragment(rule),
			})
		}
	}
	return findings
}

func containsWildcard(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if s, ok := item.(string); ok && s == "*" {
			return true
		}
	}
	return false
}
