package assessment

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalogYAML = `templates:
  - companyId: acme
    companyName: Acme
    role: Platform Engineer
    requiredSkills:
      - skill: Go
        weight: 60
      - skill: Kubernetes
        weight: 40
  - companyId: globex
    companyName: Globex
    role: Data Engineer
    requiredSkills:
      - skill: Python
        weight: 50
      - skill: SQL
        weight: 50
`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestNewCatalogDefaults(t *testing.T) {
	catalog := NewCatalog()

	templates := catalog.Templates()
	if len(templates) != 3 {
		t.Fatalf("default catalog has %d templates, want 3", len(templates))
	}

	expectedOrder := []string{"code-orbit", "pixel-forge", "data-sphere"}
	for i, id := range expectedOrder {
		if templates[i].CompanyID != id {
			t.Errorf("template %d = %q, want %q", i, templates[i].CompanyID, id)
		}
	}

	// Returned slice is a snapshot; mutating it must not affect the catalog.
	templates[0].CompanyID = "mutated"
	if catalog.Templates()[0].CompanyID != "code-orbit" {
		t.Error("Templates() exposed internal state")
	}
}

func TestNewCatalogFromFile(t *testing.T) {
	path := writeCatalogFile(t, testCatalogYAML)

	catalog, err := NewCatalogFromFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	templates := catalog.Templates()
	if len(templates) != 2 {
		t.Fatalf("loaded %d templates, want 2", len(templates))
	}
	if templates[0].CompanyID != "acme" || templates[0].Role != "Platform Engineer" {
		t.Errorf("first template = %+v", templates[0])
	}
	if len(templates[0].RequiredSkills) != 2 || templates[0].RequiredSkills[0].Weight != 60 {
		t.Errorf("first template requirements = %+v", templates[0].RequiredSkills)
	}
}

func TestNewCatalogFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing templates", "templates: []\n"},
		{"missing company id", "templates:\n  - companyName: NoID\n"},
		{"non-positive weight", "templates:\n  - companyId: x\n    requiredSkills:\n      - skill: Go\n        weight: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, tt.content)
			if _, err := NewCatalogFromFile(path, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Run("nonexistent file", func(t *testing.T) {
		if _, err := NewCatalogFromFile(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestCatalogReload(t *testing.T) {
	path := writeCatalogFile(t, testCatalogYAML)

	catalog, err := NewCatalogFromFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.Size() != 2 {
		t.Fatalf("initial size = %d, want 2", catalog.Size())
	}

	updated := `templates:
  - companyId: initech
    companyName: Initech
    role: SRE
    requiredSkills:
      - skill: Go
        weight: 100
`
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("failed to rewrite catalog: %v", err)
	}
	if err := catalog.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	templates := catalog.Templates()
	if len(templates) != 1 || templates[0].CompanyID != "initech" {
		t.Errorf("after reload templates = %+v", templates)
	}
}

func TestCatalogReloadWithoutPath(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Reload(); err != nil {
		t.Errorf("reload of built-in catalog should be a no-op, got %v", err)
	}
	if catalog.Size() != 3 {
		t.Errorf("size = %d, want 3", catalog.Size())
	}
}
