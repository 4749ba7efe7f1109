package recipe

import (
	"strings"
	"testing"

	"github.com/ormasoftchile/unbox/pkg/prompt"
	"github.com/ormasoftchile/unbox/pkg/schema"
)

func loadSpecs(t *testing.T, doc string) *schema.Scope {
	t.Helper()
	cfg, err := schema.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Recipes.Specs
}

const twoLevelDoc = `
recipes:
  specs:
    web:
      react: [app.jsx]
      vue: [app.vue]
    cli:
      cobra: [main.go]
`

func TestResolve_ValidPresetsNeverPrompt(t *testing.T) {
	specs := loadSpecs(t, twoLevelDoc)
	scripted := &prompt.Scripted{}

	leaf, err := Resolve(specs, []string{"web", "vue"}, nil, scripted)
	if err != nil {
		t.Fatal(err)
	}
	if scripted.ChoicesAsked != 0 {
		t.Errorf("asked %d prompts, want 0", scripted.ChoicesAsked)
	}
	if len(leaf) != 1 || leaf[0].Path != "app.vue" {
		t.Errorf("leaf = %+v, want app.vue", leaf)
	}
}

func TestResolve_InvalidFirstPresetPromptsEveryLevel(t *testing.T) {
	specs := loadSpecs(t, twoLevelDoc)
	// The second preset token ("cobra") would be valid at depth 1, but
	// once the first token misses, no preset may be reused.
	scripted := &prompt.Scripted{Choices: []string{"web", "react"}}

	leaf, err := Resolve(specs, []string{"desktop", "cobra"}, nil, scripted)
	if err != nil {
		t.Fatal(err)
	}
	if scripted.ChoicesAsked != 2 {
		t.Errorf("asked %d prompts, want 2", scripted.ChoicesAsked)
	}
	if len(leaf) != 1 || leaf[0].Path != "app.jsx" {
		t.Errorf("leaf = %+v, want app.jsx", leaf)
	}
}

func TestResolve_ExhaustedPresetsFallBackToPrompting(t *testing.T) {
	specs := loadSpecs(t, twoLevelDoc)
	scripted := &prompt.Scripted{Choices: []string{"cobra"}}

	leaf, err := Resolve(specs, []string{"cli"}, nil, scripted)
	if err != nil {
		t.Fatal(err)
	}
	if scripted.ChoicesAsked != 1 {
		t.Errorf("asked %d prompts, want 1", scripted.ChoicesAsked)
	}
	if len(leaf) != 1 || leaf[0].Path != "main.go" {
		t.Errorf("leaf = %+v, want main.go", leaf)
	}
}

func TestResolve_SurplusPresetsIgnored(t *testing.T) {
	specs := loadSpecs(t, twoLevelDoc)
	scripted := &prompt.Scripted{}

	leaf, err := Resolve(specs, []string{"web", "react", "extra", "tokens"}, nil, scripted)
	if err != nil {
		t.Fatal(err)
	}
	if scripted.ChoicesAsked != 0 {
		t.Errorf("asked %d prompts, want 0", scripted.ChoicesAsked)
	}
	if leaf[0].Path != "app.jsx" {
		t.Errorf("leaf = %+v, want app.jsx", leaf)
	}
}

func TestResolve_LeafAtRoot(t *testing.T) {
	specs := loadSpecs(t, "recipes:\n  specs: [a.txt, b.txt]\n")
	scripted := &prompt.Scripted{}

	leaf, err := Resolve(specs, nil, nil, scripted)
	if err != nil {
		t.Fatal(err)
	}
	if scripted.ChoicesAsked != 0 {
		t.Errorf("asked %d prompts, want 0", scripted.ChoicesAsked)
	}
	if len(leaf) != 2 {
		t.Errorf("leaf = %+v, want 2 specs", leaf)
	}
}

func TestResolve_RejectsInvalidProviderAnswer(t *testing.T) {
	specs := loadSpecs(t, twoLevelDoc)
	scripted := &prompt.Scripted{Choices: []string{"nonsense"}}

	if _, err := Resolve(specs, nil, nil, scripted); err == nil {
		t.Fatal("expected error for out-of-set provider answer")
	}
}

func TestResolve_PromptMessages(t *testing.T) {
	prompts := []schema.Prompt{{Message: "Pick a platform"}}
	if got := promptMessage(prompts, 0); got != "Pick a platform" {
		t.Errorf("depth 0 message = %q", got)
	}
	if got := promptMessage(prompts, 1); got != "Select an option" {
		t.Errorf("depth 1 fallback = %q", got)
	}
}
