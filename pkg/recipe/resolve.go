// Package recipe resolves a box's decision tree to a single variant
// and derives the exact file manifest that variant requires.
package recipe

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/unbox/pkg/prompt"
	"github.com/ormasoftchile/unbox/pkg/schema"
)

// Resolve walks the recipe tree to a leaf. Preset choices are consumed
// in depth order while each one names a valid choice at its level; the
// first missing or invalid preset switches the walk to prompting for
// every remaining level, so a later valid-looking token is never
// reused out of order. Surplus presets beyond the tree's depth are
// ignored.
func Resolve(scope *schema.Scope, presets []string, prompts []schema.Prompt, provider prompt.Provider) ([]schema.FileSpec, error) {
	cur := scope
	usingPresets := true

	for depth := 0; !cur.IsLeaf; depth++ {
		choices := cur.Order
		if len(choices) == 0 {
			return nil, fmt.Errorf("recipe branch at depth %d has no choices", depth)
		}

		var selected string
		if usingPresets && depth < len(presets) && cur.Choices[presets[depth]] != nil {
			selected = presets[depth]
		} else {
			usingPresets = false
			answer, err := provider.AskChoice(promptMessage(prompts, depth), choices)
			if err != nil {
				return nil, err
			}
			if cur.Choices[answer] == nil {
				return nil, fmt.Errorf("choice %q is not one of: %s", answer, strings.Join(choices, ", "))
			}
			selected = answer
		}
		cur = cur.Choices[selected]
	}
	return cur.Files, nil
}

// promptMessage picks the configured question for a tree depth,
// falling back to a generic one when the recipe declares fewer prompts
// than the tree is deep.
func promptMessage(prompts []schema.Prompt, depth int) string {
	if depth < len(prompts) && prompts[depth].Message != "" {
		return prompts[depth].Message
	}
	return "Select an option"
}
