package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ormasoftchile/unbox/pkg/fetch"
	"github.com/ormasoftchile/unbox/pkg/fsops"
	"github.com/ormasoftchile/unbox/pkg/prompt"
	"github.com/ormasoftchile/unbox/pkg/recipe"
	"github.com/ormasoftchile/unbox/pkg/schema"
	"github.com/ormasoftchile/unbox/pkg/tui"
	"github.com/spf13/cobra"
)

// options carries one unbox invocation, decoupled from flag parsing so
// tests can drive the pipeline with a scripted prompt provider.
type options struct {
	source     string
	dest       string
	force      bool
	presets    []string
	keepConfig bool
	quiet      bool
}

func runUnbox(cmd *cobra.Command, args []string) error {
	opts := options{
		source:     args[0],
		dest:       ".",
		force:      flagForce,
		presets:    splitOptions(flagOptions),
		keepConfig: flagKeepConfig,
		quiet:      flagQuiet,
	}
	if len(args) > 1 {
		opts.dest = args[1]
	}

	interactive, err := prompt.NewInteractive()
	if err != nil {
		return err
	}
	defer interactive.Close()

	var provider prompt.Provider = interactive
	if flagPicker {
		provider = &tui.Picker{Confirm: interactive}
	}
	return unbox(opts, provider, cmd.OutOrStdout())
}

// unbox runs the pipeline: fetch the box into a temp dir, strip its
// metadata, merge it into the destination, then reconcile the
// destination against the resolved recipe variant. Each phase fully
// completes before the next; a failure leaves the destination in the
// state the last completed phase produced.
func unbox(opts options, provider prompt.Provider, out io.Writer) error {
	tmpDir, err := os.MkdirTemp("", "unbox-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	fmt.Fprintf(out, "Fetching %s\n", opts.source)
	if err := fetch.Fetch(opts.source, tmpDir); err != nil {
		return err
	}

	cfg, err := schema.LoadDir(tmpDir)
	if err != nil {
		return err
	}
	if err := stripMetadata(tmpDir, cfg, opts.keepConfig); err != nil {
		return err
	}

	confirm := func(name string) (bool, error) {
		return provider.AskConfirm(fmt.Sprintf("Overwrite %s?", name))
	}
	if err := fsops.Merge(tmpDir, opts.dest, opts.force, confirm); err != nil {
		return err
	}

	if cfg.HasRecipe() {
		leaf, err := recipe.Resolve(cfg.Recipes.Specs, opts.presets, cfg.Recipes.Prompts, provider)
		if err != nil {
			return err
		}
		manifest := recipe.Build(leaf, cfg.Recipes.Common)
		if opts.keepConfig {
			// The preserved config is not part of any variant; without
			// this it would be pruned right after the merge placed it.
			manifest.Retain(schema.ConfigFileName)
		}
		if err := fsops.Reconcile(opts.dest, manifest); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Unboxed %s into %s\n", opts.source, opts.dest)
	if cfg != nil && cfg.Message != "" && !opts.quiet {
		printMessage(out, cfg.Message)
	}
	return nil
}

// stripMetadata removes the box config file and every ignore entry
// from the unpacked box before the merge sees it. Ignore paths were
// cleaned and containment-checked at load time.
func stripMetadata(tmpDir string, cfg *schema.Config, keepConfig bool) error {
	if !keepConfig {
		err := os.Remove(filepath.Join(tmpDir, schema.ConfigFileName))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove box config: %w", err)
		}
	}
	if cfg == nil {
		return nil
	}
	for _, rel := range cfg.Ignore {
		if err := os.RemoveAll(filepath.Join(tmpDir, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("remove ignored path %s: %w", rel, err)
		}
	}
	return nil
}

// splitOptions splits the --options string into preset choice tokens.
func splitOptions(s string) []string {
	var presets []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			presets = append(presets, tok)
		}
	}
	return presets
}

// printMessage renders the box's post-unbox markdown, falling back to
// the raw text when the terminal renderer fails.
func printMessage(out io.Writer, message string) {
	rendered, err := glamour.Render(message, "auto")
	if err != nil {
		fmt.Fprintln(out, message)
		return
	}
	fmt.Fprint(out, rendered)
}
