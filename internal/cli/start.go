package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/borrowdev/borrow/internal/app"
)

func newStartCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Create projects from templates",
		Long: `Create projects from templates and manage the template cache.

Template references:
  local:<path>        a template directory on this machine
  <name>[@<branch>]   a template in the borrow registry (branch defaults to v1)`,
	}

	cmd.AddCommand(newNewCmd(st))
	cmd.AddCommand(newDelCmd(st))
	cmd.AddCommand(newListCmd(st))
	cmd.AddCommand(newCheckCmd(st))

	return cmd
}

type newOptions struct {
	template  string
	targetDir string
	vars      []string
	varsFile  string
	yes       bool
	force     bool
	dryRun    bool
}

func newNewCmd(st *rootState) *cobra.Command {
	o := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a project from a template",
		Long: `Fetch a template into the cache, collect placeholder values and write
the project to <target-dir>/<template-name>.

Existing files are left untouched unless --force is given.

Examples:
  borrow start new --template react --target-dir .
  borrow start new --template react@main --target-dir ./apps
  borrow start new --template local:./my-template --target-dir . --var NAME=demo
  borrow start new --template react --target-dir . --vars-file values.yaml --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, st, o)
		},
	}

	cmd.Flags().StringVarP(&o.template, FlagTemplate, "t", "", DescTemplate)
	cmd.Flags().StringVar(&o.targetDir, FlagTargetDir, "", DescTargetDir)
	cmd.Flags().StringArrayVar(&o.vars, FlagVar, nil, DescVar)
	cmd.Flags().StringVar(&o.varsFile, FlagVarsFile, "", DescVarsFile)
	cmd.Flags().BoolVarP(&o.yes, FlagYes, "y", false, DescYes)
	cmd.Flags().BoolVarP(&o.force, FlagForce, "f", false, DescForce)
	cmd.Flags().BoolVarP(&o.dryRun, FlagDryRun, "d", false, DescDryRun)
	_ = cmd.MarkFlagRequired(FlagTemplate)
	_ = cmd.MarkFlagRequired(FlagTargetDir)

	return cmd
}

func runNew(cmd *cobra.Command, st *rootState, o *newOptions) error {
	if o.dryRun {
		printInfo("[DRY RUN] Would create project from template")
	}
	printProgress(fmt.Sprintf("Template: %s", o.template))
	if o.force {
		printWarning("Force mode enabled - existing files will be replaced")
	}

	interactive := shouldPrompt(o.yes, st.cfg)
	var prompter app.Prompter = app.NoPrompter{}
	if interactive {
		prompter = NewSurveyPrompter()
	}

	result, err := app.New(cmd.Context(), app.NewOptions{
		Reference:   o.template,
		TargetDir:   o.targetDir,
		DataDir:     st.cfg.DataDir,
		Prompter:    prompter,
		Interactive: interactive,
		Vars:        o.vars,
		VarsFile:    o.varsFile,
		Overwrite:   o.force,
		DryRun:      o.dryRun,
		GitHubToken: getGitHubToken(st.cfg),
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Failed to create project: %v", err))
		return err
	}

	printNewResult(result, o.dryRun)
	return nil
}

func printNewResult(result *app.NewResult, dryRun bool) {
	if result.Fetch != nil {
		if result.Fetch.Reused {
			printProgress("Using existing clone of " + result.Spec.String())
		}
		if sync := result.Fetch.Sync; sync != nil && sync.HasErrors() {
			printWarning(fmt.Sprintf("%d entries could not be cached:", len(sync.Errors)))
			for _, e := range sync.Errors {
				printWarning(fmt.Sprintf("  - %v", e))
			}
		}
	}

	install := result.Install

	if dryRun {
		printInfo("")
		printInfo("[DRY RUN] Files to create:")
		for _, f := range install.Files {
			printInfo(fmt.Sprintf("  - %s (%s)", f.Path, f.Action))
		}
		printInfo("")
		printInfo("No files written (dry run).")
		return
	}

	if install.HasErrors() {
		printWarning("Project created with errors")
	} else {
		printSuccess("Project created successfully")
	}
	printHeader("Summary")
	printInfo(fmt.Sprintf("  Rendered: %d files", install.FilesRendered))
	printInfo(fmt.Sprintf("  Copied:   %d files", install.FilesCopied))
	if install.FilesSkipped > 0 {
		printInfo(fmt.Sprintf("  Skipped:  %d files (already exist, use --force to replace)", install.FilesSkipped))
	}
	if install.FilesOverwritten > 0 {
		printInfo(fmt.Sprintf("  Overwritten: %d files", install.FilesOverwritten))
	}
	printSeparator()

	if len(install.Unresolved) > 0 {
		printWarning("Unresolved placeholders left in output: " + strings.Join(install.Unresolved, ", "))
	}

	// Per-file failures do not fail the command
	if install.HasErrors() {
		printWarning(fmt.Sprintf("%d errors occurred during generation:", len(install.Errors)))
		for _, e := range install.Errors {
			printWarning(fmt.Sprintf("  - %v", e))
		}
	}

	printInfo(fmt.Sprintf("Project ready at: %s", install.OutputDir))
}

func newDelCmd(st *rootState) *cobra.Command {
	var reference string

	cmd := &cobra.Command{
		Use:   "del",
		Short: "Delete a template from the cache",
		Long: `Delete the cached copy of a template. For registry templates the git
clone is removed as well, so the next "start new" fetches it again.

Examples:
  borrow start del --template react
  borrow start del --template local:./my-template`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Delete(app.DeleteOptions{
				Reference: reference,
				DataDir:   st.cfg.DataDir,
			})
			if err != nil {
				printErrorMsg(fmt.Sprintf("Failed to delete template: %v", err))
				return err
			}

			if result.NotFound {
				printNotice(fmt.Sprintf("Template %q is not cached", result.Spec.SpecName()))
				if len(result.Suggestions) > 0 {
					printNotice("Did you mean: " + strings.Join(result.Suggestions, ", "))
				}
				return nil
			}

			for _, dir := range result.Removed {
				printProgress("Removed " + dir)
			}
			printSuccess(fmt.Sprintf("Deleted template %s", result.Spec.SpecName()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&reference, FlagTemplate, "t", "", DescTemplate)
	_ = cmd.MarkFlagRequired(FlagTemplate)

	return cmd
}

func newListCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.List(st.cfg.DataDir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No templates cached")
				return nil
			}

			ts := table.NewWriter()
			ts.SetOutputMirror(stdout)
			ts.AppendHeader(table.Row{"NAME", "SOURCE", "PATH"})
			for _, e := range entries {
				source := "local"
				if e.HasGitCache {
					source = "registry"
				}
				ts.AppendRow(table.Row{e.Name, source, e.Path})
			}
			ts.Style().Options.DrawBorder = false
			ts.Style().Options.SeparateColumns = false
			ts.Style().Options.SeparateHeader = false
			ts.SetColumnConfigs([]table.ColumnConfig{
				{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
				{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
				{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
			})
			ts.Render()
			return nil
		},
	}
}

func newCheckCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "check <template-dir>",
		Short: "Check a template's placeholders against its content",
		Long: `Report tokens used in .template files that have no definition in
placeholders.borrow, and definitions that no .template file uses.

Examples:
  borrow start check ./my-template`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.CheckTemplate(cmd.Context(), app.CheckTemplateOptions{Path: args[0]})
			if err != nil {
				printErrorMsg(fmt.Sprintf("Check failed: %v", err))
				return err
			}

			printInfo(fmt.Sprintf("Checked %d template files, %d placeholders defined",
				result.FilesChecked, len(result.Catalog)))

			for _, u := range result.Undefined {
				printWarning(fmt.Sprintf("%s:%d: undefined placeholder %s", u.File, u.Line, u.Key))
			}
			for _, key := range result.Unused {
				printWarning(fmt.Sprintf("placeholder %s is never used", key))
			}

			if !result.OK() {
				return fmt.Errorf("template has %d undefined and %d unused placeholders",
					len(result.Undefined), len(result.Unused))
			}
			printSuccess("Template is consistent")
			return nil
		},
	}
}
