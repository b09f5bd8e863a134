package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Work with the LLM prompt templates for each mode",
}

var promptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := promptRegistry(cmd)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Slug", "Mode", "Description"})
		for _, p := range registry.List() {
			t.AppendRow(table.Row{p.Config.Slug, p.Config.Mode, p.Config.Description})
		}
		return emit(cmd, t.Render())
	},
}

var promptRenderCmd = &cobra.Command{
	Use:   "render <mode|slug> <pitch>",
	Short: "Fill a prompt template with a pitch",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := promptRegistry(cmd)
		if err != nil {
			return err
		}
		p, err := findPrompt(registry, args[0])
		if err != nil {
			return err
		}
		text, err := readPitch(cmd, args[1:], 0)
		if err != nil {
			return err
		}
		return emit(cmd, p.Render(text))
	},
}

var promptExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Pull the pitch back out of a rendered prompt",
	Long:  "Read a rendered prompt from --file (or - for stdin) or the arguments and print the pitch it carries.",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readPitch(cmd, args, 0)
		if err != nil {
			return err
		}
		pitch := prompt.ExtractPitch(text)
		if strings.TrimSpace(pitch) == "" {
			return errors.New("no pitch found in prompt")
		}
		return emit(cmd, pitch)
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.PersistentFlags().String("prompts-dir", "", "Load templates from this directory instead of the built-ins")

	promptCmd.AddCommand(promptListCmd)
	promptCmd.AddCommand(promptRenderCmd)
	promptCmd.AddCommand(promptExtractCmd)

	for _, c := range []*cobra.Command{promptListCmd, promptRenderCmd, promptExtractCmd} {
		c.Flags().String("out", "", "Write output to a file instead of stdout")
	}
	promptRenderCmd.Flags().StringP("file", "f", "", "Read the pitch from a file (- for stdin)")
	promptExtractCmd.Flags().StringP("file", "f", "", "Read the prompt from a file (- for stdin)")
}

func promptRegistry(cmd *cobra.Command) (prompt.Registry, error) {
	dir, _ := cmd.Flags().GetString("prompts-dir")
	return loadPrompts(strings.TrimSpace(dir))
}

// findPrompt accepts either a slug or a mode name.
func findPrompt(registry prompt.Registry, key string) (*prompt.Prompt, error) {
	if p, err := registry.Get(key); err == nil {
		return p, nil
	}
	p, err := registry.ForMode(key)
	if err != nil {
		return nil, fmt.Errorf("no prompt for %q", key)
	}
	return p, nil
}
