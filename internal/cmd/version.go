package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/output"
	"github.com/pitchslap/pitchslap/internal/server/handlers"
)

var extended bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version information. Use --extended for modes, build, Go and library versions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		info := handlers.CurrentVersion()

		out, structured, err := output.Structured(format, info)
		if err != nil {
			return err
		}
		if structured {
			return emit(cmd, out)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", info.App.Name, info.App.Version)
		if extended {
			modes := make([]string, 0, len(info.Engine.Modes))
			for _, m := range info.Engine.Modes {
				modes = append(modes, string(m))
			}
			fmt.Fprintf(&b, "Commit: %s\n", info.App.Commit)
			fmt.Fprintf(&b, "Built: %s\n", info.App.BuildDate)
			fmt.Fprintf(&b, "Go: %s (%s)\n\n", info.App.GoVersion, info.Runtime.Platform)
			fmt.Fprintf(&b, "Modes: %s\n", strings.Join(modes, ", "))
			fmt.Fprintf(&b, "Voices: %s\n\n", strings.Join(info.Engine.Voices, ", "))
			fmt.Fprintf(&b, "Gofulmen: %s\n", info.Dependencies.Gofulmen)
			fmt.Fprintf(&b, "Crucible: %s\n", info.Dependencies.Crucible)
		}
		return emit(cmd, b.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	addOutputFlags(versionCmd)
	versionCmd.Flags().BoolVarP(&extended, "extended", "e", false, "show extended version information")
}
