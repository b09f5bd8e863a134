package cmd

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/output"
	"github.com/pitchslap/pitchslap/internal/speech"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Prepare roast text for a speech synthesizer",
	Long: `Clean generated text for text-to-speech and apply a voice personality.

The result carries the spoken text plus rate, pitch and voice hints for a
client-side synthesizer. Use --list-voices to see the personalities.`,
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)
	addOutputFlags(speakCmd)
	speakCmd.Flags().StringP("file", "f", "", "Read the text from a file (- for stdin)")
	speakCmd.Flags().String("voice", speech.SavageVC, "Voice personality")
	speakCmd.Flags().Float64("speed", 1, "Speed multiplier")
	speakCmd.Flags().Float64("pitch", 1, "Pitch multiplier")
	speakCmd.Flags().Bool("list-voices", false, "List the voice personalities")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list-voices"); list {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"ID", "Name", "Rate", "Pitch", "Description"})
		for _, p := range speech.Personalities() {
			t.AppendRow(table.Row{p.ID, p.Name, p.Rate, p.Pitch, p.Description})
		}
		return emit(cmd, t.Render())
	}

	text, err := readPitch(cmd, args, 0)
	if err != nil {
		return err
	}
	voice, _ := cmd.Flags().GetString("voice")
	speed, _ := cmd.Flags().GetFloat64("speed")
	pitch, _ := cmd.Flags().GetFloat64("pitch")

	u, err := speech.Prepare(text, voice, speed, pitch)
	if err != nil {
		return err
	}
	if u.Text == "" {
		return errors.New("nothing left to speak after cleaning")
	}

	out, structured, err := output.Structured(format, u)
	if err != nil {
		return err
	}
	if structured {
		return emit(cmd, out)
	}
	return emit(cmd, fmt.Sprintf("%s\n\n(voice %s, rate %.2f, pitch %.2f)", u.Text, u.Voice, u.Rate, u.Pitch))
}
