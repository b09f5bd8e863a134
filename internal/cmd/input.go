package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/prompt"
)

// addPitchInputFlags registers the flags readPitch understands.
func addPitchInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Read the pitch from a file (- for stdin)")
	cmd.Flags().Bool("from-prompt", false, "Input is a rendered prompt; extract the pitch from it")
}

// readPitch resolves the pitch from positional args or --file and enforces
// the rune limit when maxLen is positive.
func readPitch(cmd *cobra.Command, args []string, maxLen int) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	fromPrompt, _ := cmd.Flags().GetBool("from-prompt")

	var text string
	switch {
	case strings.TrimSpace(file) != "" && len(args) > 0:
		return "", errors.New("cannot combine a positional pitch with --file")
	case strings.TrimSpace(file) != "":
		content, err := readInput(cmd, strings.TrimSpace(file))
		if err != nil {
			return "", err
		}
		text = content
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		return "", errors.New("a pitch is required: pass it as an argument or with --file")
	}

	if fromPrompt {
		text = prompt.ExtractPitch(text)
	}
	if n := utf8.RuneCountInString(text); maxLen > 0 && n > maxLen {
		return "", fmt.Errorf("pitch is %d characters, the limit is %d", n, maxLen)
	}
	return text, nil
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer file.Close() // nolint:errcheck
		reader = file
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read pitch: %w", err)
	}
	return string(data), nil
}

// readPitchLines reads one pitch per line, skipping blanks and # comments.
func readPitchLines(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close() // nolint:errcheck
		reader = file
	}

	pitches := make([]string, 0)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		pitches = append(pitches, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pitches) == 0 {
		return nil, errors.New("no pitches found")
	}
	return pitches, nil
}
