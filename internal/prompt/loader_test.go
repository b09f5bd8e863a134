package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	prompts, err := LoadDefaults()
	require.NoError(t, err)
	require.Len(t, prompts, 5)

	reg, err := NewRegistry(prompts)
	require.NoError(t, err)

	for _, mode := range []string{"roast", "fixit", "scorecard", "branding", "meme"} {
		p, err := reg.ForMode(mode)
		require.NoError(t, err, mode)
		require.Contains(t, p.Config.Template, "{{user_input_pitch}}")
	}
}

func TestRenderAndExtractRoundTrip(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	pitch := "Uber for dog walking with GPS tracking for anxious owners."
	for _, p := range reg.List() {
		rendered := p.Render(pitch)
		require.Equal(t, pitch, ExtractPitch(rendered), p.Config.Slug)
	}
}

func TestExtractPitchWithoutSection(t *testing.T) {
	require.Empty(t, ExtractPitch("just some text"))
	require.Empty(t, ExtractPitch("Startup Pitch:\n\nResponse format:\nnothing"))
}

func TestLoadRejectsMissingVariable(t *testing.T) {
	data := []byte("---\nslug: broken\nmode: roast\ninput:\n  required_variables: [user_input_pitch]\n---\nNo placeholder here.\n")
	_, err := Load("broken.md", data)
	require.Error(t, err)
	require.Contains(t, err.Error(), "user_input_pitch")
}

func TestLoadRequiresFrontmatter(t *testing.T) {
	_, err := Load("bare.md", []byte("hello"))
	require.Error(t, err)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	p := &Prompt{Config: Config{Slug: "roast", Mode: "roast", Template: "x"}}
	_, err := NewRegistry([]*Prompt{p, p})
	require.Error(t, err)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	content := "---\nslug: custom\nmode: roast\n---\nRoast this.\n\nStartup Pitch:\n{{user_input_pitch}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.md"), []byte(content), 0o600))

	prompts, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	require.Equal(t, "custom", prompts[0].Config.Slug)
	require.Equal(t, "a pitch", ExtractPitch(prompts[0].Render("a pitch")))
}
