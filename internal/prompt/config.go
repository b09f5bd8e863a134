package prompt

// PitchVariable is the placeholder every prompt body carries for the pitch.
const PitchVariable = "user_input_pitch"

// Config describes a prompt definition loaded from Markdown frontmatter.
type Config struct {
	Slug        string    `yaml:"slug" json:"slug"`
	Name        string    `yaml:"name,omitempty" json:"name,omitempty"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string    `yaml:"version,omitempty" json:"version,omitempty"`
	Mode        string    `yaml:"mode" json:"mode"`
	Input       InputSpec `yaml:"input,omitempty" json:"input,omitempty"`
	Template    string    `yaml:"template,omitempty" json:"template,omitempty"`
}

// InputSpec defines prompt input requirements.
type InputSpec struct {
	RequiredVariables []string `yaml:"required_variables,omitempty" json:"required_variables,omitempty"`
	MaxPitchLength    int      `yaml:"max_pitch_length,omitempty" json:"max_pitch_length,omitempty"`
}

// Prompt wraps a validated prompt configuration with its source.
type Prompt struct {
	Config Config
	Source string
}
