package output

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

// YAMLFormatter renders results as YAML using the JSON field names.
type YAMLFormatter struct{}

func (f *YAMLFormatter) FormatResponse(resp pitch.Response) (string, error) {
	return toYAML(resp)
}

func (f *YAMLFormatter) FormatDomains(results []domains.Result) (string, error) {
	return toYAML(results)
}

func (f *YAMLFormatter) FormatLeaderboard(profiles []gamify.Profile) (string, error) {
	return toYAML(profiles)
}

// toYAML round-trips through JSON so keys and omitempty follow the json tags.
func toYAML(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return "", err
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}
