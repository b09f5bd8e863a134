package prompt

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses and validates a prompt definition from Markdown with YAML
// frontmatter. The body becomes the template when frontmatter omits one.
func Load(source string, data []byte) (*Prompt, error) {
	config, body, err := parseFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %s: %w", source, err)
	}

	if strings.TrimSpace(config.Template) == "" {
		config.Template = strings.TrimSpace(body)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validate prompt %s: %w", source, err)
	}

	return &Prompt{Config: config, Source: source}, nil
}

// LoadFromDir reads all prompt files (.md with YAML frontmatter) from a directory.
func LoadFromDir(dir string) ([]*Prompt, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("scan prompts: %w", err)
	}
	results := make([]*Prompt, 0, len(entries))
	for _, path := range entries {
		data, err := os.ReadFile(path) // #nosec G304 -- prompt dir is operator-provided
		if err != nil {
			return nil, fmt.Errorf("read prompt %s: %w", path, err)
		}
		p, err := Load(path, data)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, nil
}

func parseFrontmatter(data []byte) (Config, string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Config{}, "", fmt.Errorf("empty prompt")
	}

	lines := bufio.NewScanner(bytes.NewReader(trimmed))
	lines.Split(bufio.ScanLines)

	var (
		frontmatter []string
		body        []string
		inFront     bool
		headerSeen  bool
	)

	for lines.Scan() {
		line := lines.Text()
		switch {
		case !headerSeen && strings.TrimSpace(line) == "---":
			headerSeen = true
			inFront = true
		case headerSeen && inFront && strings.TrimSpace(line) == "---":
			inFront = false
		default:
			if inFront {
				frontmatter = append(frontmatter, line)
			} else {
				body = append(body, line)
			}
		}
	}
	if err := lines.Err(); err != nil {
		return Config{}, "", err
	}
	if !headerSeen {
		return Config{}, "", fmt.Errorf("missing frontmatter")
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(strings.Join(frontmatter, "\n")), &cfg); err != nil {
		return Config{}, "", fmt.Errorf("invalid frontmatter: %w", err)
	}

	return cfg, strings.Join(body, "\n"), nil
}

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if strings.TrimSpace(cfg.Mode) == "" {
		return fmt.Errorf("mode is required")
	}
	if strings.TrimSpace(cfg.Template) == "" {
		return fmt.Errorf("template is empty")
	}
	for _, v := range cfg.Input.RequiredVariables {
		if !strings.Contains(cfg.Template, placeholder(v)) {
			return fmt.Errorf("template missing required variable %q", v)
		}
	}
	return nil
}

func placeholder(name string) string {
	return "{{" + name + "}}"
}
