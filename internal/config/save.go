package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned by WriteDefault when the target file is already there.
var ErrExists = errors.New("config file already exists")

// WriteDefault writes the default configuration, with comments, to path.
func WriteDefault(path string) error {
	if fileExists(path) {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}

	data, err := Render(NewConfig())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Render encodes c as a commented YAML document that Load can read back.
func Render(c *Config) ([]byte, error) {
	doc := &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{
			mapping(
				field("tracking", "", mapping(
					field("dwell_threshold", "How long the pointer must rest before the spot can be saved", scalar(c.Tracking.DwellThreshold.String())),
					field("sample_interval", "How often the pointer location is polled", scalar(c.Tracking.SampleInterval.String())),
				)),
				field("logging", "", mapping(
					field("level", "debug, info, warn or error", scalar(c.Logging.Level)),
					field("format", "text or json", scalar(c.Logging.Format)),
				)),
			),
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

func mapping(fields ...[]*yaml.Node) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		n.Content = append(n.Content, f...)
	}
	return n
}

func field(key, comment string, value *yaml.Node) []*yaml.Node {
	return []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: key, HeadComment: comment},
		value,
	}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}
