package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/bank.yaml data/bank.schema.json
var dataFS embed.FS

// DefaultMaxLevel is the number of planets on the map.
const DefaultMaxLevel = 20

// Bank is the serialised content pack: every word, grammar exercise and
// briefing the game can serve.
type Bank struct {
	Version     string                         `yaml:"version" json:"version"`
	MaxLevel    int                            `yaml:"max_level,omitempty" json:"max_level,omitempty"`
	Words       []Word                         `yaml:"words" json:"words"`
	Grammar     []GrammarExercise              `yaml:"grammar" json:"grammar"`
	Briefings   map[Language]map[int]LevelInfo `yaml:"briefings,omitempty" json:"briefings,omitempty"`
	VocabTitles map[int]Localized              `yaml:"vocab_titles,omitempty" json:"vocab_titles,omitempty"`
}

// Levels returns the configured map size, defaulting to DefaultMaxLevel.
func (b *Bank) Levels() int {
	if b.MaxLevel > 0 {
		return b.MaxLevel
	}
	return DefaultMaxLevel
}

// DefaultBank returns the content pack compiled into the binary.
func DefaultBank() (*Bank, error) {
	data, err := dataFS.ReadFile("data/bank.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded bank: %w", err)
	}
	return ParseBank(data)
}

// LoadBank reads and validates a content pack from path.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank %s: %w", path, err)
	}
	b, err := ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ParseBank decodes YAML, checks it against the bank schema and runs the
// semantic checks in Validate.
func ParseBank(data []byte) (*Bank, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var b Bank
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty content bank")
		}
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// EncodeYAML writes b as YAML with two-space indentation.
func (b *Bank) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	return enc.Close()
}
