// Package seed loads the sample contacts and quick replies the server starts with.
package seed

import (
	_ "embed"
	"os"

	"quickreach/internal/store"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type QuickReply struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

type Seed struct {
	Contacts     []string     `yaml:"contacts"`
	QuickReplies []QuickReply `yaml:"quickreplies"`
}

// Load reads the seed at path, or the built-in one when path is empty.
func Load(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read seed file %s", path)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "failed to parse seed")
	}
	return &s, nil
}

// Apply adds the seed to state. Contacts go through the same checks as a bulk import.
func (s *Seed) Apply(state *store.State) error {
	if _, err := state.Contacts.BulkAdd(s.Contacts); err != nil {
		return errors.Wrap(err, "failed to seed contacts")
	}
	for _, qr := range s.QuickReplies {
		if _, err := state.QuickReplies.Create(qr.Name, qr.Text); err != nil {
			return errors.Wrapf(err, "failed to seed quick reply %q", qr.Name)
		}
	}
	return nil
}
