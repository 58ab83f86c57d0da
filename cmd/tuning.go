package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ouaf/widgets/asset"
	"github.com/ouaf/widgets/config"
	"github.com/ouaf/widgets/pkg/crop"
	"github.com/ouaf/widgets/pkg/spin"
	"github.com/ouaf/widgets/util/log"
	"gopkg.in/yaml.v3"
)

// Tuning is the content of a tuning file.
type Tuning struct {
	Crop crop.Tuning  `yaml:"crop"`
	Spin spin.Options `yaml:"spin"`
}

// LoadTuning reads the built-in tuning and overlays the file at path. An empty
// path falls back to the WIDGETS_TUNING environment variable; with neither set
// the built-in values are returned. Keys missing from the file keep their
// built-in value.
func LoadTuning(path string) (Tuning, error) {
	t := Tuning{Crop: crop.DefaultTuning(), Spin: spin.DefaultOptions()}

	raw, err := asset.NewManager().GetRawText(asset.DefaultTuning)
	if err != nil {
		return t, fmt.Errorf("loading built-in tuning: %w", err)
	}
	if err := decodeTuning(raw, &t); err != nil {
		return t, fmt.Errorf("parsing built-in tuning: %w", err)
	}

	if path == "" {
		path = os.Getenv(config.TuningEnvVar)
	}
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := decodeTuning(data, &t); err != nil {
		return t, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	log.Debugf("tuning: loaded %s", path)
	return t, nil
}

func decodeTuning(data []byte, t *Tuning) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil {
		// An empty document leaves everything as it was.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
