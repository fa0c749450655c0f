package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact kinds. A linear artifact scores with weights and produces a real
// probability; a stump artifact only emits a hard label.
const (
	KindLinear = "linear"
	KindStump  = "stump"
)

// Artifact is the serialized form of the pre-trained fraud model. It is
// produced by the offline training pipeline and loaded once at startup.
type Artifact struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Features []string `json:"features"`

	// Linear scorer.
	Weights   map[string]float64 `json:"weights,omitempty"`
	Intercept float64            `json:"intercept,omitempty"`

	// Stump scorer: label fraudulent when the named feature crosses the cutoff.
	StumpFeature string  `json:"stump_feature,omitempty"`
	StumpCutoff  float64 `json:"stump_cutoff,omitempty"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact Artifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if err := artifact.validate(); err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (a *Artifact) validate() error {
	if len(a.Features) == 0 {
		return fmt.Errorf("model artifact declares no features")
	}
	switch a.Kind {
	case KindLinear:
		if len(a.Weights) == 0 {
			return fmt.Errorf("linear artifact has no weights")
		}
	case KindStump:
		if a.StumpFeature == "" {
			return fmt.Errorf("stump artifact names no feature")
		}
	default:
		return fmt.Errorf("unknown artifact kind %q", a.Kind)
	}
	return nil
}
