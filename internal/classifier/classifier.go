package classifier

import (
	"math"

	"go.uber.org/zap"

	"github.com/subsidyhub/backend/domain"
)

// Classification labels.
const (
	LabelFraudulent = "Fraudulent"
	LabelLegitimate = "Legitimate"
)

// fallbackProbability is reported for artifacts that only emit a hard label.
const fallbackProbability = 0.75

// Result is the outcome of a single classification.
type Result struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

func (r Result) IsFraud() bool {
	return r.Label == LabelFraudulent
}

// Classifier wraps the loaded model artifact behind a stable interface so
// callers stay insulated from its internal representation. A Classifier with
// no artifact is degraded: it starts, but every Classify call reports
// ErrModelUnavailable.
type Classifier struct {
	artifact *Artifact
	logger   *zap.Logger
}

// New loads the artifact at path. A load failure is not fatal: the returned
// classifier is degraded and the condition is surfaced per call instead.
func New(path string, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	artifact, err := LoadArtifact(path)
	if err != nil {
		logger.Warn("fraud model not loaded, running degraded",
			zap.String("path", path), zap.Error(err))
		return &Classifier{logger: logger}
	}

	logger.Info("fraud model loaded",
		zap.String("name", artifact.Name),
		zap.String("kind", artifact.Kind),
		zap.Int("features", len(artifact.Features)))
	return &Classifier{artifact: artifact, logger: logger}
}

// NewFromArtifact wraps an already-parsed artifact. Used by tests and by the
// standalone predictor when the artifact is provided inline.
func NewFromArtifact(artifact *Artifact, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{artifact: artifact, logger: logger}
}

// Ready reports whether a model artifact is loaded.
func (c *Classifier) Ready() bool {
	return c != nil && c.artifact != nil
}

// Classify scores one feature vector. Deterministic for a fixed artifact and
// input; requires every column the artifact declares.
func (c *Classifier) Classify(features domain.FeatureVector) (Result, error) {
	if !c.Ready() {
		return Result{}, domain.ErrModelUnavailable
	}

	var missing []string
	for _, name := range c.artifact.Features {
		if _, ok := features[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Result{}, domain.NewValidationError(missing)
	}

	switch c.artifact.Kind {
	case KindLinear:
		return c.classifyLinear(features), nil
	default:
		return c.classifyStump(features), nil
	}
}

func (c *Classifier) classifyLinear(features domain.FeatureVector) Result {
	// Accumulate in declared column order; map iteration order would make
	// the floating-point sum unstable across calls.
	score := c.artifact.Intercept
	for _, name := range c.artifact.Features {
		score += c.artifact.Weights[name] * features[name]
	}
	probability := sigmoid(score)

	label := LabelLegitimate
	if probability >= 0.5 {
		label = LabelFraudulent
	}
	return Result{Label: label, Probability: probability}
}

func (c *Classifier) classifyStump(features domain.FeatureVector) Result {
	label := LabelLegitimate
	if features[c.artifact.StumpFeature] >= c.artifact.StumpCutoff {
		label = LabelFraudulent
	}
	// Stump models expose no probability; report the fixed fallback.
	return Result{Label: label, Probability: fallbackProbability}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
