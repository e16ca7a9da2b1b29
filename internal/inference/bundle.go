package inference

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
)

const modelTypeLogistic = "logistic"

// BundleFile is the on-disk layout of the trained artifacts
type BundleFile struct {
	SchemaVersion string              `yaml:"schemaVersion"`
	ModelVersion  string              `yaml:"modelVersion"`
	LabelEncoders map[string][]string `yaml:"labelEncoders"`
	Scaler        ScalerFile          `yaml:"scaler"`
	Model         ModelFile           `yaml:"model"`
}

// ScalerFile holds fitted standard scaler parameters
type ScalerFile struct {
	Columns []string  `yaml:"columns"`
	Mean    []float64 `yaml:"mean"`
	Scale   []float64 `yaml:"scale"`
}

// ModelFile holds fitted classifier parameters
type ModelFile struct {
	Type         string    `yaml:"type"`
	Features     []string  `yaml:"features"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
	Threshold    float64   `yaml:"threshold"`
}

// Bundle is the loaded, schema-checked set of trained artifacts.
// It is immutable after load and shared by all requests.
type Bundle struct {
	SchemaVersion string
	ModelVersion  string
	Labels        *LabelTable
	Scaler        *StandardScaler
	Classifier    Classifier
}

// LoadBundle reads and validates an artifact bundle file
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact bundle %s: %w", path, err)
	}
	b, err := ParseBundle(data)
	if err != nil {
		return nil, fmt.Errorf("invalid artifact bundle %s: %w", path, err)
	}
	log.Info().
		Str("path", path).
		Str("schemaVersion", b.SchemaVersion).
		Str("modelVersion", b.ModelVersion).
		Strs("labelEncoders", b.Labels.Fields()).
		Msg("Artifact bundle loaded")
	return b, nil
}

// ParseBundle decodes a YAML bundle and checks it against the encoder layout
func ParseBundle(data []byte) (*Bundle, error) {
	var f BundleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return f.Build()
}

// Build validates the file contents and constructs the runtime artifacts
func (f BundleFile) Build() (*Bundle, error) {
	want := features.SchemaVersion()
	if f.SchemaVersion != "" && f.SchemaVersion != want {
		return nil, features.SchemaMismatchf("bundle", "schema version %s, encoder expects %s", f.SchemaVersion, want)
	}

	labels, err := NewLabelTable(f.LabelEncoders)
	if err != nil {
		return nil, err
	}
	if err := labels.requireFields(features.CategoricalFields); err != nil {
		return nil, err
	}

	if err := features.CheckColumns("scaler", features.NumericFeatureNames(), f.Scaler.Columns); err != nil {
		return nil, err
	}
	scaler, err := NewStandardScaler(f.Scaler.Columns, f.Scaler.Mean, f.Scaler.Scale)
	if err != nil {
		return nil, err
	}

	if f.Model.Type != modelTypeLogistic {
		return nil, fmt.Errorf("unsupported model type %q", f.Model.Type)
	}
	if err := features.CheckColumns("classifier", features.FeatureNames[:], f.Model.Features); err != nil {
		return nil, err
	}
	threshold := f.Model.Threshold
	if threshold == 0 {
		threshold = 0.5
	}
	clf, err := NewLogisticClassifier(f.Model.Coefficients, f.Model.Intercept, threshold)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		SchemaVersion: want,
		ModelVersion:  f.ModelVersion,
		Labels:        labels,
		Scaler:        scaler,
		Classifier:    Serialized(clf),
	}, nil
}
