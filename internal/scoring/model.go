package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/mat"
)

const ridgeLambda = 1e-3

// ErrNoModel means no trained model exists at the configured path.
var ErrNoModel = errors.New("fit model not found")

// FeatureNames lists model inputs in vector order.
var FeatureNames = []string{
	"text_similarity",
	"industry_alignment",
	"stage_alignment",
	"geographic_alignment",
	"network_proximity",
	"founders",
	"description_length",
	"focus_areas",
	"portfolio_companies",
}

// Model is a linear fit predictor persisted as JSON.
type Model struct {
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Samples      int       `json:"samples"`
	TrainedAt    time.Time `json:"trained_at"`
}

// Train fits a ridge-stabilised least-squares model with an unpenalised intercept.
func Train(x [][]float64, y []float64) (*Model, error) {
	if len(x) == 0 {
		return nil, errors.New("no training samples")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("got %d feature rows and %d targets", len(x), len(y))
	}

	p := len(FeatureNames)
	cols := p + 1
	data := make([]float64, 0, len(x)*cols)
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("sample %d has %d features, want %d", i, len(row), p)
		}
		data = append(data, 1)
		data = append(data, row...)
	}
	design := mat.NewDense(len(x), cols, data)

	var gram mat.Dense
	gram.Mul(design.T(), design)
	for i := 1; i < cols; i++ {
		gram.Set(i, i, gram.At(i, i)+ridgeLambda)
	}

	var moment mat.VecDense
	moment.MulVec(design.T(), mat.NewVecDense(len(y), y))

	var w mat.VecDense
	if err := w.SolveVec(&gram, &moment); err != nil {
		return nil, fmt.Errorf("solve normal equations: %w", err)
	}

	coefficients := make([]float64, p)
	for i := range coefficients {
		coefficients[i] = w.AtVec(i + 1)
	}

	return &Model{
		Features:     append([]string(nil), FeatureNames...),
		Intercept:    w.AtVec(0),
		Coefficients: coefficients,
		Samples:      len(x),
		TrainedAt:    time.Now().UTC(),
	}, nil
}

// Predict returns the fit score for a feature vector, clamped to [0, 100].
func (m *Model) Predict(features []float64) float64 {
	v := m.Intercept
	for i, c := range m.Coefficients {
		if i < len(features) {
			v += c * features[i]
		}
	}
	return Round2(Clamp(v, 0, 100))
}

func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadModel reads a saved model. A missing file returns ErrNoModel.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoModel, path)
	}
	if err != nil {
		return nil, err
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if len(m.Coefficients) != len(FeatureNames) {
		return nil, fmt.Errorf("model %s has %d coefficients, want %d", path, len(m.Coefficients), len(FeatureNames))
	}
	return &m, nil
}
