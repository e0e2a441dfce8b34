package ml

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/darklord8515/PhishBuster/pkg/features"
)

// ForestArtifact is the persisted random-forest export produced by the
// offline training job: the trees plus the exact feature schema the model
// was fitted on. The schema travels with the artifact so inference always
// assembles vectors in the order training used, regardless of how the live
// extractor has evolved since.
type ForestArtifact struct {
	Version string          `json:"version"`
	Schema  features.Schema `json:"schema"`
	Trees   []Tree          `json:"trees"`
}

// Tree is a flat array of nodes; index 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is either a split (Feature/Threshold/Left/Right) or a leaf carrying
// the phishing probability for samples that land on it.
type Node struct {
	Feature   int     `json:"feature"`   // Index into the artifact's schema
	Threshold float64 `json:"threshold"` // Go left when value <= threshold
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Prob      float64 `json:"prob"` // Phishing probability at a leaf
}

// predict walks one tree for an assembled vector.
func (t *Tree) predict(vector []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Prob
		}
		v := 0.0
		if n.Feature >= 0 && n.Feature < len(vector) {
			v = vector[n.Feature]
		}
		if v <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// ForestScorer implements URLModel over a loaded forest artifact.
type ForestScorer struct {
	artifact *ForestArtifact
	ready    bool
}

// LoadForest reads and validates a forest artifact from a JSON file.
func LoadForest(path string) (*ForestArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact ForestArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if len(artifact.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %q contains no trees", path)
	}
	if len(artifact.Schema.Features) == 0 {
		return nil, fmt.Errorf("model artifact %q carries no feature schema", path)
	}

	for ti, tree := range artifact.Trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Leaf {
				continue
			}
			if n.Left < 0 || n.Left >= len(tree.Nodes) || n.Right < 0 || n.Right >= len(tree.Nodes) {
				return nil, fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
			}
			// Both edges must point strictly forward; a single backward edge
			// is enough to trap predict in a loop.
			if n.Left <= ni || n.Right <= ni {
				return nil, fmt.Errorf("tree %d node %d would cycle", ti, ni)
			}
		}
	}

	return &artifact, nil
}

// NewForestScorer loads the artifact at path.
func NewForestScorer(path string) (*ForestScorer, error) {
	artifact, err := LoadForest(path)
	if err != nil {
		return nil, err
	}
	return &ForestScorer{artifact: artifact, ready: true}, nil
}

// NewForestScorerWithFallback loads the artifact, degrading to a not-ready
// scorer (neutral output) if loading fails. An empty path means no model was
// configured at all and skips the load attempt quietly.
func NewForestScorerWithFallback(path string) *ForestScorer {
	if path == "" {
		return &ForestScorer{}
	}
	scorer, err := NewForestScorer(path)
	if err != nil {
		log.Printf("[WARN] URL model unavailable (graceful degradation): %v", err)
		return &ForestScorer{}
	}
	return scorer
}

// NewForestScorerFromArtifact wraps an in-memory artifact; used by tests and
// by callers that fetch artifacts from elsewhere.
func NewForestScorerFromArtifact(artifact *ForestArtifact) *ForestScorer {
	return &ForestScorer{artifact: artifact, ready: artifact != nil && len(artifact.Trees) > 0}
}

// Schema returns the feature schema the loaded model expects, or nil when
// no model is loaded.
func (s *ForestScorer) Schema() *features.Schema {
	if !s.ready {
		return nil
	}
	return &s.artifact.Schema
}

// Score averages the per-tree phishing probabilities; label 1 means the
// majority of trees lean phishing.
func (s *ForestScorer) Score(vector []float64) (int, float64) {
	if !s.ready {
		return LabelLegitimate, 0.0
	}

	sum := 0.0
	for i := range s.artifact.Trees {
		sum += s.artifact.Trees[i].predict(vector)
	}
	prob := sum / float64(len(s.artifact.Trees))

	if prob > 0.5 {
		return LabelPhishing, prob
	}
	return LabelLegitimate, prob
}

// IsReady reports whether an artifact is loaded.
func (s *ForestScorer) IsReady() bool {
	return s.ready
}
