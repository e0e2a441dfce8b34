package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/darklord8515/PhishBuster/pkg/features"
)

// stumpArtifact builds a two-tree forest over a single feature: values above
// the threshold score as phishing.
func stumpArtifact() *ForestArtifact {
	stump := Tree{Nodes: []Node{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
		{Leaf: true, Prob: 0.1},
		{Leaf: true, Prob: 0.9},
	}}
	return &ForestArtifact{
		Version: "test",
		Schema:  features.Schema{Version: "v2", Features: []string{"is_suspicious_tld"}},
		Trees:   []Tree{stump, stump},
	}
}

func TestForestScorerScore(t *testing.T) {
	scorer := NewForestScorerFromArtifact(stumpArtifact())
	if !scorer.IsReady() {
		t.Fatal("Expected scorer to be ready")
	}

	label, prob := scorer.Score([]float64{1})
	if label != LabelPhishing {
		t.Errorf("Expected phishing label, got %d", label)
	}
	if prob != 0.9 {
		t.Errorf("Expected probability 0.9, got %v", prob)
	}

	label, prob = scorer.Score([]float64{0})
	if label != LabelLegitimate {
		t.Errorf("Expected legitimate label, got %d", label)
	}
	if prob != 0.1 {
		t.Errorf("Expected probability 0.1, got %v", prob)
	}
}

func TestForestScorerShortVector(t *testing.T) {
	scorer := NewForestScorerFromArtifact(stumpArtifact())

	// Missing feature positions read as 0, which lands on the low leaf
	label, prob := scorer.Score([]float64{})
	if label != LabelLegitimate {
		t.Errorf("Expected legitimate label for empty vector, got %d", label)
	}
	if prob != 0.1 {
		t.Errorf("Expected probability 0.1, got %v", prob)
	}
}

func TestForestScorerNotReady(t *testing.T) {
	scorer := NewForestScorerWithFallback("")
	if scorer.IsReady() {
		t.Error("Expected scorer without a model path to not be ready")
	}
	label, prob := scorer.Score([]float64{1, 1, 1})
	if label != LabelLegitimate || prob != 0.0 {
		t.Errorf("Expected neutral output (0, 0.0), got (%d, %v)", label, prob)
	}
	if scorer.Schema() != nil {
		t.Error("Expected nil schema from a not-ready scorer")
	}
}

func TestForestScorerWithFallbackBadPath(t *testing.T) {
	scorer := NewForestScorerWithFallback("/nonexistent/model.json")
	if scorer.IsReady() {
		t.Error("Expected scorer to degrade when the artifact is missing")
	}
}

func TestLoadForestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	data, err := json.Marshal(stumpArtifact())
	if err != nil {
		t.Fatalf("Failed to marshal artifact: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	scorer, err := NewForestScorer(path)
	if err != nil {
		t.Fatalf("Failed to load artifact: %v", err)
	}
	if !scorer.IsReady() {
		t.Fatal("Expected loaded scorer to be ready")
	}
	if got := scorer.Schema().Features[0]; got != "is_suspicious_tld" {
		t.Errorf("Expected schema to survive the round trip, got %q", got)
	}
}

func TestLoadForestRejectsMalformedArtifacts(t *testing.T) {
	tests := []struct {
		name     string
		artifact ForestArtifact
	}{
		{
			name: "no trees",
			artifact: ForestArtifact{
				Schema: features.Schema{Features: []string{"url_length"}},
			},
		},
		{
			name: "no schema",
			artifact: ForestArtifact{
				Trees: []Tree{{Nodes: []Node{{Leaf: true, Prob: 0.5}}}},
			},
		},
		{
			name: "out-of-range children",
			artifact: ForestArtifact{
				Schema: features.Schema{Features: []string{"url_length"}},
				Trees:  []Tree{{Nodes: []Node{{Feature: 0, Threshold: 1, Left: 5, Right: 6}}}},
			},
		},
		{
			name: "cycle",
			artifact: ForestArtifact{
				Schema: features.Schema{Features: []string{"url_length"}},
				Trees:  []Tree{{Nodes: []Node{{Feature: 0, Threshold: 1, Left: 0, Right: 0}}}},
			},
		},
		{
			// A single backward edge is enough to loop forever: node 0 points
			// left at itself while the right child is a valid leaf. Scoring a
			// value below the threshold would never terminate.
			name: "self-looping left child",
			artifact: ForestArtifact{
				Schema: features.Schema{Features: []string{"url_length"}},
				Trees: []Tree{{Nodes: []Node{
					{Feature: 0, Threshold: 100, Left: 0, Right: 1},
					{Leaf: true, Prob: 0.9},
				}}},
			},
		},
		{
			name: "backward right child",
			artifact: ForestArtifact{
				Schema: features.Schema{Features: []string{"url_length"}},
				Trees: []Tree{{Nodes: []Node{
					{Feature: 0, Threshold: 1, Left: 2, Right: 0},
					{Leaf: true, Prob: 0.1},
					{Leaf: true, Prob: 0.9},
				}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.json")
			data, err := json.Marshal(tt.artifact)
			if err != nil {
				t.Fatalf("Failed to marshal artifact: %v", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				t.Fatalf("Failed to write artifact: %v", err)
			}
			if _, err := LoadForest(path); err == nil {
				t.Error("Expected validation to reject the artifact")
			}
		})
	}
}

func TestNoopModels(t *testing.T) {
	urlModel := NoopURLModel{}
	if urlModel.IsReady() {
		t.Error("Expected noop URL model to not be ready")
	}
	if label, prob := urlModel.Score([]float64{1}); label != LabelLegitimate || prob != 0.0 {
		t.Errorf("Expected neutral output, got (%d, %v)", label, prob)
	}
}
