// Package ml wraps the trained model artifacts behind small adapter types.
// The core pipeline only ever sees the adapter contract: feed a vector (or
// text), get back a label and probability. A missing or broken artifact
// degrades to a neutral score instead of failing the process; callers can
// distinguish "no model" from "model says safe" via IsReady.
package ml

import "context"

// Phishing label values as the training pipeline encodes them.
const (
	LabelLegitimate = 0
	LabelPhishing   = 1
)

// URLModel scores a fixed-width feature vector assembled against the
// model's own schema.
type URLModel interface {
	// Score returns the predicted label and the probability of phishing.
	// When the model is unavailable it returns the neutral (0, 0.0).
	Score(vector []float64) (label int, probability float64)

	// IsReady reports whether a model artifact is actually loaded.
	IsReady() bool
}

// TextModel scores free text (email bodies).
type TextModel interface {
	// ScoreText returns the probability of phishing for the text.
	// When the model is unavailable it returns the neutral 0.0.
	ScoreText(ctx context.Context, text string) float64

	// IsReady reports whether a model artifact is actually loaded.
	IsReady() bool
}

// NoopURLModel is the neutral fallback used when no URL artifact exists.
type NoopURLModel struct{}

func (NoopURLModel) Score(vector []float64) (int, float64) { return LabelLegitimate, 0.0 }
func (NoopURLModel) IsReady() bool                         { return false }

// NoopTextModel is the neutral fallback used when no text artifact exists.
type NoopTextModel struct{}

func (NoopTextModel) ScoreText(ctx context.Context, text string) float64 { return 0.0 }
func (NoopTextModel) IsReady() bool                                      { return false }
