// Package detect composes the final phishing verdicts. It wires the trust
// gate, the feature pipeline and the classifier adapters together and is the
// only package callers need: ClassifyURL and ClassifyEmail.
package detect

import "github.com/google/uuid"

// Label is the binary verdict label.
type Label string

const (
	LabelSafe     Label = "safe"
	LabelPhishing Label = "phishing"
)

// SignalKind identifies what produced a piece of evidence.
type SignalKind string

const (
	KindPhrase     SignalKind = "phrase"
	KindURL        SignalKind = "url"
	KindModelScore SignalKind = "ml_model"

	// KindModelUnavailable marks a degraded run: no classifier artifact was
	// loaded, so "safe" here means "safe by default", not "model says safe".
	KindModelUnavailable SignalKind = "model_unavailable"
)

// FlaggedSignal is one piece of independent evidence behind a verdict.
type FlaggedSignal struct {
	Kind   SignalKind `json:"type"`
	Value  string     `json:"value"`
	Reason string     `json:"reason,omitempty"`
}

// Verdict is the result of classifying a URL or an email.
type Verdict struct {
	ID          string          `json:"id"`
	Label       Label           `json:"label"`
	Score       float64         `json:"score"`
	Explanation string          `json:"explanation,omitempty"`
	Evidence    []FlaggedSignal `json:"flagged"`
}

// IsPhishing is a convenience accessor for API responses.
func (v *Verdict) IsPhishing() bool {
	return v.Label == LabelPhishing
}

func newVerdict(label Label, score float64, explanation string, evidence []FlaggedSignal) *Verdict {
	if evidence == nil {
		evidence = []FlaggedSignal{}
	}
	return &Verdict{
		ID:          uuid.NewString(),
		Label:       label,
		Score:       score,
		Explanation: explanation,
		Evidence:    evidence,
	}
}
