package detect

import (
	"context"
	"errors"
	"fmt"

	"github.com/darklord8515/PhishBuster/pkg/features"
	"github.com/darklord8515/PhishBuster/pkg/ml"
	"github.com/darklord8515/PhishBuster/pkg/trust"
)

// ErrEmptyInput is returned when no URL or email text was supplied. It is a
// caller error, not a pipeline fault; malformed-but-present input never
// produces an error.
var ErrEmptyInput = errors.New("no input supplied")

// Pipeline owns everything a classification needs: the trust list, the
// model adapters and the feature schema. Construct it once at startup and
// share it freely; all fields are immutable after construction so concurrent
// calls need no locking.
type Pipeline struct {
	trustList *trust.List
	urlModel  ml.URLModel
	textModel ml.TextModel
	schema    []string
	blacklist BlacklistFunc
}

// NewPipeline builds a pipeline. Any nil model is replaced by the neutral
// no-op adapter; a nil schema falls back to the canonical default; a nil
// blacklist falls back to the built-in TLD check.
func NewPipeline(trustList *trust.List, urlModel ml.URLModel, textModel ml.TextModel, schema *features.Schema) *Pipeline {
	if urlModel == nil {
		urlModel = ml.NoopURLModel{}
	}
	if textModel == nil {
		textModel = ml.NoopTextModel{}
	}
	if schema == nil {
		schema = features.DefaultSchema()
	}
	return &Pipeline{
		trustList: trustList,
		urlModel:  urlModel,
		textModel: textModel,
		schema:    schema.Features,
		blacklist: DefaultBlacklist,
	}
}

// SetBlacklist swaps the embedded-URL blacklist predicate. Call before
// serving traffic; the pipeline is not made for mid-flight reconfiguration.
func (p *Pipeline) SetBlacklist(fn BlacklistFunc) {
	if fn != nil {
		p.blacklist = fn
	}
}

// ClassifyURL runs the URL pipeline: trust gate, feature extraction, vector
// assembly, model scoring. It only errors on empty input; anything else,
// however malformed, yields a verdict.
func (p *Pipeline) ClassifyURL(ctx context.Context, rawURL string) (*Verdict, error) {
	if rawURL == "" {
		return nil, ErrEmptyInput
	}

	// Trust gate: a trusted registered domain bypasses scoring entirely.
	// This is a deliberate override, immune to classifier false positives.
	if domain, ok := p.trustList.IsTrusted(rawURL); ok {
		return newVerdict(LabelSafe, 0.0, fmt.Sprintf("Trusted domain: %s", domain), nil), nil
	}

	if !p.urlModel.IsReady() {
		return newVerdict(LabelSafe, 0.0, "No classifier loaded; defaulting to safe.", []FlaggedSignal{{
			Kind:   KindModelUnavailable,
			Value:  "url classifier",
			Reason: "Model artifact not loaded; verdict is safe-by-default",
		}}), nil
	}

	feats := features.Extract(rawURL)
	vector := features.Assemble(feats, p.schema)
	label, prob := p.urlModel.Score(vector)

	if label == ml.LabelPhishing {
		return newVerdict(LabelPhishing, prob, "Suspicious structure or content detected.", []FlaggedSignal{{
			Kind:   KindModelScore,
			Value:  fmt.Sprintf("Probability: %.2f", prob),
			Reason: "ML model predicts high phishing risk",
		}}), nil
	}
	return newVerdict(LabelSafe, prob, "No major risks detected.", nil), nil
}
