package detect

import (
	"context"
	"fmt"
	"regexp"

	"github.com/darklord8515/PhishBuster/pkg/patterns"
)

// BlacklistFunc decides whether a URL embedded in an email is blocklisted.
// The default is a crude TLD membership check standing in for a real
// reputation service; swap it via Pipeline.SetBlacklist.
type BlacklistFunc func(url string) bool

// DefaultBlacklist flags URLs carrying a blocklisted TLD marker.
func DefaultBlacklist(url string) bool {
	return patterns.Get().MatchAny(patterns.CategoryBlacklistedTLD, url) != nil
}

var reEmbeddedURL = regexp.MustCompile(`https?://[^\s]+`)

// ExtractURLs returns every http(s) URL embedded in the text.
func ExtractURLs(text string) []string {
	return reEmbeddedURL.FindAllString(text, -1)
}

// ClassifyEmail runs the email pipeline: phrase matching, embedded-URL
// blacklist checks and the optional text model, combined so that heuristic
// evidence sets a floor the model cannot talk the score down from.
func (p *Pipeline) ClassifyEmail(ctx context.Context, text string) (*Verdict, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	var evidence []FlaggedSignal
	flagged := 0

	for _, t := range patterns.Get().MatchSubstrings(patterns.CategoryPhishingPhrase, text) {
		evidence = append(evidence, FlaggedSignal{
			Kind:   KindPhrase,
			Value:  t.Value,
			Reason: "Common phishing phrase",
		})
		flagged++
	}

	for _, url := range ExtractURLs(text) {
		if p.blacklist(url) {
			evidence = append(evidence, FlaggedSignal{
				Kind:   KindURL,
				Value:  url,
				Reason: "URL matches known phishing TLD or blacklist",
			})
			flagged++
		}
	}

	prob := 0.0
	if p.textModel.IsReady() {
		prob = p.textModel.ScoreText(ctx, text)
		if prob > 0.5 {
			evidence = append(evidence, FlaggedSignal{
				Kind:   KindModelScore,
				Value:  fmt.Sprintf("Probability: %.2f", prob),
				Reason: "ML model predicts high phishing risk",
			})
			flagged++
		}
	} else {
		// Degraded-mode marker; deliberately excluded from the evidence
		// count so a missing model never inflates the heuristic floor.
		evidence = append(evidence, FlaggedSignal{
			Kind:   KindModelUnavailable,
			Value:  "email classifier",
			Reason: "Model artifact not loaded; score uses heuristics only",
		})
	}

	// Either the model's own confidence or a linear function of how much
	// independent evidence fired, whichever is larger. A low-confidence
	// model cannot suppress a verdict backed by multiple heuristic hits.
	score := prob
	if floor := min(1.0, 0.2*float64(flagged)); floor > score {
		score = floor
	}

	label := LabelSafe
	explanation := "No obvious phishing detected."
	if score > 0.5 {
		label = LabelPhishing
	}
	if flagged > 0 {
		explanation = "Phishing indicators detected."
	}

	return newVerdict(label, score, explanation, evidence), nil
}
