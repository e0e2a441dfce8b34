package detect

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestClassifyEmailEmptyInput(t *testing.T) {
	p := NewPipeline(nil, nil, nil, nil)
	_, err := p.ClassifyEmail(context.Background(), "")
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestClassifyEmailHeuristicFloorBeatsLowModel(t *testing.T) {
	// Three phrase hits put the floor at 0.6; a model probability of 0.1
	// must not talk the score down.
	p := NewPipeline(nil, nil, fakeTextModel{prob: 0.1, ready: true}, nil)

	text := "URGENT ACTION REQUIRED: verify your account now. Click here to continue."
	v, err := p.ClassifyEmail(context.Background(), text)
	if err != nil {
		t.Fatalf("Failed to classify: %v", err)
	}
	if math.Abs(v.Score-0.6) > 1e-9 {
		t.Errorf("Expected score 0.6, got %v", v.Score)
	}
	if v.Label != LabelPhishing {
		t.Errorf("Expected phishing label, got %s", v.Label)
	}
	if v.Explanation != "Phishing indicators detected." {
		t.Errorf("Unexpected explanation: %q", v.Explanation)
	}

	phrases := 0
	for _, sig := range v.Evidence {
		if sig.Kind == KindPhrase {
			phrases++
		}
	}
	if phrases != 3 {
		t.Errorf("Expected 3 phrase signals, got %d", phrases)
	}
}

func TestClassifyEmailModelProbabilityWins(t *testing.T) {
	// No heuristic hits; the model's confidence alone drives the score.
	p := NewPipeline(nil, nil, fakeTextModel{prob: 0.92, ready: true}, nil)

	v, err := p.ClassifyEmail(context.Background(), "Quarterly report attached, see figures inside.")
	if err != nil {
		t.Fatalf("Failed to classify: %v", err)
	}
	if v.Score != 0.92 {
		t.Errorf("Expected score 0.92, got %v", v.Score)
	}
	if v.Label != LabelPhishing {
		t.Errorf("Expected phishing label, got %s", v.Label)
	}

	found := false
	for _, sig := range v.Evidence {
		if sig.Kind == KindModelScore {
			found = true
		}
	}
	if !found {
		t.Error("Expected a model-score signal for high confidence")
	}
}

func TestClassifyEmailBlacklistedURL(t *testing.T) {
	p := NewPipeline(nil, nil, fakeTextModel{prob: 0.0, ready: true}, nil)

	v, err := p.ClassifyEmail(context.Background(), "Invoice ready at http://billing-portal.ru/pay today")
	if err != nil {
		t.Fatalf("Failed to classify: %v", err)
	}

	urls := 0
	for _, sig := range v.Evidence {
		if sig.Kind == KindURL {
			urls++
			if !strings.Contains(sig.Value, "billing-portal.ru") {
				t.Errorf("Expected the flagged URL in the signal, got %q", sig.Value)
			}
		}
	}
	if urls != 1 {
		t.Errorf("Expected 1 URL signal, got %d", urls)
	}
	// One hit puts the score at 0.2, below the threshold
	if math.Abs(v.Score-0.2) > 1e-9 {
		t.Errorf("Expected score 0.2, got %v", v.Score)
	}
	if v.Label != LabelSafe {
		t.Errorf("Expected safe label, got %s", v.Label)
	}
}

func TestClassifyEmailNoModelMarkerDoesNotCount(t *testing.T) {
	p := NewPipeline(nil, nil, nil, nil)

	v, err := p.ClassifyEmail(context.Background(), "Please verify your account at your convenience.")
	if err != nil {
		t.Fatalf("Failed to classify: %v", err)
	}

	// One phrase hit plus the degraded-mode marker: the marker must not
	// inflate the score beyond 0.2.
	if math.Abs(v.Score-0.2) > 1e-9 {
		t.Errorf("Expected score 0.2, got %v", v.Score)
	}
	if v.Label != LabelSafe {
		t.Errorf("Expected safe label, got %s", v.Label)
	}

	marker := false
	for _, sig := range v.Evidence {
		if sig.Kind == KindModelUnavailable {
			marker = true
		}
	}
	if !marker {
		t.Error("Expected a model-unavailable marker in the evidence")
	}
}

func TestClassifyEmailCleanText(t *testing.T) {
	p := NewPipeline(nil, nil, fakeTextModel{prob: 0.05, ready: true}, nil)

	v, err := p.ClassifyEmail(context.Background(), "See you at the team lunch on Friday.")
	if err != nil {
		t.Fatalf("Failed to classify: %v", err)
	}
	if v.Label != LabelSafe {
		t.Errorf("Expected safe label, got %s", v.Label)
	}
	if v.Score != 0.05 {
		t.Errorf("Expected score 0.05, got %v", v.Score)
	}
	if v.Explanation != "No obvious phishing detected." {
		t.Errorf("Unexpected explanation: %q", v.Explanation)
	}
}

func TestClassifyEmailFloorSaturatesAtOne(t *testing.T) {
	p := NewPipeline(nil, nil, nil, nil)

	// Six independent hits would put the linear floor at 1.2; it must clamp.
	text := "urgent action required verify your account reset your password " +
		"click here confirm your identity scholarship offer"
	v, err := p.ClassifyEmail(context.Background(), text)
	if err != nil {
		t.Fatalf("Failed to classify: %v", err)
	}
	if v.Score != 1.0 {
		t.Errorf("Expected score clamped to 1.0, got %v", v.Score)
	}
	if v.Label != LabelPhishing {
		t.Errorf("Expected phishing label, got %s", v.Label)
	}
}

func TestSetBlacklist(t *testing.T) {
	p := NewPipeline(nil, nil, nil, nil)
	p.SetBlacklist(func(url string) bool {
		return strings.Contains(url, "flagged.example")
	})

	v, err := p.ClassifyEmail(context.Background(), "Details at http://flagged.example/doc and http://other.ru/doc")
	if err != nil {
		t.Fatalf("Failed to classify: %v", err)
	}

	urls := 0
	for _, sig := range v.Evidence {
		if sig.Kind == KindURL {
			urls++
			if sig.Value != "http://flagged.example/doc" {
				t.Errorf("Expected only the custom-flagged URL, got %q", sig.Value)
			}
		}
	}
	if urls != 1 {
		t.Errorf("Expected 1 URL signal from the custom predicate, got %d", urls)
	}
}

func TestExtractURLs(t *testing.T) {
	urls := ExtractURLs("visit https://a.example/x then http://b.example/y, no others")
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://a.example/x" {
		t.Errorf("Unexpected first URL: %q", urls[0])
	}

	if got := ExtractURLs("nothing embedded here"); len(got) != 0 {
		t.Errorf("Expected no URLs, got %v", got)
	}
}
