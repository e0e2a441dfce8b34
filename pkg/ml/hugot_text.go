package ml

// hugot_text.go - Optional ML scoring for email bodies using Hugot/ONNX.
//
// The email pipeline works without any model (heuristic phrases and URL
// checks still fire); when an ONNX text-classification model is available it
// contributes a probability that can raise the final score.
//
// Build:
// - Standard: go build (uses Go backend, slower but no dependencies)
// - With ORT: go build -tags ORT (uses ONNX Runtime, faster)

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

// TextClassifier scores email text with a local ONNX text-classification
// model. It satisfies TextModel and degrades gracefully: a classifier that
// failed to initialize reports IsReady() == false and scores everything 0.0.
type TextClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.RWMutex
	config   TextClassifierConfig
	ready    bool
}

// TextClassifierConfig configures the text classifier.
type TextClassifierConfig struct {
	// ModelPath is the local path to the ONNX model directory.
	ModelPath string

	// OnnxLibraryPath is the path to libonnxruntime.so. When empty the pure
	// Go backend is used.
	OnnxLibraryPath string
}

// DefaultOnnxPath returns the ONNX Runtime library directory if one is
// installed at a common location.
func DefaultOnnxPath() string {
	paths := []string{
		"/usr/lib/libonnxruntime.so",
		"/usr/local/lib/libonnxruntime.so",
		"/opt/homebrew/lib/libonnxruntime.dylib",
		"/usr/local/lib/libonnxruntime.dylib",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return filepath.Dir(p)
		}
	}
	return ""
}

// NewTextClassifier creates a classifier for the model at cfg.ModelPath.
func NewTextClassifier(cfg TextClassifierConfig) (*TextClassifier, error) {
	c := &TextClassifier{config: cfg}
	if err := c.initialize(); err != nil {
		return nil, fmt.Errorf("text classifier initialization failed: %w", err)
	}
	return c, nil
}

// NewTextClassifierWithFallback creates a classifier that degrades on
// failure: initialization errors produce a not-ready instance instead of an
// error. An empty model path skips initialization quietly.
func NewTextClassifierWithFallback(cfg TextClassifierConfig) *TextClassifier {
	if cfg.ModelPath == "" {
		return &TextClassifier{config: cfg}
	}
	c, err := NewTextClassifier(cfg)
	if err != nil {
		log.Printf("[WARN] email model unavailable (graceful degradation): %v", err)
		return &TextClassifier{config: cfg}
	}
	return c
}

func (c *TextClassifier) initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(filepath.Join(c.config.ModelPath, "model.onnx")); err != nil {
		return fmt.Errorf("no model.onnx under %q: %w", c.config.ModelPath, err)
	}

	session, err := c.createSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	c.session = session

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: c.config.ModelPath,
		Name:      "email-phishing-classifier",
	})
	if err != nil {
		_ = c.session.Destroy()
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	c.pipeline = pipeline
	c.ready = true
	log.Printf("email classifier initialized (model: %s)", c.config.ModelPath)
	return nil
}

// createSession prefers the ONNX Runtime backend and falls back to the pure
// Go backend when the runtime library is missing.
func (c *TextClassifier) createSession() (*hugot.Session, error) {
	if c.config.OnnxLibraryPath != "" {
		session, err := hugot.NewORTSession(
			options.WithOnnxLibraryPath(c.config.OnnxLibraryPath),
		)
		if err == nil {
			return session, nil
		}
		log.Printf("ONNX Runtime unavailable, falling back to Go backend: %v", err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create Go session: %w", err)
	}
	return session, nil
}

// isPhishingLabel maps the label conventions of common text-classification
// checkpoints onto the binary phishing decision.
func isPhishingLabel(label string) bool {
	switch label {
	case "phishing", "spam", "PHISHING", "SPAM", "LABEL_1":
		return true
	default:
		return false
	}
}

// ScoreText returns the phishing probability for the text, 0.0 when the
// classifier is not ready or inference fails.
func (c *TextClassifier) ScoreText(ctx context.Context, text string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready || c.pipeline == nil {
		return 0.0
	}

	result, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		log.Printf("[WARN] email classification failed: %v", err)
		return 0.0
	}
	if len(result.ClassificationOutputs) == 0 || len(result.ClassificationOutputs[0]) == 0 {
		return 0.0
	}

	out := result.ClassificationOutputs[0][0]
	prob := float64(out.Score)
	if !isPhishingLabel(out.Label) {
		prob = 1.0 - prob
	}
	return prob
}

// IsReady reports whether a model is loaded and usable.
func (c *TextClassifier) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Close releases the underlying session.
func (c *TextClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ready = false
	if c.session != nil {
		if err := c.session.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
	}
	return nil
}
