package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/darklord8515/PhishBuster/pkg/cache"
	"github.com/darklord8515/PhishBuster/pkg/config"
	"github.com/darklord8515/PhishBuster/pkg/detect"
	"github.com/darklord8515/PhishBuster/pkg/features"
	"github.com/darklord8515/PhishBuster/pkg/ml"
	"github.com/darklord8515/PhishBuster/pkg/trust"
)

const Version = "1.0.0"

// Scanner holds the detection components.
// The models and the cache are optional and gracefully degrade if unavailable.
type Scanner struct {
	pipeline *detect.Pipeline
	cache    *cache.VerdictCache
	urlModel *ml.ForestScorer
	text     *ml.TextClassifier
	pgSource *trust.PostgresSource
	config   *config.Config
}

func NewScanner(ctx context.Context, cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	s := &Scanner{config: cfg}

	// Trust list: Postgres > YAML file > built-in
	var src trust.Source = trust.StaticSource{}
	switch {
	case cfg.TrustListDSN != "":
		pg, err := trust.NewPostgresSource(ctx, cfg.TrustListDSN)
		if err != nil {
			log.Printf("○ Postgres trust list disabled (connect failed: %v)", err)
		} else {
			pg.Table = cfg.TrustListTable
			s.pgSource = pg
			src = pg
			log.Println("✓ Trust list from Postgres")
		}
	case cfg.TrustListPath != "":
		src = trust.FileSource{Path: cfg.TrustListPath}
		log.Printf("✓ Trust list from %s", cfg.TrustListPath)
	}

	trustList, err := trust.Load(ctx, src)
	if err != nil {
		log.Printf("○ Trust list load failed, using built-in list: %v", err)
		trustList, _ = trust.Load(ctx, trust.StaticSource{})
	}
	log.Printf("✓ Trust list loaded (%d domains)", trustList.Len())

	// URL model (random forest) - optional
	s.urlModel = ml.NewForestScorerWithFallback(cfg.URLModelPath)
	if s.urlModel.IsReady() {
		log.Println("✓ URL classifier enabled (random forest)")
	} else {
		log.Println("○ URL classifier disabled (no model artifact, verdicts default to safe)")
	}

	// Email text model (ONNX) - optional
	s.text = ml.NewTextClassifierWithFallback(ml.TextClassifierConfig{
		ModelPath:       cfg.EmailModelPath,
		OnnxLibraryPath: cfg.OnnxLibraryPath,
	})
	if s.text.IsReady() {
		log.Println("✓ Email classifier enabled (hugot/ONNX)")
	} else {
		log.Println("○ Email classifier disabled (heuristics only)")
	}

	// Feature schema: explicit override > model artifact > built-in
	var schema *features.Schema
	if cfg.SchemaPath != "" {
		schema, err = features.LoadSchema(cfg.SchemaPath)
		if err != nil {
			log.Printf("○ Schema override load failed, using model schema: %v", err)
			schema = nil
		}
	}
	if schema == nil && s.urlModel.IsReady() {
		schema = s.urlModel.Schema()
	}

	s.pipeline = detect.NewPipeline(trustList, s.urlModel, s.text, schema)

	// Verdict cache - optional
	s.cache = cache.New(cfg.RedisAddr, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	if s.cache != nil {
		log.Printf("✓ Verdict cache enabled (redis %s)", cfg.RedisAddr)
	} else {
		log.Println("○ Verdict cache disabled (no redis address)")
	}

	return s
}

// ScanURL classifies a single URL, consulting the verdict cache first.
func (s *Scanner) ScanURL(ctx context.Context, rawURL string) (*detect.Verdict, error) {
	if v, ok := s.cache.Get(ctx, "url:"+rawURL); ok {
		return v, nil
	}
	v, err := s.pipeline.ClassifyURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, "url:"+rawURL, v)
	return v, nil
}

// ScanEmail classifies email body text. Email verdicts are not cached:
// bodies are long, rarely repeated, and make poor cache keys.
func (s *Scanner) ScanEmail(ctx context.Context, text string) (*detect.Verdict, error) {
	return s.pipeline.ClassifyEmail(ctx, text)
}

func (s *Scanner) Close() {
	if s.text != nil {
		s.text.Close()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.pgSource != nil {
		s.pgSource.Close()
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		port := ""
		if len(os.Args) > 2 {
			port = os.Args[2]
		}
		runHTTPServer(port)
	case "scan-url":
		if len(os.Args) < 3 {
			fmt.Println("Usage: phishbuster scan-url <url>")
			os.Exit(1)
		}
		runCLIScanURL(os.Args[2])
	case "scan-email":
		if len(os.Args) < 3 {
			fmt.Println("Usage: phishbuster scan-email <text>")
			os.Exit(1)
		}
		runCLIScanEmail(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("PhishBuster v%s\n", Version)
		fmt.Println("Phishing URL & Email Scanner")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("PhishBuster v%s - Phishing URL & Email Scanner\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  phishbuster serve [port]        Start HTTP server (default: 3000)")
	fmt.Println("  phishbuster scan-url <url>      Classify a URL")
	fmt.Println("  phishbuster scan-email <text>   Classify email body text")
	fmt.Println("  phishbuster version             Show version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  phishbuster serve 8080")
	fmt.Println("  phishbuster scan-url \"http://paypal-secure.verify-login.xyz/update\"")
	fmt.Println("  phishbuster scan-email \"Verify your account immediately\"")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  PHISHBUSTER_URL_MODEL    Path to the URL forest artifact (JSON)")
	fmt.Println("  PHISHBUSTER_EMAIL_MODEL  Path to the email ONNX model directory")
	fmt.Println("  PHISHBUSTER_TRUST_LIST   YAML trust list file")
	fmt.Println("  PHISHBUSTER_TRUST_DSN    Postgres DSN for the trust list")
	fmt.Println("  PHISHBUSTER_REDIS_ADDR   Redis address for the verdict cache")
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(port string) {
	cfg := config.NewDefaultConfig()
	if port != "" {
		cfg.Port = port
	}
	cfg.MustValidate()

	scanner := NewScanner(context.Background(), cfg)
	defer scanner.Close()

	app := fiber.New(fiber.Config{
		AppName: "PhishBuster",
	})

	// Health check
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": Version})
	})

	// URL classification
	app.Post("/scan/url", func(c fiber.Ctx) error {
		var req struct {
			URL string `json:"url"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if strings.TrimSpace(req.URL) == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Please enter a URL."})
		}
		verdict, err := scanner.ScanURL(c.Context(), req.URL)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(verdict)
	})

	// Email classification
	app.Post("/scan/email", func(c fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if strings.TrimSpace(req.Text) == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Please enter email text."})
		}
		verdict, err := scanner.ScanEmail(c.Context(), req.Text)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(verdict)
	})

	// Unified endpoint with a mode field
	// mode: "url" (default) | "email"
	app.Post("/scan", func(c fiber.Ctx) error {
		var req struct {
			Input string `json:"input"`
			Mode  string `json:"mode"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Mode == "" {
			req.Mode = "url"
		}

		switch req.Mode {
		case "url":
			if strings.TrimSpace(req.Input) == "" {
				return c.Status(400).JSON(fiber.Map{"error": "Please enter a URL."})
			}
			verdict, err := scanner.ScanURL(c.Context(), req.Input)
			if err != nil {
				return c.Status(400).JSON(fiber.Map{"error": err.Error()})
			}
			return c.JSON(verdict)

		case "email":
			if strings.TrimSpace(req.Input) == "" {
				return c.Status(400).JSON(fiber.Map{"error": "Please enter email text."})
			}
			verdict, err := scanner.ScanEmail(c.Context(), req.Input)
			if err != nil {
				return c.Status(400).JSON(fiber.Map{"error": err.Error()})
			}
			return c.JSON(verdict)

		default:
			return c.Status(400).JSON(fiber.Map{
				"error": "invalid mode, must be: url or email",
			})
		}
	})

	log.Printf("PhishBuster HTTP server starting on :%s", cfg.Port)
	log.Printf("Endpoints:")
	log.Printf("  GET  /health      - Health check")
	log.Printf("  POST /scan        - Unified scanning (mode: url|email)")
	log.Printf("  POST /scan/url    - URL classification")
	log.Printf("  POST /scan/email  - Email classification")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// ============================================================================
// CLI Mode
// ============================================================================

func runCLIScanURL(rawURL string) {
	cfg := config.NewDefaultConfig()
	scanner := NewScanner(context.Background(), cfg)
	defer scanner.Close()

	verdict, err := scanner.ScanURL(context.Background(), rawURL)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}
	printVerdict(verdict)
}

func runCLIScanEmail(text string) {
	cfg := config.NewDefaultConfig()
	scanner := NewScanner(context.Background(), cfg)
	defer scanner.Close()

	verdict, err := scanner.ScanEmail(context.Background(), text)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}
	printVerdict(verdict)
}

func printVerdict(v *detect.Verdict) {
	output, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(output))
}
