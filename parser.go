package nipper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/beevik/etree"
	"go.opentelemetry.io/otel/attribute"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/nipper/audit"
	"github.com/zero-day-ai/nipper/config"
	"github.com/zero-day-ai/nipper/parser"
	"github.com/zero-day-ai/nipper/reporterr"
	"github.com/zero-day-ai/nipper/section"
	"github.com/zero-day-ai/nipper/store"
)

// Parser turns Nipper XML documents into Reports. A Parser holds no
// per-document state; its store decides whether it may be shared.
type Parser struct {
	cfg         *config.Config
	logger      *slog.Logger
	telemetry   *telemetry
	store       store.Store
	ownsStore   bool
	fingerprint string
}

// New creates a Parser.
//
// Example:
//
//	p, err := nipper.New(
//	    nipper.WithLogger(logger),
//	    nipper.WithConfigFile("/etc/nipper/nipper.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
func New(opts ...Option) (*Parser, error) {
	pc := &parserConfig{}
	for _, opt := range opts {
		opt(pc)
	}

	if pc.logger == nil {
		pc.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if pc.tracer == nil {
		pc.tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	if pc.meter == nil {
		pc.meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}

	cfg := pc.config
	if pc.configPath != "" {
		loaded, err := config.Load(pc.configPath)
		if err != nil {
			return nil, NewConfigurationError("New", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
		cfg = loaded
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewConfigurationError("New", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	tel, err := newTelemetry(pc.tracer, pc.meter)
	if err != nil {
		return nil, NewConfigurationError("New", err)
	}

	p := &Parser{
		cfg:       cfg,
		logger:    pc.logger,
		telemetry: tel,
		store:     pc.store,
	}
	if p.store == nil && cfg.Cache != nil {
		p.store, err = openStore(cfg.Cache)
		if err != nil {
			return nil, NewCacheError("New", err)
		}
		p.ownsStore = true
	}
	if p.fingerprint, err = fingerprint(cfg); err != nil {
		return nil, NewConfigurationError("New", err)
	}
	return p, nil
}

func openStore(c *config.CacheConfig) (store.Store, error) {
	if c.RedisURL == "" {
		return store.NewMemoryStore(c.GetTTL()), nil
	}
	return store.NewRedisStore(store.RedisOptions{
		URL:    c.RedisURL,
		Prefix: c.GetPrefix(),
		TTL:    c.GetTTL(),
	})
}

// fingerprint identifies the settings that shape a report, so cached reports
// built under other settings are not reused.
func fingerprint(cfg *config.Config) (string, error) {
	shape := struct {
		Parts     []config.Part `yaml:"parts"`
		Keys      audit.Keys    `yaml:"keys"`
		RowPolicy string        `yaml:"row_policy"`
	}{
		Keys:      audit.New(audit.Options{Keys: cfg.Keys}).Keys(),
		RowPolicy: string(cfg.Tables.GetRowPolicy()),
	}
	for _, part := range config.AllParts() {
		if cfg.Enabled(part) {
			shape.Parts = append(shape.Parts, part)
		}
	}
	data, err := yaml.Marshal(shape)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6]), nil
}

// Parse parses the document bytes into a Report.
func (p *Parser) Parse(ctx context.Context, data []byte) (*Report, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	return p.run(ctx, "Parser.Parse", digest, func() (*etree.Element, error) {
		doc, err := parser.Load(data)
		if err != nil {
			return nil, err
		}
		return doc.Root(), nil
	})
}

// ParseDocument parses an already loaded document. The digest is taken over
// the document's serialized form.
func (p *Parser) ParseDocument(ctx context.Context, doc *etree.Document) (*Report, error) {
	if doc == nil || doc.Root() == nil {
		return nil, NewParseError("Parser.ParseDocument",
			reporterr.New("", "load", reporterr.CodeParseError, "document has no root element"))
	}
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, NewParseError("Parser.ParseDocument",
			reporterr.New("", "load", reporterr.CodeParseError, "failed to serialize document").WithCause(err))
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	return p.run(ctx, "Parser.ParseDocument", digest, func() (*etree.Element, error) {
		return doc.Root(), nil
	})
}

func (p *Parser) run(ctx context.Context, op, digest string, root func() (*etree.Element, error)) (*Report, error) {
	start := time.Now()
	ctx, span := p.telemetry.start(ctx, SpanParse, attribute.String("nipper.digest", digest))

	key := digest + "." + p.fingerprint
	if r, ok := p.cached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("nipper.cache.hit", true))
		finish(span, nil)
		p.telemetry.recordReport(ctx, r, true, time.Since(start))
		p.logger.Debug("report served from cache", "digest", digest, "id", r.ID.String())
		return r, nil
	}
	span.SetAttributes(attribute.Bool("nipper.cache.hit", false))

	r, err := p.build(ctx, digest, root)
	finish(span, err)
	if err != nil {
		p.logger.Debug("report parse failed", "digest", digest, "error", err)
		return nil, NewParseError(op, err)
	}

	p.telemetry.recordReport(ctx, r, false, time.Since(start))
	p.remember(ctx, key, r)
	p.logger.Debug("report parsed", "digest", digest, "id", r.ID.String())
	return r, nil
}

// build parses every enabled part. The first error aborts the report.
func (p *Parser) build(ctx context.Context, digest string, loadRoot func() (*etree.Element, error)) (*Report, error) {
	root, err := loadRoot()
	if err != nil {
		return nil, err
	}

	ap := audit.New(audit.Options{
		Keys:      p.cfg.Keys,
		RowPolicy: p.cfg.Tables.GetRowPolicy(),
		Logger:    p.logger,
		OnTruncated: func(_ section.Ref, table string, rows []section.TruncatedRow) {
			p.telemetry.recordTruncated(ctx, table, len(rows))
		},
	})

	r := &Report{ID: reportID(digest), Digest: digest}
	if r.Information, err = ap.Information(root); err != nil {
		return nil, err
	}

	if p.cfg.Enabled(config.PartSecurityAudit) {
		err = p.part(ctx, config.PartSecurityAudit, func() (int, error) {
			var err error
			r.SecurityAudit, err = ap.SecurityAudit(root)
			if err != nil {
				return 0, err
			}
			return len(r.SecurityAudit.Findings), nil
		})
		if err != nil {
			return nil, err
		}
	}

	if p.cfg.Enabled(config.PartVulnerabilityAudit) {
		err = p.part(ctx, config.PartVulnerabilityAudit, func() (int, error) {
			var err error
			r.VulnerabilityAudit, err = ap.VulnerabilityAudit(root)
			if err != nil {
				return 0, err
			}
			return len(r.VulnerabilityAudit.CVEs), nil
		})
		if err != nil {
			return nil, err
		}
	}

	if p.cfg.Enabled(config.PartFilteringComplexity) {
		err = p.part(ctx, config.PartFilteringComplexity, func() (int, error) {
			var err error
			r.FilteringComplexity, err = ap.FilteringComplexity(root)
			if err != nil {
				return 0, err
			}
			return len(r.FilteringComplexity.Observations), nil
		})
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// part runs fn under a span named after the part.
func (p *Parser) part(ctx context.Context, part config.Part, fn func() (int, error)) error {
	_, span := p.telemetry.start(ctx, SpanParse+"."+string(part))
	n, err := fn()
	span.SetAttributes(attribute.Int("nipper.records", n))
	finish(span, err)
	return err
}

// cached returns the report stored under key. Cache failures are logged and
// treated as misses.
func (p *Parser) cached(ctx context.Context, key string) (*Report, bool) {
	if p.store == nil {
		return nil, false
	}
	data, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn("report cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		p.logger.Warn("cached report is not decodable", "key", key, "error", err)
		return nil, false
	}
	r.bind()
	return &r, true
}

func (p *Parser) remember(ctx context.Context, key string, r *Report) {
	if p.store == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		p.logger.Warn("report is not encodable", "key", key, "error", err)
		return
	}
	if err := p.store.Put(ctx, key, data); err != nil {
		p.logger.Warn("report cache write failed", "key", key, "error", NewCacheError("Parser.Parse", err))
	}
}

// Close releases the store the Parser opened from its configuration.
// Stores passed with WithStore are left open.
func (p *Parser) Close() error {
	if p.ownsStore && p.store != nil {
		return p.store.Close()
	}
	return nil
}

// Parse parses data with the default configuration.
func Parse(data []byte) (*Report, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse(context.Background(), data)
}
