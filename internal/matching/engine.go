// Package matching runs the full resume-versus-job analysis.
package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/dictionary"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/gaps"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/report"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Input labels used in errors and logs
const (
	InputResume = "resume"
	InputJob    = "job description"
)

// Options configures an Engine.
type Options struct {
	Dictionary *dictionary.Dictionary // required
	Provider   embedding.Provider     // required
	Scorer     *scoring.Scorer        // default: 60/40 blend
	Logger     *slog.Logger           // default: slog.Default()
	Now        func() time.Time       // default: time.Now
	NewID      func() string          // default: uuid.NewString
}

// Engine compares one resume against one job description per call.
// Its fields are never modified after New, so it is safe for concurrent use.
type Engine struct {
	dict       *dictionary.Dictionary
	normalizer *textnorm.Normalizer
	extractor  *keywords.Extractor
	provider   embedding.Provider
	scorer     *scoring.Scorer
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// New creates an Engine from opts.
func New(opts Options) (*Engine, error) {
	if opts.Dictionary == nil {
		return nil, &config.ConfigurationError{Field: "dictionary", Message: "dictionary is required"}
	}
	if opts.Provider == nil {
		return nil, &config.ConfigurationError{Field: "embedding", Message: "embedding provider is required"}
	}

	e := &Engine{
		dict:       opts.Dictionary,
		normalizer: textnorm.New(opts.Dictionary),
		extractor:  keywords.New(opts.Dictionary, 0), // uncapped so gaps compare full term sets
		provider:   opts.Provider,
		scorer:     opts.Scorer,
		logger:     opts.Logger,
		now:        opts.Now,
		newID:      opts.NewID,
	}
	if e.scorer == nil {
		e.scorer = scoring.Default()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e, nil
}

// NewFromConfig loads the dictionary, embedding provider and scorer named by cfg.
// All failures are configuration errors and should stop the process at startup.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	dict, err := dictionary.Load(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}

	scorer, err := scoring.New(cfg.Scoring.SemanticWeight, cfg.Scoring.KeywordWeight)
	if err != nil {
		return nil, err
	}

	provider, err := embedding.NewProvider(ctx, cfg.Embedding, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("matching engine configured",
			slog.String("dictionary_version", dict.Version()),
			slog.Int("stop_words", dict.StopWordCount()),
			slog.Int("skill_phrases", dict.PhraseCount()),
			slog.String("embedding_provider", provider.Name()),
			slog.Int("dimension", provider.Dimension()))
	}

	return New(Options{
		Dictionary: dict,
		Provider:   provider,
		Scorer:     scorer,
		Logger:     logger,
	})
}

// Dictionary returns the dictionary the engine was built with.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

// Close releases the embedding provider.
func (e *Engine) Close() error {
	return e.provider.Close()
}

// Prepare normalizes text and extracts its keywords. input names the text in errors.
func (e *Engine) Prepare(text, input string) (*types.Document, error) {
	doc, err := e.normalizer.Normalize(text)
	if err != nil {
		return nil, textnorm.WithInput(err, input)
	}
	doc.Keywords = e.extractor.Extract(doc.Tokens)
	return doc, nil
}

// Analyze compares resumeText against jobText and returns the match report.
// It fails with *textnorm.EmptyInputError when either text has no usable tokens and
// with *embedding.EmbeddingUnavailableError when either embedding cannot be produced;
// no partial report is returned.
func (e *Engine) Analyze(ctx context.Context, resumeText, jobText string) (*types.MatchReport, error) {
	start := e.now()

	resumeDoc, err := e.Prepare(resumeText, InputResume)
	if err != nil {
		return nil, err
	}
	jobDoc, err := e.Prepare(jobText, InputJob)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("documents normalized",
		slog.Int("resume_tokens", len(resumeDoc.Tokens)),
		slog.Int("resume_keywords", len(resumeDoc.Keywords)),
		slog.Int("job_tokens", len(jobDoc.Tokens)),
		slog.Int("job_keywords", len(jobDoc.Keywords)))

	// The two embeddings are independent; run them concurrently and join
	var resumeVec, jobVec types.EmbeddingVector
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vec, err := e.provider.Embed(gCtx, resumeDoc.RawText)
		if err != nil {
			return fmt.Errorf("failed to embed %s: %w", InputResume, err)
		}
		resumeVec = vec
		return nil
	})
	g.Go(func() error {
		vec, err := e.provider.Embed(gCtx, jobDoc.RawText)
		if err != nil {
			return fmt.Errorf("failed to embed %s: %w", InputJob, err)
		}
		jobVec = vec
		return nil
	})
	if err := g.Wait(); err != nil {
		e.logger.Warn("embedding failed", slog.String("provider", e.provider.Name()), slog.Any("error", err))
		return nil, err
	}
	e.logger.Debug("documents embedded", slog.String("provider", e.provider.Name()), slog.Int("dimension", len(jobVec)))

	scores, err := e.scorer.Score(resumeDoc, jobDoc, resumeVec, jobVec)
	if err != nil {
		return nil, fmt.Errorf("failed to score documents: %w", err)
	}
	missing := gaps.FindGaps(resumeDoc, jobDoc)

	r := report.Build(resumeDoc, jobDoc, scores, missing)
	r.ID = e.newID()
	r.AnalyzedAt = e.now().UTC()

	e.logger.Debug("analysis complete",
		slog.String("report_id", r.ID),
		slog.Float64("overall", r.OverallScore),
		slog.Float64("semantic", r.SemanticScore),
		slog.Float64("keyword", r.KeywordScore),
		slog.Int("missing", len(r.MissingKeywords)),
		slog.Duration("elapsed", e.now().Sub(start)))

	return r, nil
}
