// Package optimizer wires segmentation, analysis, gap detection, transforms,
// scoring, and the anti-regression selector into a single Optimize call. An
// Optimizer owns all shared mutable state (result cache, analyzer pattern
// cache) so callers can hold isolated instances.
package optimizer

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"promptforge/pkg/analysis"
	"promptforge/pkg/config"
	"promptforge/pkg/gaps"
	"promptforge/pkg/policy"
	"promptforge/pkg/scoring"
	"promptforge/pkg/transform"
)

// Context describes one optimization request.
type Context struct {
	Target   policy.Target
	Scenario policy.Scenario
	// HistoryPrompts are previously generated prompts, newest first; they
	// feed weight learning only.
	HistoryPrompts []string
	// LocalWeights overrides learning and defaults when non-nil.
	LocalWeights *scoring.Weights
}

// Result is the outcome of one Optimize call.
type Result struct {
	OptimizedText  string
	CandidateTitle string
	Score          int
	Breakdown      map[string]int
	Warnings       []string
	// TunedWeights is non-nil only when weights were learned from history;
	// the caller is responsible for persisting it.
	TunedWeights *scoring.Weights
}

// Candidate is one rewrite hypothesis.
type Candidate struct {
	Title string
	Text  string
	Kinds []transform.Kind
}

// Optimizer is the engine instance. Safe for concurrent use.
type Optimizer struct {
	analyzer   *analysis.Analyzer
	thresholds config.Thresholds

	mu    sync.Mutex
	cache *lruCache
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithThresholds replaces the default selection thresholds.
func WithThresholds(t config.Thresholds) Option {
	return func(o *Optimizer) { o.thresholds = t.Normalized() }
}

// New returns a ready Optimizer with default thresholds.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		analyzer:   analysis.NewAnalyzer(),
		thresholds: config.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.cache = newLRUCache(o.thresholds.CacheCapacity)
	return o
}

// CacheLen reports how many results are cached. Test hook.
func (o *Optimizer) CacheLen() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cache.len()
}

// Optimize rewrites input for the given context, returning the best
// candidate that survives the anti-regression gate, or the baseline.
func (o *Optimizer) Optimize(input string, ctx Context) Result {
	if strings.TrimSpace(input) == "" {
		return Result{
			OptimizedText:  input,
			CandidateTitle: "baseline",
			Breakdown:      map[string]int{},
		}
	}

	weights, tuned := o.resolveWeights(ctx)
	key := cacheKey(ctx, weights, input)

	o.mu.Lock()
	if cached, ok := o.cache.get(key); ok {
		o.mu.Unlock()
		return cached
	}
	o.mu.Unlock()

	pol := policy.For(ctx.Target, ctx.Scenario)
	baseAnalysis := o.analyzer.Analyze(input)
	profile := gaps.Detect(o.analyzer, input, baseAnalysis, ctx.Scenario, pol)

	scoreIn := scoring.Input{
		Weights:        weights,
		Scenario:       ctx.Scenario,
		Policy:         pol,
		Intent:         profile.Intent,
		Semantic:       !profile.Scaffolding,
		Underspecified: profile.Underspecified,
		AmbiguousInput: baseAnalysis.AmbiguityCount >= 1 || baseAnalysis.VagueGoal,
	}
	baseScore := scoring.Score(o.analyzer, input, baseAnalysis, scoreIn)

	result := Result{
		OptimizedText:  input,
		CandidateTitle: "baseline",
		Score:          baseScore.Score,
		Breakdown:      baseScore.Breakdown,
		Warnings:       baseScore.Warnings,
		TunedWeights:   tuned,
	}

	if profile.Any() {
		env := transform.Env{
			Analyzer: o.analyzer,
			Intent:   profile.Intent,
			Scenario: ctx.Scenario,
			Policy:   pol,
		}
		candidates := o.generate(input, env, profile)
		if best, bestScore, ok := o.pickBest(candidates, scoreIn); ok {
			candAnalysis := o.analyzer.Analyze(best.Text)
			delta := computeDelta(input, best.Text, baseAnalysis, candAnalysis,
				profile, pol, o.thresholds.MinStructuralGain)
			if promote(bestScore.Score, baseScore.Score, delta,
				o.thresholds.MinScoreGain, o.thresholds.MinStructuralGain,
				o.thresholds.GrowthRatioCutoff) {
				result.OptimizedText = best.Text
				result.CandidateTitle = best.Title
				result.Score = bestScore.Score
				result.Breakdown = bestScore.Breakdown
				result.Warnings = bestScore.Warnings
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"candidate %q rejected: score %d vs baseline %d, structural gain %d; keeping original",
					best.Title, bestScore.Score, baseScore.Score, delta.Gain))
			}
		}
	}

	o.mu.Lock()
	o.cache.put(key, result)
	o.mu.Unlock()
	return result
}

// resolveWeights applies the priority order: explicit caller weights, then
// learned weights from sufficient history, then defaults. The second return
// is non-nil only when learning produced the vector.
func (o *Optimizer) resolveWeights(ctx Context) (scoring.Weights, *scoring.Weights) {
	if ctx.LocalWeights != nil {
		return ctx.LocalWeights.Clamped(), nil
	}
	if len(ctx.HistoryPrompts) >= scoring.LearnMinSamples {
		learned := scoring.Learn(o.analyzer, ctx.HistoryPrompts)
		return learned, &learned
	}
	return scoring.Default(), nil
}

// generate applies each plan to the input and deduplicates the results by
// normalized fingerprint, capped at MaxCandidates including the baseline.
func (o *Optimizer) generate(input string, env transform.Env, profile gaps.Profile) []Candidate {
	seen := map[string]bool{fingerprint(input): true}
	var out []Candidate
	for _, pl := range buildPlans(profile) {
		if len(out)+1 >= o.thresholds.MaxCandidates {
			break
		}
		text := strings.TrimSpace(transform.Apply(input, env, pl.kinds...))
		if text == "" {
			continue
		}
		fp := fingerprint(text)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, Candidate{Title: pl.title, Text: text, Kinds: pl.kinds})
	}
	return out
}

// pickBest scores every candidate and returns the top scorer.
func (o *Optimizer) pickBest(candidates []Candidate, in scoring.Input) (Candidate, scoring.Result, bool) {
	var best Candidate
	var bestRes scoring.Result
	found := false
	for _, c := range candidates {
		a := o.analyzer.Analyze(c.Text)
		res := scoring.Score(o.analyzer, c.Text, a, in)
		if !found || res.Score > bestRes.Score {
			best, bestRes, found = c, res, true
		}
	}
	return best, bestRes, found
}

// fingerprint folds case, whitespace, and unicode representation so that
// textually equivalent candidates collide.
func fingerprint(text string) string {
	folded := strings.ToLower(strings.Join(strings.Fields(text), " "))
	return norm.NFC.String(folded)
}

// cacheKey is the composite signature of one optimization request.
func cacheKey(ctx Context, w scoring.Weights, input string) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s",
		ctx.Target, ctx.Scenario, len(ctx.HistoryPrompts), w.Signature(), input)
}
