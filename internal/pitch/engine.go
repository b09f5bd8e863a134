package pitch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultMinLength is the shortest trimmed pitch, in runes, the engine will
// classify.
const DefaultMinLength = 10

// Outcome describes how a Generate call resolved.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeShortCircuit Outcome = "short_circuit"
	OutcomeFallback     Outcome = "fallback"
)

// Event is reported to the Observer after every Generate call.
type Event struct {
	Mode    Mode
	Outcome Outcome
	Branch  string
	Err     error
}

// Observer receives one Event per Generate call. A panicking Observer is
// ignored.
type Observer func(Event)

// Engine dispatches pitches to the mode generators. The zero value is not
// usable; construct with New. An Engine is safe for concurrent use as long
// as its Chooser is.
type Engine struct {
	chooser   Chooser
	minLength int
	delay     time.Duration
	classify  func(string) Features
	observer  Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithChooser sets the phrasing chooser.
func WithChooser(c Chooser) Option {
	return func(e *Engine) {
		if c != nil {
			e.chooser = c
		}
	}
}

// WithMinLength overrides DefaultMinLength.
func WithMinLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minLength = n
		}
	}
}

// WithThinkingDelay makes GenerateContext pause before answering.
func WithThinkingDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithObserver registers a callback for every Generate call.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithClassifier replaces Classify. It exists for tests that need to force
// a generator failure.
func WithClassifier(fn func(string) Features) Option {
	return func(e *Engine) {
		if fn != nil {
			e.classify = fn
		}
	}
}

// New builds an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		chooser:   RandomChooser{},
		minLength: DefaultMinLength,
		classify:  Classify,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MinLength reports the configured minimum pitch length.
func (e *Engine) MinLength() int {
	return e.minLength
}

// Generate runs text through the generator for mode. It never panics and
// always returns a response whose primary field is populated for a known
// mode.
func (e *Engine) Generate(text string, mode Mode) (resp Response) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < e.minLength {
		resp = shortCircuit(mode)
		if resp.Primary() == "" {
			resp = failure(mode)
			e.notify(Event{Mode: mode, Outcome: OutcomeFallback, Branch: resp.Branch, Err: ErrUnknownMode})
			return resp
		}
		e.notify(Event{Mode: mode, Outcome: OutcomeShortCircuit, Branch: resp.Branch})
		return resp
	}

	defer func() {
		if r := recover(); r != nil {
			resp = failure(mode)
			e.notify(Event{Mode: mode, Outcome: OutcomeFallback, Branch: resp.Branch, Err: fmt.Errorf("generator panic: %v", r)})
		}
	}()

	resp, err := e.dispatch(trimmed, mode)
	if err == nil && strings.TrimSpace(resp.Primary()) == "" {
		err = fmt.Errorf("empty %s output", mode)
	}
	if err != nil {
		resp = failure(mode)
		e.notify(Event{Mode: mode, Outcome: OutcomeFallback, Branch: resp.Branch, Err: err})
		return resp
	}

	e.notify(Event{Mode: mode, Outcome: OutcomeOK, Branch: resp.Branch})
	return resp
}

// GenerateContext is Generate preceded by the configured thinking delay.
// A cancelled context skips the rest of the delay but still returns a
// complete response.
func (e *Engine) GenerateContext(ctx context.Context, text string, mode Mode) Response {
	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}
	return e.Generate(text, mode)
}

// Analyze classifies text and scores it without picking a mode.
func (e *Engine) Analyze(text string) (Features, ScoreSet) {
	f := e.classify(text)
	return f, Score(f, text)
}

func (e *Engine) dispatch(text string, mode Mode) (Response, error) {
	f := e.classify(text)
	r := Response{Mode: mode}

	switch mode {
	case ModeRoast:
		r.Branch, r.Roast = Roast(e.chooser, f)
	case ModeFixIt:
		r.Branch, r.FixedPitch = FixIt(e.chooser, f)
	case ModeScorecard:
		card := BuildScorecard(text, f)
		scores, commentary := card.Scores, card.Commentary
		r.Branch = "scorecard"
		r.Scorecard = card.String()
		r.StartupName = card.StartupName
		r.Scores = &scores
		r.Commentary = &commentary
		r.Verdict = card.Verdict
	case ModeBranding:
		var s Suggestions
		r.Branch, s = Branding(e.chooser, f)
		r.Suggestions = &s
		r.Branding = FormatBranding(s)
	case ModeMeme:
		var m Meme
		r.Branch, m = MemeFor(e.chooser, f)
		r.setMeme(m)
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}

	return r, nil
}

// notify reports ev and swallows observer panics so they cannot replace a
// good response or escape Generate.
func (e *Engine) notify(ev Event) {
	if e.observer == nil {
		return
	}
	defer func() { _ = recover() }()
	e.observer(ev)
}

var defaultEngine = New()

// Generate runs text through the default engine.
func Generate(text string, mode Mode) Response {
	return defaultEngine.Generate(text, mode)
}
