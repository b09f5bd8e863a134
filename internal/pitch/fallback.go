package pitch

// shortCircuit returns the canned "need more detail" response for mode.
// Scorecard responses carry all-zero scores.
func shortCircuit(mode Mode) Response {
	r := Response{Mode: mode, Branch: "insufficient_input"}
	switch mode {
	case ModeRoast:
		r.Roast = roastHeader + "Your pitch is shorter than a TikTok attention span. Give me something to work with here - describe your idea like you're trying to convince your skeptical mother to invest her retirement fund."
	case ModeFixIt:
		r.FixedPitch = fixItHeader + "I need more details to fix your pitch. Describe: What problem does your startup solve? Who are your customers? How do you make money?"
	case ModeScorecard:
		r.Scorecard = "💯 Scorecard:\nCan't score what doesn't exist. Give me an actual pitch to evaluate."
		r.Scores = &ScoreSet{}
		r.Verdict = "🤡 Invisible Startup"
	case ModeBranding:
		s := Suggestions{
			Names:       [3]string{"MysteryStartup", "VagueVenture", "UnknownCorp"},
			Taglines:    [3]string{"We exist, probably", "Doing something, somewhere", "Your guess is as good as ours"},
			Positioning: "We're the startup that forgot to explain what we do.",
			Domains:     [3]string{"mystery.com", "vague.ai", "unknown.co"},
		}
		r.Suggestions = &s
		r.Branding = FormatBranding(s)
	case ModeMeme:
		r.setMeme(Meme{
			Template:   TemplateConfusedMathLady,
			TopText:    "When someone asks",
			BottomText: "What your startup does",
			Caption:    "Pitch so vague even we're confused",
			ShareText:  "My startup pitch was so bad even the AI gave up 😅",
		})
	}
	return r
}

// failure returns the fallback content for mode after a generator failed.
// The message is user visible.
func failure(mode Mode) Response {
	r := Response{Mode: mode, Branch: "fallback"}
	switch mode {
	case ModeRoast:
		r.Roast = roastHeader + "Even our AI is speechless. That's either really good or really, really bad. We're betting on the latter."
		r.Error = "AI temporarily unavailable - but the roast must go on!"
	case ModeFixIt:
		r.FixedPitch = fixItHeader + "Your pitch needs work, but our AI is taking a coffee break. Try describing your startup's core problem, solution, and target market in simple terms."
		r.Error = "AI temporarily unavailable - but we can still help!"
	case ModeScorecard:
		r.Scorecard = "💯 Scorecard:\nOur AI is having an existential crisis trying to score this pitch. That's... not a good sign."
		r.Scores = &ScoreSet{Originality: 25, MarketSize: 30, Monetization: 20, Clarity: 15, TeamPotential: 35, Total: 125}
		r.Verdict = "🤡 AI Malfunction Special"
		r.Error = "AI temporarily unavailable - but we can still judge!"
	case ModeBranding:
		s := Suggestions{
			Names:       [3]string{"GenericCorp", "StartupThing", "BusinessApp"},
			Taglines:    [3]string{"We do stuff", "Making things better", "Innovation happens here"},
			Positioning: "We're the company for people who need things.",
			Domains:     [3]string{"generic.com", "startup.ai", "business.co"},
		}
		r.Suggestions = &s
		r.Branding = FormatBranding(s)
		r.Error = "AI temporarily unavailable - but we can still brand!"
	case ModeMeme:
		r.setMeme(Meme{
			Template:   TemplateDrake,
			TopText:    "Regular startup pitch",
			BottomText: "Your confusing idea",
			Caption:    "When your pitch makes zero sense but you call it \"disruptive\"",
			ShareText:  "Just got meme-slapped by PitchSlap.ai 😂",
		})
		r.Error = "AI temporarily unavailable - but we can still meme!"
	default:
		r.Error = "unsupported mode"
	}
	return r
}

func (r *Response) setMeme(m Meme) {
	r.Template = m.Template
	r.TopText = m.TopText
	r.BottomText = m.BottomText
	r.Caption = m.Caption
	r.ShareText = m.ShareText
}
