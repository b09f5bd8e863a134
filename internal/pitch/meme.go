package pitch

import "fmt"

// Meme template identifiers understood by the card renderer.
const (
	TemplateDrake               = "drake-format"
	TemplateGalaxyBrain         = "galaxy-brain"
	TemplateSpongebobMocking    = "spongebob-mocking"
	TemplateThisIsFine          = "this-is-fine"
	TemplateDistractedBoyfriend = "distracted-boyfriend"
	TemplateConfusedMathLady    = "confused-math-lady"
	TemplateWojakMask           = "wojak-mask"
)

// Templates lists every meme template the generators can emit.
func Templates() []string {
	return []string{
		TemplateDrake, TemplateGalaxyBrain, TemplateSpongebobMocking, TemplateThisIsFine,
		TemplateDistractedBoyfriend, TemplateConfusedMathLady, TemplateWojakMask,
	}
}

// Meme is a captioned meme template.
type Meme struct {
	Template   string `json:"template"`
	TopText    string `json:"topText"`
	BottomText string `json:"bottomText"`
	Caption    string `json:"caption"`
	ShareText  string `json:"shareText"`
}

func fixedMeme(options ...Meme) func(Chooser, Features) Meme {
	return func(c Chooser, _ Features) Meme {
		return pick(c, options)
	}
}

var memeBranches = []branch[Meme]{
	{
		name: "ai_blockchain",
		when: func(f Features) bool { return f.Techy() && f.Blockchain },
		build: fixedMeme(Meme{
			Template:   TemplateGalaxyBrain,
			TopText:    "Regular startup",
			BottomText: "AI + Blockchain startup",
			Caption:    "When you throw every buzzword into one pitch and call it innovation",
			ShareText:  "My startup has AI AND blockchain. Basically the next Google 🤖⛓️",
		}),
	},
	{
		name: "competitor_analogy",
		when: func(f Features) bool { return f.CompetitorAnalogy },
		build: func(_ Chooser, f Features) Meme {
			service := f.AnalogyCategory
			if service == "" {
				service = "everything"
			}
			brand := titleWord(f.AnalogyBrand)
			if brand == "" {
				brand = "Uber"
			}
			return Meme{
				Template:   TemplateDrake,
				TopText:    "Original business model",
				BottomText: fmt.Sprintf("%s for %s", brand, service),
				Caption:    fmt.Sprintf("Because what the world really needs is another \"%s for X\" startup", brand),
				ShareText:  fmt.Sprintf("Just pitched the \"%s for %s\" - totally original idea, right? 🚗📱", brand, service),
			}
		},
	},
	{
		name: "ai",
		when: func(f Features) bool { return f.Techy() },
		build: fixedMeme(
			Meme{
				Template:   TemplateSpongebobMocking,
				TopText:    "We use AI to revolutionize",
				BottomText: "wE uSe Ai To ReVoLuTiOnIzE",
				Caption:    "Every AI startup pitch ever",
				ShareText:  "Another day, another \"AI-powered\" startup that probably just uses ChatGPT API 🤖",
			},
			Meme{
				Template:   TemplateWojakMask,
				TopText:    "\"Proprietary AI engine\"",
				BottomText: "One API call with a nice font",
				Caption:    "When the deep tech is mostly a prompt",
				ShareText:  "Our AI is proprietary. The API key is ours, anyway 🤖🎭",
			},
		),
	},
	{
		name: "blockchain",
		when: func(f Features) bool { return f.Blockchain },
		build: fixedMeme(Meme{
			Template:   TemplateThisIsFine,
			TopText:    "Our blockchain solution",
			BottomText: "will definitely work",
			Caption:    "When your entire business model depends on crypto not crashing",
			ShareText:  "Blockchain will solve everything! (Narrator: It did not solve everything) ⛓️💸",
		}),
	},
	{
		name: "social",
		when: func(f Features) bool { return f.Community },
		build: fixedMeme(Meme{
			Template:   TemplateDistractedBoyfriend,
			TopText:    "Existing social networks",
			BottomText: "Our revolutionary social platform",
			Caption:    "Every social media startup thinking they'll dethrone Facebook",
			ShareText:  "Building the next Facebook! (User #1: my mom) 📱👥",
		}),
	},
	{
		name: "buzzword_vague",
		when: func(f Features) bool { return f.Buzzwords && f.Vague },
		build: fixedMeme(Meme{
			Template:   TemplateConfusedMathLady,
			TopText:    "Trying to understand",
			BottomText: "what this startup actually does",
			Caption:    "When your pitch has more buzzwords than actual substance",
			ShareText:  "My startup pitch was so buzzword-heavy even I forgot what we do 🤔💭",
		}),
	},
	{
		name: "vague",
		when: func(f Features) bool { return f.Vague },
		build: fixedMeme(Meme{
			Template:   TemplateDrake,
			TopText:    "Clear business model",
			BottomText: "Vague \"platform\" that does everything",
			Caption:    "Why solve one problem when you can solve zero problems really well?",
			ShareText:  "We're building a platform! (What kind? That's... complicated) 🤷‍♂️",
		}),
	},
	{
		name: "key_terms",
		build: func(_ Chooser, f Features) Meme {
			return Meme{
				Template:   TemplateDrake,
				TopText:    "Traditional approach",
				BottomText: fmt.Sprintf("%s startup approach", termAt(f.KeyTerms, 0, "Our")),
				Caption:    fmt.Sprintf("Another startup trying to disrupt %s", termAt(f.KeyTerms, 1, "everything")),
				ShareText:  fmt.Sprintf("Just got roasted by PitchSlap.ai for my %s startup idea 😂🔥", termAt(f.KeyTerms, 0, "amazing")),
			}
		},
	},
}

// MemeFor picks a meme template and captions for a classified pitch.
func MemeFor(c Chooser, f Features) (string, Meme) {
	return decide(memeBranches, c, f)
}
