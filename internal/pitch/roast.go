package pitch

import "fmt"

const roastHeader = "🔥 Roast:\n"

// tinyPitchLength is the rune length below which the generic roast mocks the
// pitch for being too short.
const tinyPitchLength = 30

var roastBranches = []branch[string]{
	{
		name: "ai_blockchain",
		when: func(f Features) bool { return f.AI && f.Blockchain },
		build: variants(
			"An AI-powered blockchain startup? Did you just throw every buzzword from 2021 into a blender? Your pitch reads like a crypto bro's fever dream. Next you'll tell me it's also carbon-negative and cures world hunger.",
			"AI and blockchain in one pitch? That's not a startup, that's a buzzword casserole. Somewhere a VC just felt a disturbance in their fund and didn't know why.",
			"Machine learning on the blockchain. Bold move combining the two things investors stopped pretending to understand. Your token probably predicts its own crash with 99% accuracy.",
		),
	},
	{
		name: "competitor_analogy",
		when: func(f Features) bool { return f.CompetitorAnalogy },
		build: func(c Chooser, f Features) string {
			category := f.AnalogyCategory
			if category == "" {
				category = "something"
			}
			brand := titleWord(f.AnalogyBrand)
			if brand == "" {
				brand = "Uber"
			}
			return fmt.Sprintf(pick(c, []string{
				"'%[1]s for %[2]s'? How refreshingly unoriginal! Did you get this idea from a 2015 startup bingo card? Your business model has more holes than a co-working space's WiFi password policy. Try solving an actual problem instead of copy-pasting successful companies.",
				"Ah yes, the '%[1]s for %[2]s' play. Bold of you to assume the world was waiting for an app to handle %[2]s. Your pitch deck is just the %[1]s logo with a new color.",
				"'%[1]s for %[2]s' is not a business model, it's a Mad Libs answer. Somewhere a 2014 accelerator is asking for its pitch back.",
			}), brand, category)
		},
	},
	{
		name: "vague",
		when: func(f Features) bool { return f.Vague },
		build: variants(
			"Your pitch is vaguer than a politician's campaign promise. If you can't explain your idea clearly, users definitely won't understand it either. Try describing it to your grandmother - if she doesn't get it, neither will investors with actual money.",
			"A 'platform'? A 'solution'? Congratulations, you've described every company since 1998. Tell me what it actually does before my coffee gets cold.",
			"This pitch has the specificity of a horoscope. It could be a fintech app or a yoga retreat and I honestly can't tell which.",
		),
	},
	{
		name: "ai_personalization",
		when: func(f Features) bool { return f.AI && f.Personalized },
		build: variants(
			"An AI that provides 'personalized recommendations'? Groundbreaking! It's like Netflix's algorithm, but worse and with venture capital delusions. Your AI probably recommends the same three things to everyone.",
			"Personalized AI recommendations, how novel. Your model will learn exactly one thing about each user: that they uninstalled the app.",
		),
	},
	{
		name: "ai",
		when: func(f Features) bool { return f.AI },
		build: variants(
			"Another AI startup claiming to 'revolutionize' everything? Your machine learning model probably has the intelligence of a Magic 8-Ball with commitment issues. Let me guess - it's 'powered by advanced algorithms' that you definitely didn't copy from a GitHub tutorial.",
			"AI-powered this, AI-enhanced that. Your artificial intelligence is about as intelligent as autocorrect suggesting 'duck' when you meant something else. Maybe focus on actual intelligence before adding the artificial part.",
			"Your AI startup sounds like it was pitched by someone who just discovered ChatGPT exists. Newsflash: slapping 'AI' on a basic app doesn't make it revolutionary - it makes it Tuesday in Silicon Valley.",
		),
	},
	{
		name: "blockchain",
		when: func(f Features) bool { return f.Blockchain },
		build: variants(
			"Blockchain in 2024? That's like starting a fidget spinner company in 2023. Your decentralized dreams are more unstable than Terra Luna's price chart. Maybe solve real problems instead of creating digital Monopoly money.",
			"Web3 startup alert! Because what the world desperately needs is more ways to lose money on digital nothing. Your whitepaper probably has more fiction than a Marvel screenplay and less substance than a TikTok dance.",
			"Another crypto project promising to 'democratize finance'? The only thing you're democratizing is disappointment. Your token will have fewer holders than a Google+ reunion party.",
		),
	},
	{
		name: "social",
		when: func(f Features) bool { return f.Community },
		build: variants(
			"A new social platform? Because clearly what humanity needs is MORE ways to doom-scroll and compare ourselves to others. Your 'unique approach' to social networking is about as fresh as MySpace's last update.",
			"Trying to compete with Meta and TikTok? That's like bringing a water gun to a nuclear war. Your social platform will have fewer active users than a LinkedIn post about synergy.",
			"Another social network that will 'bring people together'? The only thing you'll bring together is investors' regret and users' confusion about why this exists.",
		),
	},
	{
		name: "hype_app",
		when: func(f Features) bool { return f.App && f.Hype },
		build: variants(
			"Another 'disruptive' app? The only thing you're disrupting is investors' patience. Your revolutionary idea sounds like every other app that promised to change the world but couldn't even change their user count from zero.",
			"A 'game-changing' app. The only game it changes is how fast your runway disappears. Your download chart is going to look like a flatline with a logo.",
		),
	},
	{
		name: "generic",
		build: func(c Chooser, f Features) string {
			if f.Length < tinyPitchLength {
				return "Your pitch is shorter than a TikTok attention span. Give me something to work with here - this isn't Twitter, you can use more than 280 characters to explain your world-changing idea."
			}
			return pick(c, []string{
				"This pitch has the same energy as 'What if Facebook, but for dogs?' Your target market is apparently 'everyone with money' and your competitive advantage is 'we'll do it better.' Groundbreaking stuff, truly.",
				"I've seen more innovation in a gas station vending machine. Your idea is so generic, it could be the default template for 'How NOT to pitch investors.' But hey, at least you're consistent in your mediocrity!",
				"Your business model is more confusing than IKEA instructions written in ancient Sanskrit. Maybe start with explaining what problem you're actually solving - and no, 'inefficiency' isn't a specific problem.",
				"Congratulations on creating a solution that nobody asked for to a problem that doesn't exist! Your market research was probably just asking your college roommates what they think over pizza.",
			})
		},
	},
}

// Roast builds the roast text for a classified pitch and reports the branch
// that produced it.
func Roast(c Chooser, f Features) (string, string) {
	name, body := decide(roastBranches, c, f)
	return name, roastHeader + body
}
