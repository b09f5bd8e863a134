package pitch

import (
	"fmt"
	"regexp"
	"strings"
)

var reDomainJunk = regexp.MustCompile(`[^a-z0-9.-]`)

// SanitizeDomain lowercases d and strips every character other than a-z,
// 0-9, '.' and '-'.
func SanitizeDomain(d string) string {
	return reDomainJunk.ReplaceAllString(strings.ToLower(d), "")
}

func fixedSuggestions(names, taglines [3]string, positioning string, domains [3]string) func(Chooser, Features) Suggestions {
	return func(Chooser, Features) Suggestions {
		return Suggestions{Names: names, Taglines: taglines, Positioning: positioning, Domains: domains}
	}
}

var brandingBranches = []branch[Suggestions]{
	{
		name: "healthcare_ai",
		when: func(f Features) bool { return f.Healthcare && f.Techy() },
		build: fixedSuggestions(
			[3]string{"MediMind", "HealthIQ", "CareSync"},
			[3]string{"Smart healthcare decisions", "AI-powered patient care", "Medicine meets intelligence"},
			"We're the Palantir for healthcare professionals.",
			[3]string{"medimind.ai", "healthiq.com", "caresync.ai"},
		),
	},
	{
		name: "fintech_mobile",
		when: func(f Features) bool { return f.Fintech && f.Mobile },
		build: fixedSuggestions(
			[3]string{"CashFlow", "MoneyMind", "FinanceFirst"},
			[3]string{"Money made simple", "Your financial copilot", "Banking without barriers"},
			"We're the Robinhood for everyday banking.",
			[3]string{"cashflow.ai", "moneymind.com", "financefirst.co"},
		),
	},
	{
		name: "education_ai",
		when: func(f Features) bool { return f.Education && f.Techy() },
		build: fixedSuggestions(
			[3]string{"LearnLab", "StudySmart", "EduFlow"},
			[3]string{"Learning that adapts to you", "Personalized education at scale", "Smart studying, better results"},
			"We're the Netflix for personalized learning.",
			[3]string{"learnlab.ai", "studysmart.com", "eduflow.co"},
		),
	},
	{
		name: "food_mobile",
		when: func(f Features) bool { return f.Food && f.Mobile },
		build: fixedSuggestions(
			[3]string{"FoodFlow", "MealMind", "TasteTrack"},
			[3]string{"Meals made effortless", "Smart food decisions", "Your culinary companion"},
			"We're the Spotify for meal planning.",
			[3]string{"foodflow.app", "mealmind.com", "tastetrack.co"},
		),
	},
	{
		name: "social_mobile",
		when: func(f Features) bool { return f.Social && f.Mobile },
		build: fixedSuggestions(
			[3]string{"ConnectCore", "SocialSync", "CommunityHub"},
			[3]string{"Real connections, digital world", "Where communities thrive", "Social networking reimagined"},
			"We're the Discord for professional networking.",
			[3]string{"connectcore.com", "socialsync.app", "communityhub.co"},
		),
	},
	{
		name: "productivity_collaboration",
		when: func(f Features) bool { return f.Productivity && f.Collaboration },
		build: fixedSuggestions(
			[3]string{"WorkFlow", "TaskSync", "ProductivePro"},
			[3]string{"Work smarter, not harder", "Team productivity unleashed", "Where efficiency meets simplicity"},
			"We're the Slack for project management.",
			[3]string{"workflow.ai", "tasksync.com", "productivepro.co"},
		),
	},
	{
		name: "travel_mobile",
		when: func(f Features) bool { return f.Travel && f.Mobile },
		build: fixedSuggestions(
			[3]string{"TripSync", "WanderWise", "JourneyJoy"},
			[3]string{"Travel planning perfected", "Smart trips, happy travelers", "Your adventure starts here"},
			"We're the Airbnb for travel planning.",
			[3]string{"tripsync.com", "wanderwise.app", "journeyjoy.co"},
		),
	},
	{
		name: "ai_b2b",
		when: func(f Features) bool { return f.Techy() && f.B2B },
		build: fixedSuggestions(
			[3]string{"DataDrive", "InsightIQ", "SmartScale"},
			[3]string{"AI-powered business intelligence", "Data that drives decisions", "Intelligence for every business"},
			"We're the Salesforce for AI-driven insights.",
			[3]string{"datadrive.ai", "insightiq.com", "smartscale.co"},
		),
	},
	{
		name: "blockchain",
		when: func(f Features) bool { return f.Blockchain },
		build: fixedSuggestions(
			[3]string{"ChainCore", "CryptoFlow", "BlockBridge"},
			[3]string{"Blockchain made simple", "Decentralized solutions", "Web3 for everyone"},
			"We're the Coinbase for decentralized applications.",
			[3]string{"chaincore.io", "cryptoflow.com", "blockbridge.co"},
		),
	},
	{
		name: "ecommerce_b2b",
		when: func(f Features) bool { return f.Ecommerce && f.B2B },
		build: fixedSuggestions(
			[3]string{"TradeFlow", "CommerceCore", "MarketSync"},
			[3]string{"B2B commerce simplified", "Where businesses buy better", "Trade made effortless"},
			"We're the Amazon for B2B procurement.",
			[3]string{"tradeflow.com", "commercecore.co", "marketsync.ai"},
		),
	},
	{
		name:  "key_terms",
		build: keyTermBranding,
	},
}

// keyTermBranding synthesizes names from the pitch's first two key terms.
func keyTermBranding(_ Chooser, f Features) Suggestions {
	term1 := titleWord(termAt(f.KeyTerms, 0, ""))
	if term1 == "" {
		term1 = "Smart"
	}
	term2 := titleWord(termAt(f.KeyTerms, 1, ""))
	if term2 == "" {
		term2 = "Flow"
	}
	lower1, lower2 := strings.ToLower(term1), strings.ToLower(term2)
	label1, label2 := domainLabel(lower1, "smart"), domainLabel(lower2, "flow")

	positioning := fmt.Sprintf("We're the Instagram for %s.", termAt(f.KeyTerms, 0, "users"))
	if f.B2B {
		positioning = fmt.Sprintf("We're the Slack for %s teams.", termAt(f.KeyTerms, 0, "business"))
	}

	return Suggestions{
		Names: [3]string{term1 + term2, term1 + "Hub", term2 + "Pro"},
		Taglines: [3]string{
			term1 + " solutions for modern businesses",
			"Where " + lower2 + " meets innovation",
			term1 + " made simple",
		},
		Positioning: positioning,
		Domains:     [3]string{label1 + label2 + ".com", label1 + "hub.ai", label2 + "pro.co"},
	}
}

// domainLabel is the sanitized term, or fallback when nothing survives.
func domainLabel(term, fallback string) string {
	if label := SanitizeDomain(term); label != "" {
		return label
	}
	return fallback
}

// Branding suggests names, taglines, positioning and domains for a
// classified pitch. Domains are always sanitized.
func Branding(c Chooser, f Features) (string, Suggestions) {
	name, s := decide(brandingBranches, c, f)
	for i, d := range s.Domains {
		s.Domains[i] = SanitizeDomain(d)
	}
	return name, s
}

// FormatBranding renders suggestions as the branding text block.
func FormatBranding(s Suggestions) string {
	var b strings.Builder
	b.WriteString("🧠 Names:\n")
	for _, n := range s.Names {
		fmt.Fprintf(&b, "- %s\n", n)
	}
	b.WriteString("\n💬 Taglines:\n")
	for _, t := range s.Taglines {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	fmt.Fprintf(&b, "\n🎯 Positioning Statement:\n%s\n", s.Positioning)
	b.WriteString("\n🌐 Domain Suggestions:\n")
	for i, d := range s.Domains {
		b.WriteString("- " + d)
		if i < len(s.Domains)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
