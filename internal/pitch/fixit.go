package pitch

import (
	"fmt"
	"strings"
)

const fixItHeader = "🛠️ FixIt:\n"

var fixItBranches = []branch[string]{
	{
		name: "healthcare_ai",
		when: func(f Features) bool { return f.Healthcare && f.Techy() },
		build: variants(
			"AI-powered healthcare platform reducing diagnostic errors by 40% for medical professionals. Analyzes patient data to suggest treatment options. SaaS model targeting hospitals and clinics. Early trials show 25% faster diagnosis times.",
			"Medical AI assistant helping doctors make faster, more accurate diagnoses. Our algorithm processes symptoms and medical history to flag potential conditions. Revenue from hospital subscriptions. Used by 50+ healthcare providers.",
			"Healthcare analytics platform using AI to predict patient outcomes and optimize treatment plans. Reduces readmission rates by 30%. Subscription model for hospitals. Pilot program with 3 major health systems showing strong results.",
		),
	},
	{
		name: "fintech_mobile",
		when: func(f Features) bool { return f.Fintech && f.Mobile },
		build: variants(
			"Mobile banking app for freelancers and gig workers with instant payment processing and expense tracking. Solves cash flow issues for 57M independent workers. Revenue from transaction fees and premium features.",
			"Personal finance app that automatically categorizes expenses and provides spending insights. Helps users save 15% more monthly through smart budgeting. Freemium model with premium analytics. 10K+ active users.",
			"Investment platform making stock trading accessible to Gen-Z through micro-investing and educational content. Commission-free trades with premium research subscriptions. Growing 20% monthly among 18-25 demographic.",
		),
	},
	{
		name: "ecommerce_b2b",
		when: func(f Features) bool { return f.Ecommerce && f.B2B },
		build: variants(
			"B2B marketplace connecting manufacturers directly with retailers, cutting out middlemen and reducing costs by 25%. Commission-based revenue model. 200+ suppliers and 500+ buyers already onboarded.",
			"Inventory management software for e-commerce businesses that predicts demand and automates reordering. Reduces stockouts by 60% and overstock by 40%. SaaS pricing starting at $200/month.",
			"E-commerce analytics platform helping online retailers optimize pricing and product placement. Increases average order value by 18%. Used by 100+ mid-market retailers. Annual contracts averaging $5K.",
		),
	},
	{
		name: "social_mobile",
		when: func(f Features) bool { return f.Social && f.Mobile },
		build: variants(
			"Social fitness app where users compete in real-world challenges and earn rewards from local businesses. Gamifies exercise with location-based competitions. Revenue from business partnerships and premium memberships.",
			"Professional networking app for remote workers to find collaboration partners and project opportunities. Unlike LinkedIn, focuses on skill-based matching for short-term projects. Freemium with premium matching.",
			"Community platform for hobby enthusiasts to share projects, get feedback, and find local meetups. Monetizes through premium features and marketplace for supplies. 15K+ active creators across 50+ hobby categories.",
		),
	},
	{
		name: "education_ai",
		when: func(f Features) bool { return f.Education && f.Techy() },
		build: variants(
			"AI tutoring platform that adapts to individual learning styles and provides personalized study plans. Improves test scores by 35% on average. Subscription model for students and schools. Pilot with 10 school districts.",
			"Online learning platform for professional skills with AI-powered career path recommendations. Helps working professionals upskill for promotions. Corporate subscriptions and individual plans. 5K+ active learners.",
			"Educational assessment tool using AI to identify learning gaps and suggest targeted interventions. Used by teachers to personalize instruction. School district licenses starting at $10K annually.",
		),
	},
	{
		name: "food_mobile",
		when: func(f Features) bool { return f.Food && f.Mobile },
		build: variants(
			"Meal planning app that generates shopping lists based on dietary preferences and local store prices. Saves families 20% on grocery bills and 3 hours weekly. Freemium with premium meal plans and recipes.",
			"Restaurant management platform helping small eateries optimize menu pricing and reduce food waste. Increases profit margins by 15% through data-driven insights. Monthly SaaS subscriptions for restaurants.",
			"Food delivery optimization software for restaurants to manage multiple delivery platforms from one dashboard. Reduces order processing time by 50%. Used by 200+ restaurants across 5 cities.",
		),
	},
	{
		name: "marketplace",
		when: func(f Features) bool { return f.CompetitorAnalogy },
		build: func(c Chooser, f Features) string {
			category := f.AnalogyCategory
			if category == "" {
				category = "services"
			}
			return fmt.Sprintf(pick(c, []string{
				"On-demand %[1]s marketplace connecting customers with verified service providers in under 30 minutes. Solves scheduling and trust issues in the %[1]s industry. 20%% commission model with insurance coverage.",
				"Local %[1]s platform where customers can book, pay, and review services seamlessly. Focuses on quality over quantity with vetted professionals. Revenue from booking fees and premium listings.",
				"Mobile-first %[1]s service that guarantees availability and quality through our network of trained professionals. Subscription model for frequent users plus per-service fees.",
			}), category)
		},
	},
	{
		name: "ai_b2b",
		when: func(f Features) bool { return f.Techy() && f.B2B },
		build: variants(
			"AI-powered business intelligence platform that turns company data into actionable insights. Helps executives make faster decisions with 90% accuracy. Enterprise SaaS model with custom implementations.",
			"Machine learning tool for sales teams that predicts which leads are most likely to convert. Increases close rates by 30% and reduces sales cycle time. CRM integration with per-seat pricing.",
			"AI customer service platform that handles 80% of support tickets automatically while escalating complex issues to humans. Reduces support costs by 60%. Usage-based pricing model.",
		),
	},
	{
		name: "productivity_collaboration",
		when: func(f Features) bool { return f.Productivity && f.Collaboration },
		build: variants(
			"Project tracking software for distributed teams that turns status meetings into async updates. Cuts meeting time by 40% for teams of 10-200. Per-seat SaaS pricing at $12/user/month.",
			"Shared task board for agencies that links client requests to billable work automatically. Recovers 6+ billable hours per person each month. Tiered subscriptions by team size.",
			"Workflow coordination tool for operations teams that flags blocked work before deadlines slip. Reduces missed deadlines by 35%. Used by 80+ teams in a paid pilot.",
		),
	},
	{
		name: "travel_mobile",
		when: func(f Features) bool { return f.Travel && f.Mobile },
		build: variants(
			"Travel planning app that creates personalized itineraries based on budget, interests, and travel style. Saves 10+ hours of research per trip. Premium subscriptions and booking commissions.",
			"Mobile trip organizer for group travel that splits costs and syncs bookings in one place. Ends the spreadsheet chaos for 20M group trips a year. Revenue from booking commissions.",
			"Last-minute hotel app for business travelers that guarantees a vetted room within 15 minutes. Corporate travel accounts plus a 12% booking fee.",
		),
	},
	{
		name: "blockchain",
		when: func(f Features) bool { return f.Blockchain },
		build: variants(
			"Payment settlement network for cross-border suppliers that cuts transfer fees from 6% to under 1%. Uses a permissioned ledger so finance teams get an audit trail. Per-transaction pricing with volume tiers.",
			"Supply chain provenance tool that lets food distributors prove origin and cold-chain compliance to retailers. Reduces recall investigation time by 70%. Annual licenses per distribution center.",
		),
	},
	{
		name: "buzzword_vague",
		when: func(f Features) bool { return f.Buzzwords && f.Vague },
		build: variants(
			"Project management software for construction teams that tracks progress, costs, and safety compliance in real-time. Reduces project delays by 25%. Annual licenses for contractors starting at $2K.",
			"Customer analytics platform for retail businesses that identifies buying patterns and predicts inventory needs. Increases sales by 18% through better product placement. Monthly SaaS subscriptions.",
			"Workflow automation tool for accounting firms that eliminates repetitive data entry and reduces errors by 95%. Saves 10+ hours weekly per accountant. Professional services pricing model.",
		),
	},
	{
		name: "b2b_solution",
		when: func(f Features) bool { return f.B2B && f.Solution },
		build: variants(
			"Cloud-based inventory system for small manufacturers that prevents stockouts and reduces carrying costs by 30%. Real-time tracking with automated reorder points. Monthly subscriptions based on inventory volume.",
			"Employee scheduling software for retail chains that optimizes staff allocation and reduces labor costs by 15%. Handles complex scheduling rules and compliance requirements. Per-location pricing model.",
			"Document management platform for law firms that organizes case files and automates compliance reporting. Reduces document search time by 80%. Professional services with annual contracts.",
		),
	},
	{
		name: "consumer_mobile",
		when: func(f Features) bool { return f.B2C && f.Mobile },
		build: variants(
			"Personal productivity app that combines calendar, tasks, and notes with AI-powered prioritization. Helps busy professionals manage their day more effectively. Freemium with premium AI features.",
			"Home maintenance app that reminds homeowners about seasonal tasks and connects them with local service providers. Prevents costly repairs through proactive maintenance. Revenue from service referrals.",
			"Travel planning app that creates personalized itineraries based on budget, interests, and travel style. Saves 10+ hours of research per trip. Premium subscriptions and booking commissions.",
		),
	},
	{
		name:  "generic",
		build: genericRewrite,
	},
}

// genericRewrite builds a rewrite from the pitch's own key terms.
func genericRewrite(_ Chooser, f Features) string {
	audience := choose(f.B2B, "businesses", "users")
	switch {
	case f.HasMetrics && len(f.KeyTerms) > 2:
		return fmt.Sprintf(
			"%s platform that helps %s %s %s through data-driven insights. Early metrics show strong user engagement. %s with proven market demand.",
			titleWord(f.KeyTerms[0]), audience, choose(f.Problem, "solve", "improve"), f.KeyTerms[1],
			choose(f.B2B, "B2B SaaS model", "Freemium model"),
		)
	case f.Target && f.Solution:
		return fmt.Sprintf(
			"Software solution helping %s streamline %s and reduce costs. Addresses key pain points in the %s through automation. Revenue from %s.",
			choose(f.B2B, "businesses", "consumers"), termAt(f.KeyTerms, 0, "operations"), termAt(f.KeyTerms, 1, "market"),
			choose(f.B2B, "enterprise subscriptions", "premium features"),
		)
	default:
		return fmt.Sprintf(
			"Digital platform connecting %s with %s they need. Solves %s problems through better %s. Monetizes through %s.",
			audience, termAt(f.KeyTerms, 0, "services"), termAt(f.KeyTerms, 1, "efficiency"), termAt(f.KeyTerms, 2, "technology"),
			choose(f.B2B, "subscription fees", "transaction commissions"),
		)
	}
}

// FixIt rewrites a classified pitch and reports the branch that produced it.
func FixIt(c Chooser, f Features) (string, string) {
	name, body := decide(fixItBranches, c, f)
	return name, fixItHeader + strings.TrimSpace(body)
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
