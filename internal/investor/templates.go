// Package investor implements the investor simulator: randomly generated
// startup deals, invest/pass evaluation and VC career progression.
package investor

// Quality is the hidden grade of a generated deal.
type Quality string

const (
	QualityGreat    Quality = "great"
	QualityMediocre Quality = "mediocre"
	QualityTerrible Quality = "terrible"
)

// Outcome is what actually happened to the startup.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomePivot   Outcome = "pivot"
)

// Describe renders the outcome as a sentence tail.
func (o Outcome) Describe() string {
	switch o {
	case OutcomeSuccess:
		return "became a major success with a successful exit"
	case OutcomeFailure:
		return "failed and shut down within 2 years"
	case OutcomePivot:
		return "pivoted to a different model with mixed results"
	default:
		return "had an unclear outcome"
	}
}

type slot struct {
	name   string
	values []string
}

type dealTemplate struct {
	category   string
	text       string
	slots      []slot
	outcome    Outcome
	greenFlags []string
	redFlags   []string
}

var qualities = []Quality{QualityGreat, QualityMediocre, QualityTerrible}

var templates = map[Quality][]dealTemplate{
	QualityGreat: {
		{
			category: "B2B SaaS",
			text:     "{company} is a {product} that helps {target} {solution}. We have {traction} and {revenue}. Our team includes {founders}.",
			slots: []slot{
				{"company", []string{"DataFlow", "SalesForce Pro", "WorkStream", "CloudSync", "TeamHub"}},
				{"product", []string{"project management platform", "CRM solution", "analytics dashboard", "automation tool"}},
				{"target", []string{"mid-market companies", "enterprise sales teams", "growing startups", "remote teams"}},
				{"solution", []string{"reduce project delays by 40%", "increase sales conversion by 60%", "automate repetitive tasks", "improve team collaboration"}},
				{"traction", []string{"500+ paying customers", "150% YoY growth", "$2M ARR", "95% customer retention"}},
				{"revenue", []string{"$50K MRR growing 15% monthly", "$100K MRR with 20% margins", "profitable since month 6"}},
				{"founders", []string{"ex-Google PM and ex-Salesforce engineer", "former McKinsey consultant and Stanford CS PhD", "repeat entrepreneur with previous exit"}},
			},
			outcome:    OutcomeSuccess,
			greenFlags: []string{"Strong traction", "Experienced team", "Clear market need", "Proven revenue model"},
		},
		{
			category: "FinTech",
			text:     "{company} democratizes {service} for {target}. We've processed {volume} and have {partnerships}. Led by {founders}.",
			slots: []slot{
				{"company", []string{"PayFlow", "InvestSmart", "CreditBoost", "WealthWise", "MoneyMind"}},
				{"service", []string{"investment management", "credit scoring", "payment processing", "financial planning"}},
				{"target", []string{"Gen-Z consumers", "small business owners", "gig economy workers", "underbanked populations"}},
				{"volume", []string{"$10M in transactions", "$5M in managed assets", "50K+ users onboarded"}},
				{"partnerships", []string{"partnerships with 3 major banks", "integrations with Plaid and Stripe", "backing from Visa"}},
				{"founders", []string{"former Goldman Sachs VP and fintech veteran", "ex-Square engineer and Wharton MBA", "serial fintech entrepreneur"}},
			},
			outcome:    OutcomeSuccess,
			greenFlags: []string{"Regulated industry expertise", "Strong partnerships", "Growing market", "Experienced team"},
		},
	},
	QualityMediocre: {
		{
			category: "Consumer App",
			text:     "{company} is a {type} app for {target}. We have {users} and plan to monetize through {monetization}. Founded by {founders}.",
			slots: []slot{
				{"company", []string{"SocialHub", "ConnectMe", "ShareSpace", "FriendFinder", "ChatFlow"}},
				{"type", []string{"social networking", "dating", "productivity", "lifestyle", "entertainment"}},
				{"target", []string{"millennials", "college students", "young professionals", "busy parents"}},
				{"users", []string{"10K downloads", "5K monthly active users", "2K registered users", "15K app installs"}},
				{"monetization", []string{"premium subscriptions", "in-app purchases", "advertising", "freemium model"}},
				{"founders", []string{"recent college graduates", "first-time entrepreneurs", "former startup employees", "industry newcomers"}},
			},
			outcome:  OutcomePivot,
			redFlags: []string{"Crowded market", "Unclear monetization", "Limited traction", "Inexperienced team"},
		},
		{
			category: "E-commerce",
			text:     "{company} sells {products} online to {target}. We've done {sales} and are expanding to {expansion}. Team has {experience}.",
			slots: []slot{
				{"company", []string{"EcoGoods", "TechMart", "StyleBox", "HomeEssentials", "GadgetHub"}},
				{"products", []string{"sustainable products", "tech accessories", "fashion items", "home goods", "electronics"}},
				{"target", []string{"eco-conscious consumers", "tech enthusiasts", "fashion-forward millennials", "homeowners"}},
				{"sales", []string{"$50K in revenue", "$25K in first quarter", "$100K lifetime sales", "$30K monthly revenue"}},
				{"expansion", []string{"new product categories", "international markets", "B2B sales", "retail partnerships"}},
				{"experience", []string{"e-commerce background", "retail experience", "marketing expertise", "operations knowledge"}},
			},
			outcome:  OutcomeFailure,
			redFlags: []string{"Competitive market", "Low margins", "Inventory challenges", "Customer acquisition costs"},
		},
	},
	QualityTerrible: {
		{
			category: "Blockchain/Crypto",
			text:     "{company} is revolutionizing {industry} with blockchain technology. Our {token} will disrupt {target}. We're raising {amount} for {purpose}.",
			slots: []slot{
				{"company", []string{"CryptoFlow", "BlockChain Solutions", "TokenVerse", "DecentraApp", "Web3 Innovations"}},
				{"industry", []string{"supply chain", "healthcare", "education", "real estate", "entertainment"}},
				{"token", []string{"utility token", "governance token", "NFT marketplace", "DeFi protocol", "DAO platform"}},
				{"target", []string{"traditional industries", "centralized systems", "outdated processes", "legacy platforms"}},
				{"amount", []string{"$5M", "$10M", "$2M", "$50M", "$1M"}},
				{"purpose", []string{"platform development", "token distribution", "marketing", "team expansion", "partnerships"}},
			},
			outcome:  OutcomeFailure,
			redFlags: []string{"Buzzword heavy", "No clear use case", "Regulatory risks", "Market timing"},
		},
		{
			category: "AI Everything",
			text:     "{company} uses AI to {action} for {target}. Our proprietary algorithm {capability}. We're the {comparison} but with AI.",
			slots: []slot{
				{"company", []string{"AI Solutions", "SmartTech", "IntelliApp", "NeuralFlow", "AlgoMind"}},
				{"action", []string{"optimize workflows", "predict outcomes", "automate processes", "enhance productivity", "revolutionize operations"}},
				{"target", []string{"businesses", "consumers", "enterprises", "startups", "organizations"}},
				{"capability", []string{"learns from data", "provides insights", "makes predictions", "automates decisions", "optimizes performance"}},
				{"comparison", []string{"Uber", "Airbnb", "Netflix", "Spotify", "Amazon"}},
			},
			outcome:  OutcomeFailure,
			redFlags: []string{"Vague AI claims", "No technical depth", "Overused comparisons", "Unclear differentiation"},
		},
		{
			category: "Uber for X",
			text:     "{company} is the Uber for {service}. Users can {action} through our app. We take a {commission} commission and have {traction}.",
			slots: []slot{
				{"company", []string{"ServiceFlow", "OnDemandPro", "QuickConnect", "InstantService", "AppConnect"}},
				{"service", []string{"dog walking", "lawn care", "house cleaning", "grocery shopping", "laundry"}},
				{"action", []string{"book services instantly", "find providers nearby", "schedule appointments", "pay securely"}},
				{"commission", []string{"20%", "15%", "25%", "30%", "10%"}},
				{"traction", []string{"100 users", "50 service providers", "200 downloads", "10 completed bookings"}},
			},
			outcome:  OutcomeFailure,
			redFlags: []string{"Oversaturated model", "High customer acquisition cost", "Low barriers to entry", "Unit economics unclear"},
		},
	},
}

var (
	valuations = []string{"$1M", "$5M", "$10M", "$25M", "$50M", "$100M", "$500M"}

	founderTypes = []string{
		"Serial entrepreneur with 2 exits",
		"Former FAANG engineer",
		"Ex-McKinsey consultant",
		"Industry veteran with 15 years experience",
		"Recent Stanford MBA",
		"First-time founder",
		"Former startup CTO",
		"Ex-Goldman Sachs VP",
	}

	tractionMetrics = []string{
		"10% month-over-month growth",
		"500+ beta users",
		"$50K in pre-orders",
		"95% customer satisfaction",
		"3 enterprise pilots",
		"50K app downloads",
		"$100K ARR",
		"Profitable since launch",
	}
)
