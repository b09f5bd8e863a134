package pitch

const (
	pitchAIBlockchain = "We're building an AI-powered blockchain solution that revolutionizes photo sharing using machine learning."
	pitchTaskFlow     = "TaskFlow is a project management platform for remote teams that reduces delays by 40%. We have 500 paying customers and $50K MRR."
	pitchUberDogs     = "Uber for dog walking"
	pitchUberLong     = "It's basically Uber for dog walking that connects busy owners with vetted walkers nearby."
	pitchPottery      = "Pottery classes hosted inside quiet neighborhood bakeries on weekends"
	pitchHealthAI     = "An AI assistant for doctors that reads patient charts and flags risks early."
	pitchVague        = "A platform for everything you could ever need in life."
)

// corpus exercises a spread of branches for property tests.
var corpus = []string{
	"",
	"   ",
	"hi",
	"short one",
	pitchAIBlockchain,
	pitchTaskFlow,
	pitchUberDogs,
	pitchUberLong,
	pitchPottery,
	pitchHealthAI,
	pitchVague,
	"Free social network for pet owners to share photos and connect with friends in their community.",
	"A mobile banking app for freelancers that tracks expenses and sends invoices.",
	"B2B marketplace where restaurants buy wholesale produce from local farms. Subscription pricing, 120 customers.",
	"Disruptive, innovative, cutting-edge paradigm shift leveraging synergy to optimize the ecosystem!!!",
	"Airbnb for  ",
	"Our team has 10 years of experience. First of its kind SaaS for hospitals solving patient scheduling problems for healthcare companies, $2M ARR and growing 15% monthly with enterprise customers across every market.",
	"NFT crypto web3 decentralized bitcoin thing",
	"ÜberÄpp für Ärzte 🚀🚀🚀 mit KI",
	"<script>alert('x')</script> smart AI blockchain uber for cats",
}
