package pitch

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// vagueLengthThreshold is the rune length below which a pitch counts as vague.
const vagueLengthThreshold = 50

// Features is the classifier's summary of a pitch. Every flag is computed
// independently, so combinations such as AI and Blockchain can both be set.
type Features struct {
	// Technology
	AI         bool `json:"ai"`
	Smart      bool `json:"smart"`
	Blockchain bool `json:"blockchain"`
	Mobile     bool `json:"mobile"`
	Web        bool `json:"web"`
	App        bool `json:"app"`

	// Business model
	B2B        bool `json:"b2b"`
	B2C        bool `json:"b2c"`
	Revenue    bool `json:"revenue"`
	HasMetrics bool `json:"has_metrics"`
	Problem    bool `json:"problem"`
	Solution   bool `json:"solution"`
	Target     bool `json:"target"`

	// Industry
	Healthcare   bool `json:"healthcare"`
	Fintech      bool `json:"fintech"`
	Ecommerce    bool `json:"ecommerce"`
	Education    bool `json:"education"`
	Food         bool `json:"food"`
	Social       bool `json:"social"`
	Productivity bool `json:"productivity"`
	Travel       bool `json:"travel"`

	// Capabilities
	Automation    bool `json:"automation"`
	Analytics     bool `json:"analytics"`
	Collaboration bool `json:"collaboration"`
	Personalized  bool `json:"personalized"`

	// Red flags
	Buzzwords         bool `json:"buzzwords"`
	Hype              bool `json:"hype"`
	Vague             bool `json:"vague"`
	Community         bool `json:"community"`
	CompetitorAnalogy bool `json:"competitor_analogy"`

	// AnalogyBrand and AnalogyCategory hold the "X" and "Y" of an "X for Y"
	// pitch, e.g. "uber" and "dog walking".
	AnalogyBrand    string `json:"analogy_brand,omitempty"`
	AnalogyCategory string `json:"analogy_category,omitempty"`

	Length   int      `json:"length"`
	KeyTerms []string `json:"key_terms"`
}

var (
	reAI         = regexp.MustCompile(`(?i)\b(ai|artificial intelligence|machine learning|ml|neural|algorithms?)\b`)
	reSmart      = regexp.MustCompile(`(?i)\bsmart\b`)
	reBlockchain = regexp.MustCompile(`(?i)\b(blockchain|crypto|nfts?|web3|decentralized|bitcoin)\b`)
	reMobile     = regexp.MustCompile(`(?i)\b(mobile|apps?|ios|android|smartphones?)\b`)
	reWeb        = regexp.MustCompile(`(?i)\b(websites?|web|online|platforms?|portals?)\b`)
	reApp        = regexp.MustCompile(`(?i)\b(apps?|mobile|applications?)\b`)

	reB2B      = regexp.MustCompile(`(?i)\b(b2b|business(es)?|enterprises?|compan(y|ies)|corporate|saas|software|teams?|mrr|arr)\b`)
	reB2C      = regexp.MustCompile(`(?i)\b(consumers?|users?|people|individuals?|personal|mobile|apps?)\b`)
	reRevenue  = regexp.MustCompile(`(?i)\b(revenue|money|profits?|subscriptions?|fees?|prices?|pricing|costs?|pay|paying|paid|monetize|mrr|arr)\b`)
	reMetrics  = regexp.MustCompile(`\d`)
	reProblem  = regexp.MustCompile(`(?i)\b(problems?|issues?|challenges?|pain|struggles?|difficulty|delays?)\b`)
	reSolution = regexp.MustCompile(`(?i)\b(solutions?|solves?|fix(es)?|address(es)?|helps?|assists?|reduces?)\b`)
	reTarget   = regexp.MustCompile(`(?i)\b(customers?|users?|clients?|business(es)?|compan(y|ies)|people|markets?)\b`)

	reHealthcare   = regexp.MustCompile(`(?i)\b(health|healthcare|medical|doctors?|patients?|hospitals?|wellness|fitness)\b`)
	reFintech      = regexp.MustCompile(`(?i)\b(finance|financial|fintech|banks?|banking|payments?|money|investments?|investing|trading)\b`)
	reEcommerce    = regexp.MustCompile(`(?i)\b(ecommerce|e-commerce|shops?|stores?|retail|marketplace|buy|sell)\b`)
	reEducation    = regexp.MustCompile(`(?i)\b(education|learning|students?|teachers?|courses?|schools?|university)\b`)
	reFood         = regexp.MustCompile(`(?i)\b(food|restaurants?|meals?|recipes?|cooking|delivery|dining)\b`)
	reSocial       = regexp.MustCompile(`(?i)\b(social|network|community|connect|share|friends?)\b`)
	reProductivity = regexp.MustCompile(`(?i)\b(productivity|tasks?|projects?|manage|management|organize|workflows?)\b`)
	reTravel       = regexp.MustCompile(`(?i)\b(travel|trips?|vacations?|hotels?|flights?|booking)\b`)

	reAutomation    = regexp.MustCompile(`(?i)\b(automate|automatic|automation|streamline|optimize)\b`)
	reAnalytics     = regexp.MustCompile(`(?i)\b(analytics|data|insights|metrics|track)\b`)
	reCollaboration = regexp.MustCompile(`(?i)\b(collaborate|collaboration|teams?|share|together|group)\b`)
	rePersonalized  = regexp.MustCompile(`(?i)\b(personali[sz]\w*|recommend\w*)\b`)

	reBuzzwords = regexp.MustCompile(`(?i)\b(disrupt|disruptive|revolutionize[sd]?|innovative|cutting-edge|paradigm|synergy|leverage|optimize|streamline)\b`)
	reHype      = regexp.MustCompile(`(?i)\b(disrupt\w*|revolutioni[sz]\w*|transform\w*|innovat\w*|game.?chang\w*)\b`)
	reGeneric   = regexp.MustCompile(`(?i)\b(platform|ecosystem|solution|system|synergy)\b`)
	reCommunity = regexp.MustCompile(`(?i)\b(social|network|platform|community|connect)\b`)

	reAnalogy = regexp.MustCompile(`(?i)\b(uber|airbnb|netflix|spotify|tinder) for\b\s*([a-z0-9][a-z0-9\s'-]*)?`)
)

// analogyStopwords end the captured category of an "X for Y" phrase.
var analogyStopwords = map[string]struct{}{
	"that": {}, "which": {}, "who": {}, "with": {}, "where": {}, "in": {},
	"using": {}, "by": {}, "to": {}, "and": {}, "but": {}, "so": {}, "for": {},
	"on": {}, "at": {}, "via": {}, "because": {},
}

const maxAnalogyWords = 4

// Classify runs the fixed pattern battery against text. It is total and
// deterministic: the same input always yields the same Features.
func Classify(text string) Features {
	f := Features{
		AI:         reAI.MatchString(text),
		Smart:      reSmart.MatchString(text),
		Blockchain: reBlockchain.MatchString(text),
		Mobile:     reMobile.MatchString(text),
		Web:        reWeb.MatchString(text),
		App:        reApp.MatchString(text),

		B2B:        reB2B.MatchString(text),
		B2C:        reB2C.MatchString(text),
		Revenue:    reRevenue.MatchString(text) || strings.Contains(text, "$"),
		HasMetrics: reMetrics.MatchString(text),
		Problem:    reProblem.MatchString(text),
		Solution:   reSolution.MatchString(text),
		Target:     reTarget.MatchString(text),

		Healthcare:   reHealthcare.MatchString(text),
		Fintech:      reFintech.MatchString(text),
		Ecommerce:    reEcommerce.MatchString(text),
		Education:    reEducation.MatchString(text),
		Food:         reFood.MatchString(text),
		Social:       reSocial.MatchString(text),
		Productivity: reProductivity.MatchString(text),
		Travel:       reTravel.MatchString(text),

		Automation:    reAutomation.MatchString(text),
		Analytics:     reAnalytics.MatchString(text),
		Collaboration: reCollaboration.MatchString(text),
		Personalized:  rePersonalized.MatchString(text),

		Buzzwords: reBuzzwords.MatchString(text),
		Hype:      reHype.MatchString(text),
		Community: reCommunity.MatchString(text),

		Length:   utf8.RuneCountInString(text),
		KeyTerms: ExtractKeyTerms(text),
	}

	f.Vague = f.Length < vagueLengthThreshold || reGeneric.MatchString(text)
	f.AnalogyBrand, f.AnalogyCategory, f.CompetitorAnalogy = matchAnalogy(text)

	return f
}

// Techy reports whether the pitch leans on AI or "smart" marketing.
func (f Features) Techy() bool {
	return f.AI || f.Smart
}

func matchAnalogy(text string) (brand, category string, ok bool) {
	m := reAnalogy.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}

	words := strings.Fields(strings.ToLower(m[2]))
	kept := make([]string, 0, maxAnalogyWords)
	for _, w := range words {
		if _, stop := analogyStopwords[w]; stop {
			break
		}
		kept = append(kept, w)
		if len(kept) == maxAnalogyWords {
			break
		}
	}

	return strings.ToLower(m[1]), strings.Join(kept, " "), true
}
