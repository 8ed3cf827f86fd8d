package classify

// Category is a topic tag assigned to a news item.
type Category string

const (
	War      Category = "war"
	Politics Category = "politics"
	Culture  Category = "culture"
	Society  Category = "society"
	Demise   Category = "demise"
	Climate  Category = "climate"
	Peace    Category = "peace"
	Economy  Category = "economy"
	Others   Category = "others"
)

// Rule binds a category to the keywords that select it.
type Rule struct {
	Category Category
	Keywords []string
}

// Taxonomy is the ordered rule list used for keyword matching.
// Earlier rules take precedence when a text matches several categories.
var Taxonomy = []Rule{
	{War, []string{
		"war", "attack", "missile", "shelling", "airstrike", "drone", "bomb", "frontline", "troop", "mobilization", "palestinians", "palestine",
		"military", "battle", "casualties", "hostilities", "explosion", "artillery", "conflict", "raid", "ceasefire", "fighter jet", "invasion",
		"occupation", "combat", "guerrilla", "armor", "weaponry", "human shield", "militant", "terrorist", "insurgency", "resistance",
		"weapon stockpile", "minefield", "nuclear strike", "force deployment", "ammunition", "sniper", "detonation", "hostage crisis", "clash",
		"skirmish", "crossfire", "gunfire", "air defense", "naval strike", "submarine", "drone strike", "missile launch", "battleground",
		"massacre", "proxy war", "casualty count", "wounded soldiers", "strategic target", "bombardment", "chemical weapons", "biological weapons",
		"military drills", "mobilized army", "armed forces", "border clash", "infiltration",
	}},
	{Politics, []string{
		"election", "vote", "parliament", "government", "prime minister", "president", "minister", "policy", "bill", "act", "senate", "congress",
		"campaign", "coalition", "cabinet", "supreme court", "judiciary", "political", "diplomatic", "sanction", "treaty", "referendum", "ballot", "lawmaker",
		"legislation", "constitution", "executive order", "judicial review", "lobbying", "opposition leader", "parliamentary debate", "governing body",
		"head of state", "state visit", "assembly", "council", "politburo", "monarchy", "foreign relations", "embassy", "summit", "un resolution",
		"trade agreement", "budget proposal", "tax policy", "legislative reform", "party convention", "impeachment", "opposition party", "ruling party",
		"shadow cabinet", "political corruption", "campaign trail", "fundraising", "rally", "candidate", "left-wing", "right-wing", "populism",
		"authoritarian", "secession", "federal", "dissolution", "republic", "democracy", "dictatorship",
	}},
	{Culture, []string{
		"festival", "art", "museum", "heritage", "music", "film", "cinema", "dance", "literature", "theatre", "cultural", "painting", "exhibition",
		"tradition", "language", "religion", "temple", "cathedral", "monument", "craft", "creative", "orchestra", "jazz", "concert", "performance", "actor",
		"director", "screenplay", "opera", "poetry", "folk", "archaeology", "mythology", "folklore", "ritual", "custom", "sculpture", "calligraphy", "cuisine",
		"photography", "portrait", "landscape painting", "costume", "ceramics", "handicraft", "fashion show", "cultural heritage", "cultural festival",
		"ballet", "classical music", "storytelling", "literary award", "film premiere", "box office", "indigenous", "tribal", "heritage site",
	}},
	{Society, []string{
		"community", "social", "society", "demographic", "population", "migration", "urbanization", "rural", "education", "healthcare", "welfare",
		"inequality", "poverty", "employment", "unemployment", "labor rights", "racial discrimination", "minority rights", "human rights", "gender equality",
		"lgbtq", "disabled", "justice system", "public health", "mental health", "family", "marriage", "childcare", "housing", "urban development",
		"smart cities", "census", "birth rate", "death rate", "aging population", "social security", "strike", "protest", "demonstration", "student protests",
		"workers union", "women empowerment", "violence", "crime rate", "domestic abuse", "rehabilitation", "drug abuse", "community center", "neighborhood",
		"homelessness", "migrant", "refugee", "inequity",
	}},
	{Demise, []string{
		"death", "obituary", "funeral", "memorial", "passing", "loss", "grief", "mourning", "tribute", "legacy", "remembrance", "commemoration",
		"bereavement", "tragic end", "died", "killed", "fatal", "last rites", "condolence", "eulogy", "candlelight vigil", "grave", "cemetery", "coffin",
		"cremation", "hearse", "mourner", "succumbed", "tributes", "condolence message", "paying respects", "burial", "mourning period",
	}},
	{Climate, []string{
		"climate", "environment", "pollution", "sustainability", "conservation", "biodiversity", "deforestation", "climate change",
		"global warming", "carbon emissions", "renewable energy", "greenhouse gases", "fossil fuels", "eco-friendly", "recycling", "waste management",
		"ocean plastic", "ice melt", "sea level rise", "drought", "heatwave", "wildfire", "flood", "cyclone", "hurricane", "storm surge", "mudslide",
		"paris agreement", "environmentalist", "carbon footprint", "ecology", "habitat loss", "ozone layer", "smog", "carbon tax", "green energy",
		"reforestation", "extinction", "natural disaster", "sustainable farming", "eco-system", "wetlands", "deforestation ban", "solar power",
		"wind power", "nuclear energy", "climate summit",
	}},
	{Peace, []string{
		"peace", "ceasefire", "truce", "negotiation", "diplomacy", "reconciliation", "dialogue", "settlement", "armistice", "peace talks",
		"conflict resolution", "peacekeeping", "accord", "treaty", "disarmament", "conciliation", "resolution", "international mediation",
		"peace initiative", "partnership", "humanitarian corridor", "bridge-building", "stop violence", "peace framework", "rapprochement",
	}},
	{Economy, []string{
		"economy", "inflation", "recession", "economic growth", "gdp", "stock market", "finance", "investment", "trade", "tariff", "budget",
		"monetary policy", "fiscal policy", "employment rate", "interest rate", "central bank", "currency", "exchange rate", "debt", "bond market",
		"equity market", "bankruptcy", "stimulus", "foreign investment", "ppp", "venture capital", "private equity", "subsidy", "unemployment benefits",
		"retail sales", "import/export", "commodity prices", "gold market", "oil prices", "manufacturing", "industrial output", "banking sector",
	}},
}

// TieBreakOrder ranks categories when DominantCategory sees equal counts.
// It is declared independently of Taxonomy and must stay that way.
var TieBreakOrder = []Category{War, Politics, Economy, Society, Culture, Climate, Peace, Demise, Others}

// All returns every category tag, taxonomy order first, then Others.
func All() []Category {
	categories := make([]Category, 0, len(Taxonomy)+1)
	for _, rule := range Taxonomy {
		categories = append(categories, rule.Category)
	}
	return append(categories, Others)
}

// IsValid reports whether c is one of the known tags.
func IsValid(c Category) bool {
	for _, known := range All() {
		if c == known {
			return true
		}
	}
	return false
}
