// Package ontology supplies the read-only lookup tables the entity quality
// validator consults: generic non-company nouns, place names, and known
// investor or institution names. Tables are built once from the built-in
// defaults plus config overrides and are immutable afterwards, so concurrent
// lookups need no locking.
package ontology

import (
	"strings"

	"github.com/leguplabs/capframe/internal/model"
)

// Ontology holds the merged lookup tables. All lookups are case-insensitive.
type Ontology struct {
	generics  map[string]bool
	places    map[string]bool
	investors map[string]bool
}

// defaultGenerics are capitalized tokens that headline writers use as
// collective subjects but that never name a single organization.
var defaultGenerics = []string{
	"startups", "startup", "researchers", "scientists", "smes", "investors",
	"founders", "companies", "firms", "banks", "regulators", "lawmakers",
	"analysts", "experts", "critics", "users", "customers", "employees",
	"developers", "engineers", "report", "reports", "study", "survey",
	"sources", "insiders", "officials", "it", "they", "this", "that",
	"everyone", "nobody", "people", "women", "men", "workers", "students",
	"governments", "cities", "markets", "stocks", "tech", "ai", "crypto",
	"fintech", "biotech", "climate",
}

// defaultPlaces covers the geographies that most often lead capital-news
// headlines. Operators extend the list via config as coverage gaps appear.
var defaultPlaces = []string{
	"london", "berlin", "paris", "madrid", "lisbon", "amsterdam", "stockholm",
	"helsinki", "dublin", "zurich", "munich", "barcelona", "warsaw", "tallinn",
	"new york", "san francisco", "silicon valley", "boston", "austin",
	"seattle", "los angeles", "miami", "chicago", "toronto", "vancouver",
	"singapore", "hong kong", "tokyo", "seoul", "shanghai", "beijing",
	"bangalore", "bengaluru", "mumbai", "delhi", "jakarta", "sydney",
	"melbourne", "tel aviv", "dubai", "riyadh", "lagos", "nairobi",
	"cape town", "sao paulo", "mexico city", "europe", "asia", "africa",
	"america", "latam", "uk", "usa", "us", "eu", "india", "china", "japan",
	"germany", "france", "spain", "brazil", "canada", "australia", "israel",
	"nigeria", "kenya", "indonesia", "vietnam", "poland", "sweden",
	"switzerland", "netherlands", "ireland", "portugal",
}

// defaultInvestors are funds and institutions that appear in headlines as
// backers. They are real organizations, but when they show up only as a
// possessive or "-backed" modifier they must not become the event subject.
var defaultInvestors = []string{
	"y combinator", "yc", "sequoia", "sequoia capital", "andreessen horowitz",
	"a16z", "accel", "index ventures", "benchmark", "lightspeed",
	"general catalyst", "tiger global", "softbank", "softbank vision fund",
	"insight partners", "greylock", "kleiner perkins", "bessemer",
	"founders fund", "khosla ventures", "gv", "google ventures", "coatue",
	"thrive capital", "balderton", "atomico", "northzone", "creandum",
	"eqt ventures", "hv capital", "cherry ventures", "point nine",
	"world bank", "imf", "european commission", "sec", "fca", "mit",
	"stanford", "harvard", "oxford", "cambridge",
}

// New builds the merged ontology from defaults plus the config-supplied
// extensions.
func New(cfg model.OntologyConfig) *Ontology {
	o := &Ontology{
		generics:  make(map[string]bool),
		places:    make(map[string]bool),
		investors: make(map[string]bool),
	}
	for _, t := range defaultGenerics {
		o.generics[t] = true
	}
	for _, t := range defaultPlaces {
		o.places[t] = true
	}
	for _, t := range defaultInvestors {
		o.investors[t] = true
	}
	for _, t := range cfg.GenericTerms {
		o.generics[normalize(t)] = true
	}
	for _, t := range cfg.Places {
		o.places[normalize(t)] = true
	}
	for _, t := range cfg.Investors {
		o.investors[normalize(t)] = true
	}
	return o
}

// IsGenericTerm reports whether the token is a known generic noun.
func (o *Ontology) IsGenericTerm(token string) bool {
	return o.generics[normalize(token)]
}

// IsPlace reports whether the token is a known place name.
func (o *Ontology) IsPlace(token string) bool {
	return o.places[normalize(token)]
}

// IsKnownInvestor reports whether the token names a known investor or
// institution.
func (o *Ontology) IsKnownInvestor(token string) bool {
	return o.investors[normalize(token)]
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
