// Package keywords extracts ranked, categorized keywords from raw text
// using lexical pattern matching and frequency analysis. No NLP models are
// involved; the extractor relies on a fixed alias table, a stop-word set,
// and a handful of regular expressions.
package keywords

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// stopWords are filtered out of extraction results. The set mixes generic
// English function words with job-posting boilerplate ("required",
// "preferred", "experience") that carries no signal.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "shall": {}, "can": {},
	"need": {}, "must": {}, "it": {}, "its": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {},
	"we": {}, "they": {}, "me": {}, "him": {}, "her": {}, "us": {},
	"them": {}, "my": {}, "your": {}, "his": {}, "our": {}, "their": {},
	"what": {}, "which": {}, "who": {}, "whom": {}, "where": {},
	"when": {}, "why": {}, "how": {}, "all": {}, "each": {}, "every": {},
	"both": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "no": {}, "not": {}, "only": {}, "own": {},
	"same": {}, "so": {}, "than": {}, "too": {}, "very": {}, "just": {},
	"about": {}, "above": {}, "after": {}, "again": {}, "also": {},
	"any": {}, "because": {}, "before": {}, "between": {}, "during": {},
	"into": {}, "through": {}, "under": {}, "until": {}, "up": {},
	"out": {}, "over": {}, "including": {}, "using": {}, "working": {},
	"work": {}, "experience": {}, "role": {}, "team": {}, "company": {},
	"position": {}, "looking": {}, "strong": {}, "ability": {},
	"etc": {}, "e.g": {}, "i.e": {}, "well": {}, "new": {},
	"required": {}, "preferred": {}, "plus": {}, "bonus": {},
	"ideal": {}, "minimum": {}, "least": {}, "years": {}, "year": {},
}

// skillAliases maps surface spellings of technology names to their
// canonical forms. Lookups are case-insensitive.
var skillAliases = map[string]string{
	"js":                          "JavaScript",
	"javascript":                  "JavaScript",
	"ts":                          "TypeScript",
	"typescript":                  "TypeScript",
	"py":                          "Python",
	"python":                      "Python",
	"node":                        "Node.js",
	"nodejs":                      "Node.js",
	"node.js":                     "Node.js",
	"react":                       "React",
	"reactjs":                     "React",
	"react.js":                    "React",
	"vue":                         "Vue.js",
	"vuejs":                       "Vue.js",
	"angular":                     "Angular",
	"angularjs":                   "Angular",
	"django":                      "Django",
	"flask":                       "Flask",
	"fastapi":                     "FastAPI",
	"spring":                      "Spring",
	"springboot":                  "Spring Boot",
	"spring boot":                 "Spring Boot",
	"aws":                         "AWS",
	"amazon web services":         "AWS",
	"gcp":                         "GCP",
	"google cloud":                "GCP",
	"azure":                       "Azure",
	"docker":                      "Docker",
	"kubernetes":                  "Kubernetes",
	"k8s":                         "Kubernetes",
	"postgres":                    "PostgreSQL",
	"postgresql":                  "PostgreSQL",
	"mysql":                       "MySQL",
	"mongodb":                     "MongoDB",
	"mongo":                       "MongoDB",
	"redis":                       "Redis",
	"kafka":                       "Kafka",
	"rabbitmq":                    "RabbitMQ",
	"graphql":                     "GraphQL",
	"rest":                        "REST",
	"restful":                     "REST",
	"ci/cd":                       "CI/CD",
	"cicd":                        "CI/CD",
	"git":                         "Git",
	"github":                      "GitHub",
	"gitlab":                      "GitLab",
	"terraform":                   "Terraform",
	"ansible":                     "Ansible",
	"linux":                       "Linux",
	"sql":                         "SQL",
	"nosql":                       "NoSQL",
	"html":                        "HTML",
	"css":                         "CSS",
	"sass":                        "SASS",
	"scss":                        "SASS",
	"webpack":                     "Webpack",
	"nginx":                       "Nginx",
	"apache":                      "Apache",
	"elasticsearch":               "Elasticsearch",
	"ml":                          "Machine Learning",
	"machine learning":            "Machine Learning",
	"deep learning":               "Deep Learning",
	"nlp":                         "NLP",
	"natural language processing": "NLP",
	"ai":                          "AI",
	"artificial intelligence":     "AI",
	"agile":                       "Agile",
	"scrum":                       "Scrum",
	"jira":                        "Jira",
	"jenkins":                     "Jenkins",
}

// aliasTargets is the set of canonical forms produced by the alias table,
// used for category classification.
var aliasTargets = buildAliasTargets()

func buildAliasTargets() map[string]struct{} {
	targets := make(map[string]struct{}, len(skillAliases))
	for _, v := range skillAliases {
		targets[v] = struct{}{}
	}
	return targets
}

var (
	// aliasPattern matches any known alias, case-insensitive. Longer
	// aliases are listed first so multi-word names ("spring boot") win
	// over their prefixes ("spring").
	aliasPattern = buildAliasPattern()

	// properNounPattern matches capitalized terms like "React" or
	// "Docker", optionally with a dot suffix ("Node.js").
	properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\.[a-z]+)?\b`)

	// acronymPattern matches ALL-CAPS acronyms (AWS, GCP, SQL, REST).
	acronymPattern = regexp.MustCompile(`\b[A-Z]{2,6}\b`)

	// dottedPattern matches dotted terms like "Node.js" or "Vue.js".
	dottedPattern = regexp.MustCompile(`\b\w+\.\w+\b`)

	// wordPattern matches single lowercase words (hyphens allowed).
	wordPattern = regexp.MustCompile(`\b[a-z][a-z-]+\b`)

	// bareWordPattern matches plain lowercase words for n-gram building.
	bareWordPattern = regexp.MustCompile(`\b[a-z]+\b`)
)

func buildAliasPattern() *regexp.Regexp {
	keys := make([]string, 0, len(skillAliases))
	for k := range skillAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Normalize returns the canonical form of a keyword. Unknown terms pass
// through unchanged except for whitespace trimming. Normalization is
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	if canonical, ok := skillAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// technicalTerms harvests candidate terms using the four lexical patterns.
// All matches from all patterns are pooled; duplicates raise frequency.
func technicalTerms(text string) []string {
	var terms []string
	terms = append(terms, aliasPattern.FindAllString(text, -1)...)
	terms = append(terms, properNounPattern.FindAllString(text, -1)...)
	terms = append(terms, acronymPattern.FindAllString(text, -1)...)
	terms = append(terms, dottedPattern.FindAllString(text, -1)...)
	return terms
}

// meaningfulWords harvests single lowercase words of length >2 that are
// not stop words.
func meaningfulWords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	out := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len(w) <= 2 {
			continue
		}
		out = append(out, w)
	}
	return out
}

// bigramCounts counts lowercase word pairs, skipping stop words. Bigrams
// are an intermediate signal only: they are never merged into the ranked
// keyword list, which keeps result cardinality small.
func bigramCounts(text string) map[string]int {
	words := bareWordPattern.FindAllString(strings.ToLower(text), -1)
	filtered := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len(w) <= 2 {
			continue
		}
		filtered = append(filtered, w)
	}

	counts := make(map[string]int)
	for i := 0; i+1 < len(filtered); i++ {
		counts[filtered[i]+" "+filtered[i+1]]++
	}
	return counts
}

// classify assigns a category to a canonical keyword.
func classify(canonical string) string {
	if _, ok := skillAliases[strings.ToLower(canonical)]; ok {
		return types.CategorySkill
	}
	if _, ok := aliasTargets[canonical]; ok {
		return types.CategorySkill
	}
	if canonical != strings.ToLower(canonical) && len(canonical) <= 15 {
		return types.CategoryTool
	}
	return types.CategoryGeneral
}

// Extract returns up to maxKeywords keywords from text, ranked by
// frequency descending with first-seen order breaking ties. Empty or
// whitespace-only input yields an empty result, not an error.
func Extract(text string, maxKeywords int) *types.ExtractionResult {
	result := &types.ExtractionResult{RawText: text}
	if strings.TrimSpace(text) == "" {
		return result
	}

	terms := technicalTerms(text)
	terms = append(terms, meaningfulWords(text)...)

	// Count frequency per canonical form, remembering first-seen order so
	// ties rank deterministically.
	counts := make(map[string]int)
	var order []string
	for _, term := range terms {
		canonical := Normalize(term)
		if _, stop := stopWords[strings.ToLower(canonical)]; stop {
			continue
		}
		if len(canonical) <= 1 {
			continue
		}
		if _, seen := counts[canonical]; !seen {
			order = append(order, canonical)
		}
		counts[canonical]++
	}

	_ = bigramCounts(text)

	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if limit := 2 * maxKeywords; limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	// Deduplicate by canonical form; first occurrence wins so the highest
	// frequency entry for a canonical term is kept.
	seen := make(map[string]struct{}, len(ranked))
	kws := make([]types.Keyword, 0, len(ranked))
	for _, term := range ranked {
		canonical := Normalize(term)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		kws = append(kws, types.Keyword{
			Text:      term,
			Canonical: canonical,
			Frequency: counts[term],
			Category:  classify(canonical),
		})
	}

	if len(kws) > maxKeywords && maxKeywords >= 0 {
		kws = kws[:maxKeywords]
	}
	result.Keywords = kws
	return result
}
