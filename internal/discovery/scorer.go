// Package discovery ranks discovered job postings against a candidate
// profile and filters out duplicate postings across portals.
package discovery

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/keywords"
	"github.com/jonathan/ats-optimizer/internal/types"
)

const jdKeywordLimit = 25

// Score rates how well a discovered job fits the candidate profile,
// 0-100. A job without description text scores 0.0: fit cannot be
// evaluated at all, which is different from a poor fit.
func Score(job *types.DiscoveredJob, profile *types.CandidateProfile) float64 {
	if job.DescriptionText == "" {
		return 0.0
	}

	jdKws := keywords.Extract(job.DescriptionText, jdKeywordLimit)
	jdSet := make(map[string]struct{}, len(jdKws.Keywords))
	for _, kw := range jdKws.Keywords {
		jdSet[strings.ToLower(kw.Canonical)] = struct{}{}
	}
	if len(jdSet) == 0 {
		return 50.0 // Nothing extractable; neutral rather than penalized
	}

	candidateTerms := profileTermSet(profile)
	overlap := 0
	for term := range jdSet {
		if _, ok := candidateTerms[term]; ok {
			overlap++
		}
	}

	score := math.Round(float64(overlap)/float64(len(jdSet))*1000) / 10
	if score > 100 {
		score = 100
	}
	return score
}

// ScoreAndRank scores every job, drops those below minScore, and returns
// the rest ordered by descending score. Ties keep input order.
func ScoreAndRank(jobs []types.DiscoveredJob, profile *types.CandidateProfile, minScore float64) []types.ScoredJob {
	var ranked []types.ScoredJob
	for i := range jobs {
		score := Score(&jobs[i], profile)
		if score < minScore {
			continue
		}
		ranked = append(ranked, types.ScoredJob{Job: jobs[i], Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// profileTermSet collects every skill name, bullet tag, and project
// tech-stack entry, alias-normalized and lowercased.
func profileTermSet(profile *types.CandidateProfile) map[string]struct{} {
	terms := make(map[string]struct{})
	add := func(term string) {
		normalized := strings.ToLower(keywords.Normalize(term))
		if normalized != "" {
			terms[normalized] = struct{}{}
		}
	}

	for _, category := range profile.Skills {
		for _, item := range category.Items {
			add(item.Name)
		}
	}
	for _, entry := range profile.Experience {
		for _, bullet := range entry.Bullets {
			for _, tag := range bullet.Tags {
				add(tag)
			}
		}
	}
	for _, project := range profile.Projects {
		for _, tech := range project.TechStack {
			add(tech)
		}
	}
	return terms
}
