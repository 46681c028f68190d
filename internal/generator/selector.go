// Package generator selects the most relevant profile content for a job
// description and renders it into an HTML resume.
package generator

import (
	"sort"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/keywords"
	"github.com/jonathan/ats-optimizer/internal/types"
)

const jdKeywordLimit = 25

// Proficiency tie-break weights among equally relevant skills.
const (
	expertWeight       = 3
	advancedWeight     = 2
	intermediateWeight = 1
	relevanceBonus     = 10
)

// Select picks the profile content best suited to the job description:
// one summary, the top skills, each experience entry trimmed to its most
// relevant bullets, and the top projects. Education and certifications
// pass through untouched. The profile is never mutated.
func Select(profile *types.CandidateProfile, jdText string, maxSkills, maxBulletsPerRole, maxProjects int) *types.SelectedContent {
	extraction := keywords.Extract(jdText, jdKeywordLimit)
	jdSet := make(map[string]struct{}, len(extraction.Keywords))
	var targets []string
	for _, kw := range extraction.Keywords {
		jdSet[strings.ToLower(kw.Canonical)] = struct{}{}
		targets = append(targets, kw.Canonical)
	}

	return &types.SelectedContent{
		Summary:        selectSummary(profile.Summaries, jdText),
		Skills:         rankSkills(profile, jdSet, maxSkills),
		Experience:     rankExperience(profile.Experience, jdSet, maxBulletsPerRole),
		Education:      profile.Education,
		Certifications: profile.Certifications,
		Projects:       rankProjects(profile.Projects, jdSet, maxProjects),
		PersonalInfo:   profile.PersonalInfo,
		TargetKeywords: targets,
	}
}

// selectSummary picks the pre-written summary whose target-role words
// best overlap the JD text. The first summary wins ties, including the
// all-zero case, so a profile with summaries always yields one.
func selectSummary(summaries []types.Summary, jdText string) string {
	if len(summaries) == 0 {
		return ""
	}

	jdLower := strings.ToLower(jdText)
	best := 0
	bestScore := -1
	for i, summary := range summaries {
		score := 0
		for _, word := range strings.Fields(strings.ToLower(summary.TargetRole)) {
			if strings.Contains(jdLower, word) {
				score++
			}
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return strings.TrimSpace(summaries[best].Text)
}

func proficiencyWeight(proficiency string) int {
	switch proficiency {
	case types.ProficiencyExpert:
		return expertWeight
	case types.ProficiencyAdvanced:
		return advancedWeight
	default:
		return intermediateWeight
	}
}

// rankSkills orders every skill by relevance plus proficiency. A JD
// match is worth more than any proficiency gap, so matching skills
// always outrank non-matching ones; names break remaining ties.
func rankSkills(profile *types.CandidateProfile, jdSet map[string]struct{}, maxSkills int) []string {
	type rankedSkill struct {
		name  string
		score int
	}

	var ranked []rankedSkill
	for _, category := range profile.Skills {
		for _, item := range category.Items {
			score := proficiencyWeight(item.Proficiency)
			normalized := strings.ToLower(keywords.Normalize(item.Name))
			if _, ok := jdSet[normalized]; ok {
				score += relevanceBonus
			}
			ranked = append(ranked, rankedSkill{name: item.Name, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	if maxSkills >= 0 && len(ranked) > maxSkills {
		ranked = ranked[:maxSkills]
	}

	names := make([]string, len(ranked))
	for i, skill := range ranked {
		names[i] = skill.name
	}
	return names
}

// rankExperience trims each entry's bullets to the most relevant. Every
// entry survives; a role with no matching bullets still appears with its
// first bullets so the work history keeps no gaps.
func rankExperience(entries []types.ExperienceEntry, jdSet map[string]struct{}, maxBullets int) []types.SelectedExperience {
	selected := make([]types.SelectedExperience, 0, len(entries))
	for _, entry := range entries {
		type rankedBullet struct {
			text  string
			score int
		}

		ranked := make([]rankedBullet, 0, len(entry.Bullets))
		for _, bullet := range entry.Bullets {
			ranked = append(ranked, rankedBullet{
				text:  bullet.Text,
				score: bulletScore(bullet, jdSet),
			})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].score > ranked[j].score
		})
		if maxBullets >= 0 && len(ranked) > maxBullets {
			ranked = ranked[:maxBullets]
		}

		bullets := make([]string, len(ranked))
		for i, bullet := range ranked {
			bullets[i] = bullet.text
		}
		selected = append(selected, types.SelectedExperience{
			Company:   entry.Company,
			Title:     entry.Title,
			Location:  entry.Location,
			StartDate: entry.StartDate,
			EndDate:   entry.EndDate,
			Bullets:   bullets,
		})
	}
	return selected
}

// bulletScore weights tag matches double over incidental text matches.
// Tags match JD keywords lowercased verbatim, each distinct tag counted
// once.
func bulletScore(bullet types.ExperienceBullet, jdSet map[string]struct{}) int {
	score := 0
	tags := make(map[string]struct{}, len(bullet.Tags))
	for _, tag := range bullet.Tags {
		tags[strings.ToLower(tag)] = struct{}{}
	}
	for tag := range tags {
		if _, ok := jdSet[tag]; ok {
			score += 2
		}
	}

	textLower := strings.ToLower(bullet.Text)
	for keyword := range jdSet {
		if strings.Contains(textLower, keyword) {
			score++
		}
	}
	return score
}

func rankProjects(projects []types.Project, jdSet map[string]struct{}, maxProjects int) []types.Project {
	type rankedProject struct {
		project types.Project
		score   int
	}

	ranked := make([]rankedProject, 0, len(projects))
	for _, project := range projects {
		score := 0
		tech := make(map[string]struct{}, len(project.TechStack))
		for _, t := range project.TechStack {
			tech[strings.ToLower(t)] = struct{}{}
		}
		for t := range tech {
			if _, ok := jdSet[t]; ok {
				score++
			}
		}
		descLower := strings.ToLower(project.Description)
		for keyword := range jdSet {
			if strings.Contains(descLower, keyword) {
				score++
			}
		}
		ranked = append(ranked, rankedProject{project: project, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if maxProjects >= 0 && len(ranked) > maxProjects {
		ranked = ranked[:maxProjects]
	}

	selected := make([]types.Project, len(ranked))
	for i, p := range ranked {
		selected[i] = p.project
	}
	return selected
}
