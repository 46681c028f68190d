package discovery

import (
	"net/url"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// fuzzyThreshold is the minimum title|company similarity ratio (0-100)
// for two postings to count as the same job.
const fuzzyThreshold = 85

// Deduplicate splits jobs into unique and duplicate lists. A job is a
// duplicate when its normalized URL was already seen (in knownURLs or
// earlier in the batch) or its title|company key is near-identical to an
// earlier job's. Input order is preserved within each list.
func Deduplicate(jobs []types.DiscoveredJob, knownURLs []string) (unique, duplicates []types.DiscoveredJob) {
	seenURLs := make(map[string]struct{}, len(knownURLs))
	for _, u := range knownURLs {
		seenURLs[NormalizeURL(u)] = struct{}{}
	}

	var seenKeys []string
	for _, job := range jobs {
		normalized := NormalizeURL(job.URL)
		if _, dup := seenURLs[normalized]; dup {
			duplicates = append(duplicates, job)
			continue
		}

		key := identityKey(job)
		if matchesExisting(key, seenKeys) {
			duplicates = append(duplicates, job)
			continue
		}

		seenURLs[normalized] = struct{}{}
		seenKeys = append(seenKeys, key)
		unique = append(unique, job)
	}
	return unique, duplicates
}

// NormalizeURL reduces a job URL to scheme://host/path, lowercased with
// the trailing slash trimmed, so tracking parameters and fragments do
// not defeat URL matching.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}

	normalized := parsed.Scheme + "://" + parsed.Host + parsed.Path
	return strings.TrimSuffix(strings.ToLower(normalized), "/")
}

func identityKey(job types.DiscoveredJob) string {
	return strings.ToLower(strings.TrimSpace(job.Title)) + "|" + strings.ToLower(strings.TrimSpace(job.Company))
}

func matchesExisting(key string, seenKeys []string) bool {
	for _, seen := range seenKeys {
		if similarityRatio(key, seen) >= fuzzyThreshold {
			return true
		}
	}
	return false
}

// similarityRatio converts Levenshtein distance into a 0-100 similarity
// score over the longer string's length.
func similarityRatio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}

	distance := levenshtein.ComputeDistance(a, b)
	return int(float64(longest-distance) / float64(longest) * 100)
}
