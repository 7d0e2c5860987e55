package geo

import "strings"

// fuzzyThreshold is the maximum edit distance accepted when correcting a
// misspelled district name.
const fuzzyThreshold = 2

// fuzzyDistrict matches query tokens against district names within the edit
// distance threshold. Single-word districts are compared token by token
// (tokens shorter than 4 characters are skipped to avoid false positives);
// multi-word districts are compared against token n-grams of the same length.
// First match in district order wins.
func fuzzyDistrict(queryLower string) string {
	tokens := strings.Fields(queryLower)
	if len(tokens) == 0 {
		return ""
	}

	for _, d := range districts {
		if strings.Contains(d, " ") {
			continue
		}
		for _, t := range tokens {
			if len(t) < 4 {
				continue
			}
			if dist := levenshtein(t, d, fuzzyThreshold); dist >= 0 {
				return d
			}
		}
	}

	for _, d := range districts {
		if !strings.Contains(d, " ") {
			continue
		}
		n := len(strings.Fields(d))
		if len(tokens) < n {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if dist := levenshtein(gram, d, fuzzyThreshold); dist >= 0 {
				return d
			}
		}
	}

	return ""
}

// levenshtein computes the edit distance between a and b, returning -1 as
// soon as the distance is known to exceed max.
func levenshtein(a, b string, max int) int {
	if a == b {
		return 0
	}
	if max < 0 {
		return -1
	}

	la, lb := len(a), len(b)
	if la-lb > max || lb-la > max {
		return -1
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		bestInRow := curr[0]
		ca := a[i-1]

		for j := 1; j <= lb; j++ {
			cost := 1
			if ca == b[j-1] {
				cost = 0
			}
			v := min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			curr[j] = v
			if v < bestInRow {
				bestInRow = v
			}
		}

		// Every cell in this row already exceeds max, so the final
		// distance cannot come back under it.
		if bestInRow > max {
			return -1
		}

		prev, curr = curr, prev
	}

	if prev[lb] > max {
		return -1
	}
	return prev[lb]
}
