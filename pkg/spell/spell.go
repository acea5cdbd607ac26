// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package spell

import (
	"sort"
)

// Suggest returns the candidate closest to word, if any is within the
// edit distance allowed for a word of that length.
func Suggest(word string, candidates []string) (string, bool) {
	if len(word) == 0 {
		return "", false
	}

	sorted := append([]string{}, candidates...)
	sort.Strings(sorted)

	maxDist := len([]rune(word)) / 3
	if maxDist < 1 {
		maxDist = 1
	}

	best, bestDist := "", maxDist+1
	for _, candidate := range sorted {
		if candidate == word {
			continue
		}
		if dist := distance(word, candidate); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best, len(best) > 0
}

// distance is the optimal string alignment distance between a and b (in
// runes): Levenshtein plus adjacent transpositions.
func distance(a, b string) int {
	ar, br := []rune(a), []rune(b)

	d := make([][]int, len(ar)+1)
	for i := range d {
		d[i] = make([]int, len(br)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}

	for i := 1; i <= len(ar); i++ {
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && ar[i-1] == br[j-2] && ar[i-2] == br[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+1)
			}
		}
	}
	return d[len(ar)][len(br)]
}
