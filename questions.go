package main

import (
	"math/rand"
)

// pickQuestions draws n distinct entries from the bank, uniformly without
// replacement, by retrying on index collisions. The returned order is the
// order questions are asked. Callers must ensure n <= len(bank); config
// validation enforces that against the built-in bank at startup.
func pickQuestions(bank []Country, n int) []Country {
	seen := make(map[int]struct{}, n)
	picked := make([]Country, 0, n)

	for len(picked) < n {
		idx := rand.Intn(len(bank))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		picked = append(picked, bank[idx])
	}

	return picked
}
