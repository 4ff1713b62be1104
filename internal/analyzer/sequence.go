package analyzer

// lcsLength computes the longest-common-subsequence length between two string
// sequences using two-row dynamic programming.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// Ensure a is the shorter sequence for space optimization
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for j := 1; j <= len(b); j++ {
		for i := 1; i <= len(a); i++ {
			if a[i-1] == b[j-1] {
				curr[i] = prev[i-1] + 1
			} else if prev[i] >= curr[i-1] {
				curr[i] = prev[i]
			} else {
				curr[i] = curr[i-1]
			}
		}
		prev, curr = curr, prev
		for i := range curr {
			curr[i] = 0
		}
	}

	return prev[len(a)]
}

// SequenceRatio is the LCS similarity ratio 2*LCS/(len(a)+len(b)), in [0,1].
// Two empty sequences are identical; one empty sequence matches nothing.
func SequenceRatio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	return 2.0 * float64(lcsLength(a, b)) / float64(len(a)+len(b))
}

// lcsPairs returns the index pairs (i in a, j in b) of one longest common
// subsequence, in order. Used for line alignment when extracting evidence.
func lcsPairs(a, b []string) [][2]int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	// Full DP table; evidence extraction runs only on flagged pairs so the
	// quadratic table stays affordable.
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrack
	pairs := make([][2]int, 0, dp[len(a)][len(b)])
	i, j := len(a), len(b)
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			pairs = append(pairs, [2]int{i - 1, j - 1})
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	// Reverse into ascending order
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}
