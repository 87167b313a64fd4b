package utils

import (
	"math/rand"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

var random = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandomAlphabetString returns n random lower case letters.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[random.Intn(len(alphabet))]
	}
	return string(b)
}

// ContainsInt64 returns true iff the provided slice hay contains needle.
func ContainsInt64(hay []int64, needle int64) bool {
	for _, v := range hay {
		if v == needle {
			return true
		}
	}
	return false
}

// DedupInt64 drops repeated values, keeping first occurrence order.
func DedupInt64(values []int64) []int64 {
	res := make([]int64, 0, len(values))
	for _, v := range values {
		if !ContainsInt64(res, v) {
			res = append(res, v)
		}
	}
	return res
}
