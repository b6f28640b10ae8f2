package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

func JsonHash(s interface{}) string {
	bs, _ := json.Marshal(s)
	hash := sha256.Sum256(bs)
	return hex.EncodeToString(hash[:])
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func CopyIntSlice(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func CopyFloatSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

func CopyIntIntMap(m map[int]int) map[int]int {
	out := make(map[int]int)
	for k, v := range m {
		out[k] = v
	}
	return out
}
