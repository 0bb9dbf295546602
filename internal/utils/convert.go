package utils

import (
	"strconv"
)

// StringToInt converts a string to int, returning 0 on error.
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// StringToUint converts a string to uint, returning 0 on error.
func StringToUint(s string) uint {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(i)
}

// IntToString converts an int to its decimal string.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

func ConvertFloat64ToFloat32Embeddings(embeddings [][]float64) [][]float32 {
	float32Embeddings := make([][]float32, len(embeddings))
	for i, vec64 := range embeddings {
		float32Embeddings[i] = ConvertFloat64ToFloat32Embedding(vec64)
	}
	return float32Embeddings
}

func ConvertFloat64ToFloat32Embedding(embedding []float64) []float32 {
	float32Embedding := make([]float32, len(embedding))
	for i, v := range embedding {
		float32Embedding[i] = float32(v)
	}
	return float32Embedding
}
