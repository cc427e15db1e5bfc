package interpreter

import (
	"strconv"
	"strings"
)

// numberWords maps Korean counting words to integers.
var numberWords = map[string]int{
	"한": 1, "하나": 1, "두": 2, "둘": 2, "세": 3, "셋": 3, "네": 4, "넷": 4,
	"다섯": 5, "여섯": 6, "일곱": 7, "여덟": 8, "아홉": 9, "열": 10,
}

// ParseQuantity resolves a quantity token to an integer. Empty tokens,
// unparseable digits, and unknown words all default to 1; this never
// fails.
func ParseQuantity(token string) int {
	if token == "" {
		return 1
	}
	lower := strings.ToLower(token)
	if n, err := strconv.Atoi(lower); err == nil {
		return n
	}
	if n, ok := numberWords[lower]; ok {
		return n
	}
	return 1
}
