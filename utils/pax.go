package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var paxRegex = regexp.MustCompile(`(\d+)\s*pax`)

// ExtractPax parse sức chứa từ tên loại phòng vendor ("Doble 2 pax" -> 2).
// Không tìm thấy token thì mặc định 1.
func ExtractPax(text string) int {
	match := paxRegex.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return 1
	}
	pax, err := strconv.Atoi(match[1])
	if err != nil {
		return 1
	}
	return pax
}
