package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Formats an uint value into a zero padded hex string wide enough for a value of n bits
func FormatUintHex(value uint64, bits int) string {
	digits := (bits + 3) / 4
	leadingZerosFormat := "0x%0" + fmt.Sprint(digits) + "s"
	return fmt.Sprintf(leadingZerosFormat, strings.ToUpper(strconv.FormatUint(value, 16)))
}

// Returns an string containing all formatted sequence items separated by a given separator
func FormatSlice[T any](input []T, separator string) string {
	var builder strings.Builder

	for i, value := range input {
		builder.WriteString(fmt.Sprint(value))

		if i < len(input)-1 {
			builder.WriteString(separator)
		}
	}

	return builder.String()
}

// Converts a snake_case identifier into CamelCase ("platform_defined" -> "PlatformDefined")
func CamelCase(identifier string) string {
	var builder strings.Builder

	for _, part := range strings.Split(identifier, "_") {
		if part == "" {
			continue
		}

		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}

	return builder.String()
}
