// Package snakecase converts arbitrary text to snake_case: lowercase words
// joined by single underscores, with every other character treated as a
// word boundary.
//
// Two variants are provided. ToSnakeCase only keeps ASCII letters and
// digits. ToSnakeCaseUnicode keeps any letter or number and lowercases it
// with the Unicode case tables.
//
// Input that is already snake_case is returned as is without allocating.
// ConvertASCII and ConvertUnicode expose whether a new string was built.
package snakecase
