package shared

import (
	"strconv"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// ConvertStringToInt returns fallback for an empty or malformed value.
func ConvertStringToInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int")

		return fallback
	}

	return intValue
}

// Prepend returns items with item inserted at the head.
func Prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}

// IndexOf returns the index of the first item matching match, or -1.
func IndexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}

	return -1
}

// Filter returns the items matching keep, never nil.
func Filter[T any](items []T, keep func(T) bool) []T {
	res := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			res = append(res, item)
		}
	}

	return res
}

// Clone returns a shallow copy so callers cannot mutate a manager's collection.
func Clone[T any](items []T) []T {
	return append(make([]T, 0, len(items)), items...)
}
