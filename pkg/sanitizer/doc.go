// Package sanitizer normalizes raw text taken from fixture files and request
// bodies before it reaches the booking rules.
//
// Functions never panic on odd input. Text helpers return the cleaned string,
// numeric helpers return an error the caller maps into its own domain error.
//
// Normalization includes:
//   - Strings: collapse inner whitespace, trim leading/trailing spaces
//   - Whole numbers: trim, then parse base-10 text such as " 25 " or "+4"
package sanitizer
