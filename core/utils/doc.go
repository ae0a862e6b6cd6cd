// Package utils provides small conversion helpers shared by the parser and the
// reconciliation engine. Conversions never panic: numeric parsing reports
// failure or falls back to zero, which the merge treats as "older".
package utils
