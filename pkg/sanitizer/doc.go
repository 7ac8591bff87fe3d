// Package sanitizer normalizes free-text input before validation,
// storage and querying.
//
// All functions are idempotent - applying them twice produces the
// same result - and handle invalid input by returning empty values
// rather than errors. EscapeRegex must be applied to any user-supplied
// substring before it is embedded in a MongoDB $regex filter.
package sanitizer
