// Package input sanitizes and checks values coming from forms and query strings.
//
// Nothing in here returns an error: invalid input yields false, an empty
// string or the caller supplied default.
package input
