// Package match suggests the closest known name for a misspelled one.
//
// It backs the "did you mean" hints attached to unknown format tags and
// unknown directive flags.
package match
