// Package diagnostic provides structured reports for generation runs.
//
// A Diagnostic names the directive that failed, the configuration file it
// points to, the path inside that file when known, and a stable code that
// tools can match on.
package diagnostic
