// Package naming derives Go type and field names from configuration keys.
//
// Nested struct names are composite: the parent name followed by the key
// split on underscores with every word's first letter upper-cased, so key
// "db_settings" under "Config" becomes "ConfigDbSettings".
package naming
