// Package format parses configuration files into a value tree.
//
// Supported formats:
//   - json (github.com/goccy/go-json token decoder, key order preserved)
//   - yaml / yml (gopkg.in/yaml.v3 node API, aliases and merge keys resolved)
//   - toml (github.com/BurntSushi/toml, key order recovered from metadata)
//
// The format tag is either an explicit override or the file extension; see
// ResolveTag. Parsing is a pure function of content and tag.
package format
