// Package attach finds generation requests and runs them.
//
// A request comes from a directive comment in a Go file:
//
//	//confstruct:generate -type=Config -file=testdata/config.yaml
//
// or from a job in the project config. Each attachment is processed on its
// own: read, parse, synthesize, render, write. A failing attachment yields a
// diagnostic and writes nothing; the others are unaffected.
package attach
