package infer

import (
	"fmt"
)

// ShapeError reports a value the inference rules do not cover. It signals a
// broken invariant of the value tree or a root that is not an object.
type ShapeError struct {
	Path        string
	Description string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", displayPath(e.Path), e.Description)
}

// ConversionError reports an array element that cannot take the type
// inferred from the first element.
type ConversionError struct {
	Path string
	Want string
	Got  string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: cannot use %s as %s (element type is taken from the first element)",
		displayPath(e.Path), e.Got, e.Want)
}

// NameCollisionError reports two different shapes that map to one composite
// struct name, e.g. keys "a_b" and "a" -> "b".
type NameCollisionError struct {
	Name       string
	FirstPath  string
	SecondPath string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("struct name %s is derived from both %s and %s with different contents",
		e.Name, displayPath(e.FirstPath), displayPath(e.SecondPath))
}

func displayPath(p string) string {
	if p == "" {
		return "<root>"
	}

	return p
}
