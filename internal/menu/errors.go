package menu

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrConfigNotFound   = errors.New("menu config not found")
	ErrConfigParse      = errors.New("menu config parse error")
	ErrConfigValidation = errors.New("menu config validation error")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrNotAtRoot        = errors.New("categories can only be entered from the root menu")
)

// NotFoundError reports that none of the candidate paths exist.
type NotFoundError struct {
	Paths []string
}

func (e *NotFoundError) Error() string {
	if len(e.Paths) == 0 {
		return "menu config not found: no candidate paths"
	}
	return fmt.Sprintf("menu config not found (tried %s)", strings.Join(e.Paths, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// ParseError wraps a JSON decoding failure. Offset is the byte offset
// reported by the decoder, or -1 when unknown.
type ParseError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "menu config"
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: invalid JSON at offset %d: %v", loc, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: invalid JSON: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrConfigParse
}

// ValidationError describes a structural problem in the config document.
// Index is -1 for problems that are not tied to an array element.
type ValidationError struct {
	Path    string
	Section string
	Index   int
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Section)
	if e.Index >= 0 {
		fmt.Fprintf(&b, "[%d]", e.Index)
	}
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrConfigValidation
}

// UnknownCategoryError is returned when navigation targets a category that
// the config does not define.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q", e.Name)
}

func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}
