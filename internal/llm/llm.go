package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// AnalyzeInput carries the PDF and the credential to use for one analysis call.
type AnalyzeInput struct {
	PDF        []byte
	Credential string
}

// AuthorLookupInput carries what the author search needs.
type AuthorLookupInput struct {
	Title      string
	SourceInfo string
	Credential string
}

// AuthorBackground is the result of a grounded author search.
type AuthorBackground struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

// Client analyzes papers and looks up author backgrounds.
type Client interface {
	Analyze(ctx context.Context, in AnalyzeInput) (json.RawMessage, error)
	LookupAuthors(ctx context.Context, in AuthorLookupInput) (AuthorBackground, error)
}

// BackendError indicates the upstream model call itself failed.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ParseError indicates the model responded but the payload was unusable.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm %s: bad response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
