package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"chempaper-backend/internal/llm"
	"chempaper-backend/internal/shared/telemetry"
)

// Client calls the Gemini API for paper analysis and author search.
type Client struct {
	analyzeModel   string
	authorModel    string
	thinkingBudget int32
}

func NewClient(analyzeModel, authorModel string, thinkingBudget int32) *Client {
	return &Client{
		analyzeModel:   analyzeModel,
		authorModel:    authorModel,
		thinkingBudget: thinkingBudget,
	}
}

// newAPIClient builds a fresh SDK client bound to the picked credential.
// Credentials rotate per call, so the client is not reused.
func newAPIClient(ctx context.Context, credential string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  credential,
		Backend: genai.BackendGeminiAPI,
	})
}

// Analyze sends the PDF with a structured-output schema and returns the
// raw JSON document the model produced.
func (c *Client) Analyze(ctx context.Context, in llm.AnalyzeInput) (json.RawMessage, error) {
	api, err := newAPIClient(ctx, in.Credential)
	if err != nil {
		return nil, &llm.BackendError{Op: "analyze", Err: err}
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(in.PDF, "application/pdf"),
			genai.NewPartFromText(userPrompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
		Temperature:       genai.Ptr[float32](0),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(c.thinkingBudget),
		},
	}

	resp, err := api.Models.GenerateContent(ctx, c.analyzeModel, contents, cfg)
	if err != nil {
		return nil, &llm.BackendError{Op: "analyze", Err: err}
	}

	text := stripFences(resp.Text())
	if text == "" {
		return nil, &llm.ParseError{Op: "analyze", Err: fmt.Errorf("empty response")}
	}
	if !json.Valid([]byte(text)) {
		telemetry.Error("gemini.invalid_json", map[string]any{
			"model":  c.analyzeModel,
			"length": len(text),
		})
		return nil, &llm.ParseError{Op: "analyze", Err: fmt.Errorf("response is not valid JSON")}
	}
	return json.RawMessage(text), nil
}

// LookupAuthors runs a search-grounded query about the paper's authors and
// collects the grounding source URLs.
func (c *Client) LookupAuthors(ctx context.Context, in llm.AuthorLookupInput) (llm.AuthorBackground, error) {
	api, err := newAPIClient(ctx, in.Credential)
	if err != nil {
		return llm.AuthorBackground{}, &llm.BackendError{Op: "authors", Err: err}
	}

	prompt := fmt.Sprintf(authorPromptTemplate, in.Title, in.SourceInfo)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := api.Models.GenerateContent(ctx, c.authorModel, contents, cfg)
	if err != nil {
		return llm.AuthorBackground{}, &llm.BackendError{Op: "authors", Err: err}
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return llm.AuthorBackground{}, &llm.ParseError{Op: "authors", Err: fmt.Errorf("empty response")}
	}

	return llm.AuthorBackground{
		Summary: summary,
		Sources: groundingURLs(resp),
	}, nil
}

func groundingURLs(resp *genai.GenerateContentResponse) []string {
	var urls []string
	seen := make(map[string]struct{})
	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			if _, dup := seen[chunk.Web.URI]; dup {
				continue
			}
			seen[chunk.Web.URI] = struct{}{}
			urls = append(urls, chunk.Web.URI)
		}
	}
	return urls
}

// stripFences removes a markdown code fence if the model wrapped its JSON
// in one despite the response MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
