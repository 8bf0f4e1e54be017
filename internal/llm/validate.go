package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Normalised stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// compiled holds one compiled validator per *Schema.
var compiled sync.Map // map[*Schema]*jsonschema.Schema

// Validate checks raw against the schema. A nil schema accepts anything.
// Failures are *ErrInvalidResponse.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	v, err := s.validator()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", s.Name, err)}
	}
	if err := v.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", s.Name, err)}
	}
	return nil
}

func (s *Schema) validator() (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps with typed slices.
	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	url := "schema://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, err
	}
	v, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	actual, _ := compiled.LoadOrStore(s, v)
	return actual.(*jsonschema.Schema), nil
}

// checkContent validates provider output. Content that fails because the
// model hit its token limit is reported as *ErrMaxTokensExceeded, which the
// retry layer does not retry.
func checkContent(schema *Schema, content json.RawMessage, stop string) error {
	err := schema.Validate(content)
	if err != nil && stop == StopMaxTokens {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return err
}
