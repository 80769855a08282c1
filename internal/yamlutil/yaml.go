// Package yamlutil wraps YAML parsing so callers never import the YAML
// library directly. It also splits the YAML front matter off explainer
// Markdown files.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNoFrontMatter  = errors.New("yamlutil: no front matter")
)

var frontMatterFence = []byte("---")

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Decode parses data into v, ignoring unknown fields.
func Decode(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeStrict parses data into v and rejects unknown fields.
func DecodeStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode serializes v.
func Encode(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// rest of a document. ErrNoFrontMatter is returned, with the whole input as
// body, when the document does not start with a fence or never closes it.
func SplitFrontMatter(src []byte) (frontMatter, body []byte, err error) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	first, rest, found := bytes.Cut(src, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimSpace(first), frontMatterFence) {
		return nil, src, ErrNoFrontMatter
	}

	offset := 0
	for _, line := range bytes.SplitAfter(rest, []byte("\n")) {
		if bytes.Equal(bytes.TrimSpace(line), frontMatterFence) {
			return rest[:offset], rest[offset+len(line):], nil
		}
		offset += len(line)
	}
	return nil, src, ErrNoFrontMatter
}

// DecodeFrontMatter decodes the front matter of src into v and returns the
// remaining body. Unknown front matter keys are ignored.
func DecodeFrontMatter(src []byte, v any) ([]byte, error) {
	fm, body, err := SplitFrontMatter(src)
	if err != nil {
		return body, err
	}
	if len(bytes.TrimSpace(fm)) == 0 {
		return body, nil
	}
	if err := Decode(fm, v); err != nil {
		return body, err
	}
	return body, nil
}
