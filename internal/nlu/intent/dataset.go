package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"bankbot/pkg/log"
)

const intentsSchema = `{
	"type": "object",
	"required": ["intents"],
	"properties": {
		"intents": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "examples"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"examples": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`

var documentSchema = mustSchema(intentsSchema)

func mustSchema(raw string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("intent: invalid intents schema: %v", err))
	}
	return s
}

// DatasetStore reads and writes the training-data document as a whole.
type DatasetStore struct {
	path string
	l    log.Logger
}

// NewDatasetStore creates a store backed by the JSON file at path.
func NewDatasetStore(l log.Logger, path string) *DatasetStore {
	return &DatasetStore{path: path, l: l}
}

// Path returns the backing file.
func (s *DatasetStore) Path() string {
	return s.path
}

// Load reads the document. It returns ErrIntentsNotFound when the file is
// missing and wraps ErrInvalidIntents when it cannot be parsed or validated.
func (s *DatasetStore) Load(ctx context.Context) ([]Intent, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrIntentsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	result, err := documentSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIntents, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIntents, schemaErrors(result))
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIntents, err)
	}
	if doc.Intents == nil {
		doc.Intents = []Intent{}
	}
	return doc.Intents, nil
}

// LoadOrEmpty is Load for callers that must keep going: a missing or
// corrupt document yields an empty list and a warning.
func (s *DatasetStore) LoadOrEmpty(ctx context.Context) []Intent {
	intents, err := s.Load(ctx)
	if err != nil {
		s.l.Warnf(ctx, "%s: %s: %v", LogPrefixLoadIntents, s.path, err)
		return []Intent{}
	}
	return intents
}

// Save validates intents and atomically replaces the document. Output is
// indented with four spaces and keeps non-ASCII text as-is.
func (s *DatasetStore) Save(ctx context.Context, intents []Intent) error {
	if err := ValidateIntents(intents); err != nil {
		return err
	}
	if intents == nil {
		intents = []Intent{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", intentsIndent)
	if err := enc.Encode(Document{Intents: normalizeExamples(intents)}); err != nil {
		return fmt.Errorf("encode intents: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// datasetSnapshot is the raw document as it was before a write. A nil raw
// means there was no file.
type datasetSnapshot struct {
	raw []byte
}

func (s *DatasetStore) snapshot() (datasetSnapshot, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return datasetSnapshot{}, nil
	}
	if err != nil {
		return datasetSnapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return datasetSnapshot{raw: raw}, nil
}

// restore puts the document back exactly as snap recorded it.
func (s *DatasetStore) restore(snap datasetSnapshot) error {
	if snap.raw == nil {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return writeFileAtomic(s.path, snap.raw)
}

// ValidateIntents checks the document schema and that names are unique.
func ValidateIntents(intents []Intent) error {
	result, err := documentSchema.Validate(gojsonschema.NewGoLoader(Document{Intents: normalizeExamples(intents)}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIntents, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidIntents, schemaErrors(result))
	}

	seen := make(map[string]struct{}, len(intents))
	for _, in := range intents {
		if _, dup := seen[in.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateIntent, in.Name)
		}
		seen[in.Name] = struct{}{}
	}
	return nil
}

// normalizeExamples replaces nil example lists so they encode as [].
func normalizeExamples(intents []Intent) []Intent {
	out := make([]Intent, len(intents))
	for i, in := range intents {
		out[i] = in
		if out[i].Examples == nil {
			out[i].Examples = []string{}
		}
	}
	return out
}

func schemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
