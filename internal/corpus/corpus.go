// Package corpus loads and holds the Q&A knowledge base.
// The knowledge base is a JSON file with a top-level "documents" array;
// each document is a curated question/answer pair tagged with category,
// role and keywords.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	apperrors "github.com/tumchatbot/tum-chatbot-go/internal/errors"
)

// Document is a single knowledge base entry. ID is unique within the
// knowledge base; Source is an optional provenance reference. Neither
// participates in ranking.
type Document struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Role     string   `json:"role"`
	Keywords []string `json:"keywords"`
	Source   string   `json:"source,omitempty"`
}

// SearchableText returns the lowercased concatenation of all document
// fields. Both token matching and substring boosts operate on this text.
func (d *Document) SearchableText() string {
	return strings.ToLower(
		d.Question + " " + d.Answer + " " + d.Category + " " + d.Role + " " + strings.Join(d.Keywords, " "),
	)
}

// Corpus is the in-memory knowledge base. It is immutable after Load,
// so it is safe for concurrent readers.
type Corpus struct {
	docs []Document
}

type knowledgeFile struct {
	Documents []Document `json:"documents"`
}

// New creates a corpus from already-built documents.
// Mainly used by tests; production code loads from a file.
func New(docs []Document) *Corpus {
	return &Corpus{docs: docs}
}

// Load reads the knowledge base from a JSON file.
// The server cannot answer anything without it, so callers treat a
// load failure as fatal.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", apperrors.ErrCorpusLoad, path, err)
	}

	var file knowledgeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", apperrors.ErrCorpusLoad, path, err)
	}

	if len(file.Documents) == 0 {
		return nil, fmt.Errorf("%w: %s contains no documents", apperrors.ErrCorpusLoad, path)
	}

	return &Corpus{docs: file.Documents}, nil
}

// Documents returns all knowledge base entries.
// The returned slice must not be modified.
func (c *Corpus) Documents() []Document {
	return c.docs
}

// Len returns the number of knowledge base entries.
func (c *Corpus) Len() int {
	return len(c.docs)
}
