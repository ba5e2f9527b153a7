// Package compare diffs two rendered outcomes so a user can see what changed
// between consecutive responses.
package compare

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type ChunkType string

const (
	ChunkAdded   ChunkType = "added"
	ChunkRemoved ChunkType = "removed"
)

// Chunk is one contiguous run of added or removed text.
type Chunk struct {
	Type    ChunkType `json:"type"`
	Content string    `json:"content"`
}

// Result is the change set from Base to Head.
type Result struct {
	BaseID string  `json:"base_id,omitempty"`
	HeadID string  `json:"head_id,omitempty"`
	Chunks []Chunk `json:"chunks"`
}

// Changed reports whether any chunk was produced.
func (r Result) Changed() bool { return len(r.Chunks) > 0 }

// Diff compares base and head line by line. Rendered outcomes are indented
// JSON, so whole lines read better than character runs.
func Diff(baseID, headID, base, head string) Result {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(base, head)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	diffs = dmp.DiffCleanupSemantic(diffs)

	chunks := make([]Chunk, 0)
	for _, d := range diffs {
		var t ChunkType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			t = ChunkAdded
		case diffmatchpatch.DiffDelete:
			t = ChunkRemoved
		default:
			continue
		}
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		chunks = append(chunks, Chunk{Type: t, Content: d.Text})
	}

	return Result{BaseID: baseID, HeadID: headID, Chunks: chunks}
}

// Unified renders the chunks as "+ "/"- " prefixed lines, one per changed
// line. An unchanged result renders as "(no changes)".
func (r Result) Unified() string {
	if !r.Changed() {
		return "(no changes)"
	}
	var sb strings.Builder
	for _, c := range r.Chunks {
		prefix := "+ "
		if c.Type == ChunkRemoved {
			prefix = "- "
		}
		for _, line := range strings.Split(strings.TrimSuffix(c.Content, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
