package diff

import (
	"strings"

	"github.com/google/uuid"
)

// BlockStatus is the review state of an extracted diff block. It is mutated
// only by the caller's review workflow, never by the engine.
type BlockStatus int

const (
	// StatusPending means the block has not been reviewed yet.
	StatusPending BlockStatus = iota
	// StatusAccepted means the caller approved the block for application.
	StatusAccepted
	// StatusRejected means the caller declined the block.
	StatusRejected
)

// String returns the status as a lowercase name.
func (s BlockStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// UnknownFile is the filename placeholder used when a fenced diff section
// fails to parse, so the caller's UI can still show something.
const UnknownFile = "unknown file"

// DiffBlock is one fenced diff section extracted from assistant output,
// together with its parse result and review status. Parsed is nil when the
// section body was not a valid diff.
type DiffBlock struct {
	ID       string
	RawDiff  string
	FileName string
	Parsed   *ParsedDiff
	Status   BlockStatus
}

// Extractor scans free-form text for fenced diff sections. It owns its ID
// generator so block identity needs no shared mutable state.
type Extractor struct {
	newID func() string
}

// NewExtractor returns an Extractor with a UUID-based ID generator.
func NewExtractor() *Extractor {
	return &Extractor{newID: uuid.NewString}
}

const (
	diffFenceOpen = "```diff"
	fenceClose    = "```"
)

// Extract returns one DiffBlock per fenced ```diff section in text. Each
// section body is trimmed and parsed independently. Text with no fenced diff
// sections yields zero blocks, not an error. Unterminated fences are ignored.
func (e *Extractor) Extract(text string) []DiffBlock {
	var blocks []DiffBlock
	var body []string
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inFence {
			if trimmed == diffFenceOpen {
				inFence = true
				body = body[:0]
			}
			continue
		}
		if trimmed == fenceClose {
			inFence = false
			blocks = append(blocks, e.newBlock(strings.TrimSpace(strings.Join(body, "\n"))))
			continue
		}
		body = append(body, line)
	}

	return blocks
}

func (e *Extractor) newBlock(raw string) DiffBlock {
	block := DiffBlock{
		ID:       e.newID(),
		RawDiff:  raw,
		FileName: UnknownFile,
		Status:   StatusPending,
	}
	if parsed := ParseDiff(raw); parsed != nil {
		block.Parsed = parsed
		block.FileName = parsed.FileName
	}
	return block
}
