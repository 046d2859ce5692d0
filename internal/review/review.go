// Package review holds the accept/reject state for the diff blocks found in a
// single assistant response and turns the accepted ones into file writes.
package review

import (
	"fmt"

	"github.com/notemend/notemend/internal/diff"
)

// Session tracks review decisions for the blocks of one response. Blocks keep
// their response order; grouping by file happens when writes are built.
type Session struct {
	blocks []diff.DiffBlock
	byID   map[string]int
}

// Write is a fully resolved file update: the new content for one note after
// all of its accepted blocks were applied in response order.
type Write struct {
	FileName string
	Content  string
	Applied  []string // block IDs folded into Content
}

// Failure records a block that could not be applied. The remaining accepted
// blocks for the same file are still attempted against the text as it stood
// before the failing block.
type Failure struct {
	BlockID  string
	FileName string
	Err      error
}

// NewSession extracts the diff blocks from responseText. A response with no
// fenced diffs yields a session with zero blocks, not an error.
func NewSession(ex *diff.Extractor, responseText string) *Session {
	blocks := ex.Extract(responseText)
	byID := make(map[string]int, len(blocks))
	for i, b := range blocks {
		byID[b.ID] = i
	}
	return &Session{blocks: blocks, byID: byID}
}

// Blocks returns the blocks in response order. The slice is a copy; decisions
// go through Accept and Reject.
func (s *Session) Blocks() []diff.DiffBlock {
	out := make([]diff.DiffBlock, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Accept marks the block as accepted. Blocks that failed to parse cannot be
// accepted; they have nothing to apply.
func (s *Session) Accept(id string) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown block %q", id)
	}
	if s.blocks[i].Parsed == nil {
		return fmt.Errorf("block %q did not parse as a diff and cannot be accepted", id)
	}
	s.blocks[i].Status = diff.StatusAccepted
	return nil
}

// Reject marks the block as rejected.
func (s *Session) Reject(id string) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown block %q", id)
	}
	s.blocks[i].Status = diff.StatusRejected
	return nil
}

// AcceptAll accepts every parseable block and rejects the rest.
func (s *Session) AcceptAll() {
	for i := range s.blocks {
		if s.blocks[i].Parsed != nil {
			s.blocks[i].Status = diff.StatusAccepted
		} else {
			s.blocks[i].Status = diff.StatusRejected
		}
	}
}

// Pending returns how many blocks still await a decision.
func (s *Session) Pending() int {
	n := 0
	for _, b := range s.blocks {
		if b.Status == diff.StatusPending {
			n++
		}
	}
	return n
}

// SetStatuses overwrites block statuses by ID, used by interactive frontends
// that hold their own copy of the blocks while the user decides.
func (s *Session) SetStatuses(statuses map[string]diff.BlockStatus) {
	for id, st := range statuses {
		if i, ok := s.byID[id]; ok {
			if st == diff.StatusAccepted && s.blocks[i].Parsed == nil {
				continue
			}
			s.blocks[i].Status = st
		}
	}
}

// BuildWrites applies the accepted blocks and returns one Write per touched
// file plus a Failure per block that could not be placed. read loads a file's
// current text by the name the diff targets; a read error fails every
// accepted block for that file.
//
// Blocks targeting the same file are applied in response order, each against
// the text produced by the previous one. A failed block leaves the text
// unchanged for the blocks after it.
func (s *Session) BuildWrites(read func(name string) (string, error)) ([]Write, []Failure) {
	var writes []Write
	var failures []Failure

	// Response order decides file order too: a file is emitted when its first
	// accepted block appears.
	type state struct {
		text    string
		applied []string
		readErr error
	}
	states := make(map[string]*state)
	var fileOrder []string

	for _, b := range s.blocks {
		if b.Status != diff.StatusAccepted || b.Parsed == nil {
			continue
		}
		st, ok := states[b.FileName]
		if !ok {
			text, err := read(b.FileName)
			st = &state{text: text, readErr: err}
			states[b.FileName] = st
			fileOrder = append(fileOrder, b.FileName)
		}
		if st.readErr != nil {
			failures = append(failures, Failure{
				BlockID:  b.ID,
				FileName: b.FileName,
				Err:      fmt.Errorf("reading %s: %w", b.FileName, st.readErr),
			})
			continue
		}

		updated, err := diff.ApplyDiff(st.text, b.Parsed)
		if err != nil {
			failures = append(failures, Failure{BlockID: b.ID, FileName: b.FileName, Err: err})
			continue
		}
		st.text = updated
		st.applied = append(st.applied, b.ID)
	}

	for _, name := range fileOrder {
		st := states[name]
		if len(st.applied) == 0 {
			continue
		}
		writes = append(writes, Write{FileName: name, Content: st.text, Applied: st.applied})
	}
	return writes, failures
}
