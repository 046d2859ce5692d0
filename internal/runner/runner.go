// Package runner orchestrates a notemend run: extract diff blocks from a
// response, collect review decisions, apply accepted blocks and write notes.
package runner

import (
	"fmt"

	"github.com/notemend/notemend/internal/config"
	"github.com/notemend/notemend/internal/diff"
	"github.com/notemend/notemend/internal/review"
	"github.com/notemend/notemend/internal/ui"
	"github.com/notemend/notemend/internal/vault"
)

// Decider collects accept/reject decisions for the extracted blocks and
// returns the status per block ID. Implementations range from "accept
// everything" to the interactive TUI.
type Decider func(blocks []diff.DiffBlock) (map[string]diff.BlockStatus, error)

// AcceptAll is the Decider used with -yes: every parseable block is accepted.
func AcceptAll(blocks []diff.DiffBlock) (map[string]diff.BlockStatus, error) {
	statuses := make(map[string]diff.BlockStatus, len(blocks))
	for _, b := range blocks {
		if b.Parsed != nil {
			statuses[b.ID] = diff.StatusAccepted
		} else {
			statuses[b.ID] = diff.StatusRejected
		}
	}
	return statuses, nil
}

// Runner wires the engine to the vault for one response.
type Runner struct {
	cfg    *config.Config
	writer *ui.Writer
	logger *Logger
	decide Decider
}

// Options contains all dependencies for creating a Runner.
type Options struct {
	Cfg     *config.Config
	Writer  *ui.Writer
	Logger  *Logger
	Decider Decider
}

// Result summarizes a run.
type Result struct {
	Blocks   int // blocks found in the response
	Applied  int // blocks folded into written files
	Failed   int // blocks that could not be applied
	Rejected int // blocks rejected (or pending) at review
	Written  []string
}

// NewRunner creates a new Runner.
func NewRunner(opts Options) *Runner {
	return &Runner{
		cfg:    opts.Cfg,
		writer: opts.Writer,
		logger: opts.Logger,
		decide: opts.Decider,
	}
}

// Run processes one assistant response end to end. Apply failures and write
// failures are reported per file and do not abort the rest of the run; the
// returned error covers only setup problems (nothing extracted is not one).
func (r *Runner) Run(responseText string) (*Result, error) {
	session := review.NewSession(diff.NewExtractor(), responseText)
	blocks := session.Blocks()

	parseable := 0
	for _, b := range blocks {
		if b.Parsed != nil {
			parseable++
		}
	}
	r.logger.BlocksExtracted(len(blocks), parseable)

	res := &Result{Blocks: len(blocks)}
	if len(blocks) == 0 {
		r.writer.Info("no diff blocks found in response")
		return res, nil
	}
	r.writer.Info(fmt.Sprintf("found %d diff block(s), %d parseable", len(blocks), parseable))

	statuses, err := r.decide(blocks)
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	session.SetStatuses(statuses)

	writes, failures := session.BuildWrites(func(name string) (string, error) {
		full, err := vault.ResolvePath(r.cfg.Vault.Root, name)
		if err != nil {
			return "", err
		}
		return vault.ReadNote(full)
	})

	for _, f := range failures {
		res.Failed++
		r.logger.ApplyFailed(f.BlockID, f.FileName, f.Err)
		r.writer.Error(fmt.Sprintf("%s: %v", f.FileName, f.Err))
	}

	for _, w := range writes {
		full, err := vault.ResolvePath(r.cfg.Vault.Root, w.FileName)
		if err != nil {
			res.Failed += len(w.Applied)
			r.logger.Error("resolve path", err)
			r.writer.Error(err.Error())
			continue
		}

		if r.cfg.Apply.DryRun {
			res.Applied += len(w.Applied)
			res.Written = append(res.Written, w.FileName)
			r.logger.FileWritten(w.FileName, len(w.Applied), true)
			r.writer.Success(fmt.Sprintf("%s: %d block(s) would be applied (dry run)", w.FileName, len(w.Applied)))
			continue
		}

		if r.cfg.Apply.Backup {
			if err := vault.BackupNote(full); err != nil {
				res.Failed += len(w.Applied)
				r.logger.Error("backup note", err)
				r.writer.Error(fmt.Sprintf("%s: backup failed, not writing: %v", w.FileName, err))
				continue
			}
		}
		if err := vault.WriteNoteAtomic(full, w.Content); err != nil {
			res.Failed += len(w.Applied)
			r.logger.Error("write note", err)
			r.writer.Error(fmt.Sprintf("%s: write failed: %v", w.FileName, err))
			continue
		}

		for _, id := range w.Applied {
			r.logger.BlockApplied(id, w.FileName)
		}
		res.Applied += len(w.Applied)
		res.Written = append(res.Written, w.FileName)
		r.logger.FileWritten(w.FileName, len(w.Applied), false)
		r.writer.Success(fmt.Sprintf("%s: %d block(s) applied", w.FileName, len(w.Applied)))
	}

	res.Rejected = len(blocks) - res.Applied - res.Failed
	return res, nil
}
