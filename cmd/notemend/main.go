package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/notemend/notemend/internal/config"
	"github.com/notemend/notemend/internal/diff"
	"github.com/notemend/notemend/internal/runner"
	"github.com/notemend/notemend/internal/tui"
	"github.com/notemend/notemend/internal/ui"
	"github.com/notemend/notemend/internal/vault"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: current directory as vault)")
	responsePath := flag.String("response", "-", "file with the assistant response to apply, '-' for stdin")
	logFile := flag.String("log", "", "log file path (empty to disable)")
	yes := flag.Bool("yes", false, "accept every diff block without prompting")
	dryRun := flag.Bool("dry-run", false, "compute results but write nothing")
	interactive := flag.Bool("interactive", false, "review blocks in the interactive TUI")
	quiet := flag.Bool("quiet", false, "suppress non-essential output")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	// Load config
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dryRun {
		cfg.Apply.DryRun = true
	}
	if *quiet {
		cfg.UI.Quiet = true
	}

	writer := ui.NewWriter(cfg.UI.Quiet)

	// Initialize logger
	logger, err := runner.NewLogger(*logFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	responseText, err := readResponse(*responsePath)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}

	// Acquire vault lock to prevent multiple instances on the same vault
	vaultLock, err := vault.AcquireLock(cfg.Vault.Root)
	if err != nil {
		log.Fatalf("Failed to acquire vault lock: %v", err)
	}
	defer vaultLock.Release()

	// Show startup info
	writer.StartupInfo(fmt.Sprintf("notemend %s", version))
	writer.StartupInfo(fmt.Sprintf("Vault: %s", cfg.Vault.Root))
	if cfg.Apply.DryRun {
		writer.StartupInfo("Dry run: no files will be written")
	}
	if *logFile != "" {
		writer.StartupInfo(fmt.Sprintf("Logs: %s", *logFile))
	}

	decider := pickDecider(*yes, *interactive, writer)

	r := runner.NewRunner(runner.Options{
		Cfg:     cfg,
		Writer:  writer,
		Logger:  logger,
		Decider: decider,
	})

	res, err := r.Run(responseText)
	if err != nil {
		logger.Error("run failed", err)
		log.Fatalf("Run failed: %v", err)
	}

	writer.Info(fmt.Sprintf("blocks: %d, applied: %d, failed: %d, rejected: %d",
		res.Blocks, res.Applied, res.Failed, res.Rejected))
	if res.Failed > 0 {
		vaultLock.Release()
		os.Exit(1)
	}
}

// readResponse loads the assistant response text from a file or stdin.
func readResponse(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// pickDecider selects how review decisions are collected: -yes accepts all,
// -interactive opens the TUI, otherwise each block gets a y/n prompt.
func pickDecider(yes, interactive bool, writer *ui.Writer) runner.Decider {
	switch {
	case yes:
		return runner.AcceptAll
	case interactive:
		return tui.Review
	default:
		return func(blocks []diff.DiffBlock) (map[string]diff.BlockStatus, error) {
			return promptEach(blocks, writer, os.Stdin)
		}
	}
}

// promptEach asks y/n per block on the terminal.
func promptEach(blocks []diff.DiffBlock, writer *ui.Writer, in io.Reader) (map[string]diff.BlockStatus, error) {
	reader := bufio.NewReader(in)
	statuses := make(map[string]diff.BlockStatus, len(blocks))

	for i, b := range blocks {
		if b.Parsed == nil {
			writer.Warn(fmt.Sprintf("block %d is not a valid diff, skipping", i+1))
			statuses[b.ID] = diff.StatusRejected
			continue
		}

		writer.DiffBlock(b)
		fmt.Printf("Apply this change to %s? [y/N]: ", b.FileName)

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "y" || answer == "yes" {
			statuses[b.ID] = diff.StatusAccepted
		} else {
			statuses[b.ID] = diff.StatusRejected
		}
		if err == io.EOF {
			// No more input; remaining blocks stay undecided -> rejected.
			for _, rest := range blocks[i+1:] {
				statuses[rest.ID] = diff.StatusRejected
			}
			break
		}
	}
	return statuses, nil
}
