// Package git implements ports.RepositoryAnalyzer by shelling out to the
// git binary. Clones land in a temporary directory and are removed via
// Cleanup once the pipeline is done with them.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/batuta-io/batuta/internal/logging"
	"github.com/batuta-io/batuta/pkg/ports"
	"github.com/batuta-io/batuta/pkg/schema"
)

// DefaultCloneTimeout bounds how long a clone may take before the command
// is killed.
const DefaultCloneTimeout = 5 * time.Minute

// maxCommits caps how much history Diff inspects.
const maxCommits = 10

// Analyzer shells out to git. The zero value is not usable; construct with
// New.
type Analyzer struct {
	cloneTimeout time.Duration
	logger       *slog.Logger
}

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithCloneTimeout overrides the clone deadline.
func WithCloneTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.cloneTimeout = d }
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		cloneTimeout: DefaultCloneTimeout,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Clone fetches the repository into a fresh temporary directory and
// resolves the HEAD commit.
func (a *Analyzer) Clone(ctx context.Context, url, branch string) (*ports.CloneResult, error) {
	if url == "" {
		return nil, fmt.Errorf("repository url cannot be empty")
	}
	if branch == "" {
		branch = "main"
	}

	dir, err := os.MkdirTemp("", "batuta-git-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cloneTimeout)
	defer cancel()

	if out, err := a.run(ctx, "", "clone", "--depth", strconv.Itoa(maxCommits+1), "--branch", branch, url, dir); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to clone %s: %w: %s", url, err, out)
	}

	hash, err := a.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	a.logger.Debug("Cloned repository", "url", url, "branch", branch, "path", dir)

	return &ports.CloneResult{
		LocalPath:  dir,
		Branch:     branch,
		CommitHash: strings.TrimSpace(hash),
	}, nil
}

// Diff analyzes changes in the repository at localPath. When since is
// empty it compares the last commit against its parent.
func (a *Analyzer) Diff(ctx context.Context, localPath, since string) (*schema.GitAnalysis, error) {
	if _, err := os.Stat(localPath); err != nil {
		return nil, fmt.Errorf("invalid repository path %s: %w", localPath, err)
	}

	rng := "HEAD~1..HEAD"
	logArgs := []string{"log", "--oneline", "-" + strconv.Itoa(maxCommits)}
	if since != "" {
		rng = since + "..HEAD"
		logArgs = []string{"log", rng, "--oneline", "-" + strconv.Itoa(maxCommits)}
	}

	logOut, err := a.run(ctx, localPath, logArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit log: %w", err)
	}
	messages := splitLines(logOut)

	statusOut, err := a.run(ctx, localPath, "diff", "--name-status", rng)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s: %w", rng, err)
	}
	changes, affected := ParseNameStatus(statusOut)

	numstatOut, err := a.run(ctx, localPath, "diff", "--numstat", rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read diff stats: %w", err)
	}
	ApplyNumstat(changes, numstatOut)

	branch, _ := a.run(ctx, localPath, "rev-parse", "--abbrev-ref", "HEAD")
	hash, _ := a.run(ctx, localPath, "rev-parse", "HEAD")

	return &schema.GitAnalysis{
		Branch:         strings.TrimSpace(branch),
		CommitHash:     strings.TrimSpace(hash),
		Changes:        changes,
		AffectedFiles:  affected,
		CommitMessages: messages,
		Summary:        fmt.Sprintf("Analyzed %d commits affecting %d files", len(messages), len(affected)),
	}, nil
}

// Cleanup removes a working directory created by Clone. A missing path is
// not an error.
func (a *Analyzer) Cleanup(localPath string) error {
	if localPath == "" {
		return nil
	}
	if err := os.RemoveAll(localPath); err != nil {
		return fmt.Errorf("failed to clean up %s: %w", localPath, err)
	}
	return nil
}

// run executes a git subcommand, optionally inside dir, returning combined
// output.
func (a *Analyzer) run(ctx context.Context, dir string, args ...string) (string, error) {
	full := args
	if dir != "" {
		full = append([]string{"-C", dir}, args...)
	}

	cmd := exec.CommandContext(ctx, "git", full...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// changeTypes maps git status letters to change type names.
var changeTypes = map[byte]string{
	'A': "added",
	'M': "modified",
	'D': "deleted",
	'R': "renamed",
	'C': "copied",
}

// ParseNameStatus parses `git diff --name-status` output into changes and
// the flat list of affected paths. Rename and copy lines carry two paths;
// the destination is the affected file.
func ParseNameStatus(out string) ([]schema.GitChange, []string) {
	var (
		changes  []schema.GitChange
		affected []string
	)

	for _, line := range splitLines(out) {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		status := parts[0]
		path := parts[1]
		if len(parts) >= 3 && (status[0] == 'R' || status[0] == 'C') {
			path = parts[2]
		}

		kind, ok := changeTypes[status[0]]
		if !ok {
			kind = "unknown"
		}

		changes = append(changes, schema.GitChange{
			FilePath:   path,
			ChangeType: kind,
		})
		affected = append(affected, path)
	}

	return changes, affected
}

// ApplyNumstat merges `git diff --numstat` counts into changes by file
// path. Binary files report "-" counts and stay at zero.
func ApplyNumstat(changes []schema.GitChange, out string) {
	stats := make(map[string][2]int)
	for _, line := range splitLines(out) {
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		add, _ := strconv.Atoi(parts[0])
		del, _ := strconv.Atoi(parts[1])
		stats[parts[2]] = [2]int{add, del}
	}

	for i := range changes {
		if s, ok := stats[changes[i].FilePath]; ok {
			changes[i].Additions = s[0]
			changes[i].Deletions = s[1]
		}
	}
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
