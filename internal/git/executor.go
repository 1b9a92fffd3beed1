package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrNotRepository is returned when the work dir is not inside a git repository
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoSuchBranch is returned when the target branch cannot be resolved
	ErrNoSuchBranch = errors.New("branch does not exist")

	// ErrDiffGenerationFailed is returned when git diff fails
	ErrDiffGenerationFailed = errors.New("failed to generate git diff")
)

// DiffResult holds the changes between the current branch and a target branch
type DiffResult struct {
	CurrentBranch string
	TargetBranch  string
	DiffStat      string
	DiffContent   string
}

// HasChanges reports whether the diff contains anything
func (d DiffResult) HasChanges() bool {
	return d.DiffStat != "" || d.DiffContent != ""
}

// Executor defines the interface for git command execution
type Executor interface {
	// IsRepository reports whether the work dir is inside a git repository
	IsRepository(ctx context.Context) bool

	// CurrentBranch returns the current branch name
	CurrentBranch(ctx context.Context) (string, error)

	// BranchExists reports whether a branch or ref can be resolved
	BranchExists(ctx context.Context, branch string) bool

	// Diff returns the changes of the current branch since it forked from target
	Diff(ctx context.Context, target string) (*DiffResult, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepository reports whether the work dir is inside a git repository
func (e *DefaultExecutor) IsRepository(ctx context.Context) bool {
	_, err := e.runGit(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the current branch name
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := e.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: failed to get current branch: %v", ErrNotRepository, err)
	}
	return branch, nil
}

// BranchExists reports whether a branch or ref can be resolved
func (e *DefaultExecutor) BranchExists(ctx context.Context, branch string) bool {
	// refuse anything git would parse as an option
	if branch == "" || strings.HasPrefix(branch, "-") {
		return false
	}
	_, err := e.runGit(ctx, "rev-parse", "--verify", "--quiet", branch)
	return err == nil
}

// Diff returns the stat and full diff of target...current
func (e *DefaultExecutor) Diff(ctx context.Context, target string) (*DiffResult, error) {
	current, err := e.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	if !e.BranchExists(ctx, target) {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchBranch, target)
	}

	rangeSpec := fmt.Sprintf("%s...%s", target, current)

	stat, err := e.runGit(ctx, "diff", "--stat", rangeSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiffGenerationFailed, err)
	}

	content, err := e.runGit(ctx, "diff", rangeSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiffGenerationFailed, err)
	}

	return &DiffResult{
		CurrentBranch: current,
		TargetBranch:  target,
		DiffStat:      stat,
		DiffContent:   content,
	}, nil
}
