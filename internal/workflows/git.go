package workflows

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

var (
	repoURLPattern = regexp.MustCompile(`(https?://[^\s]+|git@[^\s]+)`)
	branchPattern  = regexp.MustCompile(`(?i)\bbranch\s+([\w./-]+)`)
)

// extractRepositoryStage pulls the repository URL (and optional branch)
// out of the request message. A request without a URL is a stage failure,
// not a panic.
func extractRepositoryStage() ports.Stage {
	return ports.StageFunc{
		StageName: "extract_repository",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			// An explicit URL from an earlier turn wins over re-parsing.
			if url := state.GetString(domain.KeyGitRepositoryURL); url != "" {
				return domain.StageOK("extract_repository", nil)
			}

			message := state.GetString(domain.KeyRequestMessage)
			url := repoURLPattern.FindString(message)
			if url == "" {
				return domain.StageFail("extract_repository",
					"no repository URL found in request; include one like https://github.com/org/repo")
			}
			url = strings.TrimRight(url, ".,;)")

			branch := "main"
			if m := branchPattern.FindStringSubmatch(message); m != nil {
				branch = m[1]
			}

			return domain.StageOK("extract_repository", map[string]any{
				domain.KeyGitRepositoryURL: url,
				domain.KeyGitBranch:        branch,
			})
		},
	}
}

// cloneRepositoryStage clones the extracted repository into a workspace.
func cloneRepositoryStage(git ports.RepositoryAnalyzer) ports.Stage {
	return ports.StageFunc{
		StageName: "clone_repository",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			url := state.GetString(domain.KeyGitRepositoryURL)
			if url == "" {
				return domain.StageFail("clone_repository", "repository URL missing from state")
			}

			res, err := git.Clone(ctx, url, state.GetString(domain.KeyGitBranch))
			if err != nil {
				return domain.StageFail("clone_repository", fmt.Sprintf("clone failed: %v", err))
			}

			return domain.StageOK("clone_repository", map[string]any{
				domain.KeyGitLocalPath: res.LocalPath,
				domain.KeyGitBranch:    res.Branch,
			})
		},
	}
}

// analyzeChangesStage diffs the cloned repository and publishes the
// structured analysis.
func analyzeChangesStage(git ports.RepositoryAnalyzer) ports.Stage {
	return ports.StageFunc{
		StageName: "analyze_changes",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			localPath := state.GetString(domain.KeyGitLocalPath)
			if localPath == "" {
				return domain.StageFail("analyze_changes", "repository was not cloned")
			}

			analysis, err := git.Diff(ctx, localPath, "")
			if err != nil {
				return domain.StageFail("analyze_changes", fmt.Sprintf("diff failed: %v", err))
			}
			analysis.RepositoryURL = state.GetString(domain.KeyGitRepositoryURL)

			return domain.StageOK("analyze_changes", map[string]any{
				domain.KeyGitChanges:        analysis.Changes,
				domain.KeyGitAffectedFiles:  analysis.AffectedFiles,
				domain.KeyGitCommitMessages: analysis.CommitMessages,
				domain.KeyGitSummary:        analysis.Summary,
			})
		},
	}
}

// cleanupWorkspaceStage removes the clone directory. Cleanup problems are
// logged through the diagnostic but never fail the workflow.
func cleanupWorkspaceStage(git ports.RepositoryAnalyzer) ports.Stage {
	return ports.StageFunc{
		StageName: "cleanup_workspace",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			localPath := state.GetString(domain.KeyGitLocalPath)
			if err := git.Cleanup(localPath); err != nil {
				return domain.ExecutionResult{
					Stage:      "cleanup_workspace",
					Status:     domain.StageSuccess,
					Diagnostic: fmt.Sprintf("workspace not removed: %v", err),
				}
			}
			return domain.StageOK("cleanup_workspace", nil)
		},
	}
}
