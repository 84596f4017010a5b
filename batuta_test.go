package batuta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuta-io/batuta/pkg/classifier"
	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
	"github.com/batuta-io/batuta/pkg/schema"
)

type staticAnalyzer struct{}

func (staticAnalyzer) Clone(ctx context.Context, url, branch string) (*ports.CloneResult, error) {
	return &ports.CloneResult{LocalPath: "/tmp/repo", Branch: branch, CommitHash: "deadbeef"}, nil
}

func (staticAnalyzer) Diff(ctx context.Context, localPath, since string) (*schema.GitAnalysis, error) {
	return &schema.GitAnalysis{Summary: "Analyzed 1 commits affecting 1 files"}, nil
}

func (staticAnalyzer) Cleanup(localPath string) error { return nil }

func TestEngine_Defaults(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	assert.Len(t, engine.Workflows(), 9)
	assert.Equal(t, classifier.WorkflowGeneral, engine.Classify("hello"))
}

func TestEngine_HandleMessage(t *testing.T) {
	engine, err := New(WithRepositoryAnalyzer(staticAnalyzer{}))
	require.NoError(t, err)

	resp, err := engine.HandleMessage(context.Background(), "sess-1", "user-1",
		"Analyze git repository https://github.com/org/repo")
	require.NoError(t, err)

	assert.Equal(t, classifier.WorkflowGitAnalysis, resp.Workflow)
	assert.Equal(t, domain.PhaseCompleted, resp.Phase)

	// The session is inspectable afterwards.
	state, err := engine.Sessions().Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/org/repo", state.GetString(domain.KeyGitRepositoryURL))
}

func TestEngine_HooksFire(t *testing.T) {
	var ended int
	engine, err := New(WithLifecycleHooks(domain.LifecycleHooks{
		OnPipelineEnd: func(context.Context, *domain.PipelineEvent) { ended++ },
	}))
	require.NoError(t, err)

	_, err = engine.HandleMessage(context.Background(), "sess-1", "", "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, ended)
}

func TestEngine_EmptyMessage(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	_, err = engine.HandleMessage(context.Background(), "sess-1", "", "")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}
