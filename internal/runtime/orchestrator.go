// Package runtime drives one request through its whole lifecycle:
// receive, classify, dispatch, execute, persist, respond. It owns the
// per-request phase machine; pipeline mechanics live in pkg/pipeline and
// session safety in pkg/session.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/batuta-io/batuta/internal/logging"
	"github.com/batuta-io/batuta/pkg/classifier"
	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/pipeline"
	"github.com/batuta-io/batuta/pkg/session"
)

// Response is what one handled request produces.
type Response struct {
	SessionID string                 `json:"session_id"`
	Workflow  string                 `json:"workflow"`
	Phase     domain.RequestPhase    `json:"phase"`
	Reply     string                 `json:"reply"`
	Result    *domain.PipelineResult `json:"result,omitempty"`
}

// Orchestrator routes requests to workflows and executes them under the
// session lock, so a session never runs two pipelines concurrently.
type Orchestrator struct {
	classifier *classifier.Classifier
	registry   *pipeline.Registry
	sessions   *session.Manager
	logger     *slog.Logger
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an Orchestrator. It validates the classifier/registry
// consistency invariant up front: every name the classifier can emit must
// resolve, so routing can never dead-end at request time.
func New(cls *classifier.Classifier, reg *pipeline.Registry, sessions *session.Manager, opts ...Option) (*Orchestrator, error) {
	if err := cls.Validate(reg); err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}

	o := &Orchestrator{
		classifier: cls,
		registry:   reg,
		sessions:   sessions,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Handle processes one request end to end. Stage failures surface in the
// Response phase, not as an error; the returned error is reserved for
// infrastructure problems (store failures, unknown workflow).
func (o *Orchestrator) Handle(ctx context.Context, sessionID, userID, message string) (*Response, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	resp := &Response{SessionID: sessionID, Phase: domain.PhaseReceived}
	start := time.Now()

	err := o.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		store := o.sessions.Store()

		state, err := store.Load(ctx, sessionID)
		if err == domain.ErrSessionNotFound {
			state = domain.NewState(sessionID, userID)
		} else if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		state.Set(domain.KeyRequestMessage, message)

		workflow := o.classifier.Classify(message, state)
		resp.Workflow = workflow
		resp.Phase = domain.PhaseClassified
		state.Workflow = workflow
		state.Set(domain.KeyRequestWorkflow, workflow)

		p, err := o.registry.Resolve(workflow)
		if err != nil {
			resp.Phase = domain.PhaseFailed
			return err
		}
		resp.Phase = domain.PhaseDispatched

		o.logger.Info("Dispatching request",
			"session_id", sessionID,
			"workflow", workflow,
		)

		resp.Phase = domain.PhaseExecuting
		result := p.Run(ctx, state)
		resp.Result = result

		// State survives even when the run failed: completed stages'
		// progress is kept for the next request in the session.
		if err := store.Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}

		resp.Phase = phaseFor(result.Status)
		resp.Reply = BuildReply(workflow, result, state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Request handled",
		"session_id", sessionID,
		"workflow", resp.Workflow,
		"phase", resp.Phase,
		"duration", time.Since(start),
	)

	return resp, nil
}

// Sessions exposes the session manager for surface adapters (HTTP, CLI).
func (o *Orchestrator) Sessions() *session.Manager {
	return o.sessions
}

// Workflows returns the registered workflow names.
func (o *Orchestrator) Workflows() []string {
	return o.registry.Names()
}

// Classify exposes routing without execution, for dry-run surfaces.
func (o *Orchestrator) Classify(message string) string {
	return o.classifier.Classify(message, nil)
}

func phaseFor(status domain.PipelineStatus) domain.RequestPhase {
	switch status {
	case domain.PipelineFailed:
		return domain.PhaseFailed
	case domain.PipelineExhausted:
		return domain.PhaseExhausted
	default:
		return domain.PhaseCompleted
	}
}
