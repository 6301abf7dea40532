// Package engine orchestrates build and render passes over path snapshots.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tvetkov/treegen/internal/builder"
	"github.com/tvetkov/treegen/internal/render"
	"github.com/tvetkov/treegen/internal/types"
)

// State identifies where the most recent pass currently is in its lifecycle.
type State int32

const (
	StateIdle State = iota
	StateBuilding
	StateRendering
	StateDone
	StateCancelled
)

// Status classifies the terminal outcome of one pass.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

const (
	passStartedMessage   = "pass started"
	passCancelledMessage = "pass cancelled"
	passFailedMessage    = "pass failed"
	passCompletedMessage = "pass completed"

	generationFieldName = "generation"
	entriesFieldName    = "entries"
)

// Request is one (paths, configuration) snapshot submitted for processing.
type Request struct {
	Entries       []types.PathEntry
	Configuration types.Configuration
}

// Result pairs the rendered text with the statistics derived from the same
// hierarchy snapshot.
type Result struct {
	Text       string
	Statistics types.Statistics
}

// Outcome is the terminal signal of one pass. Result is nil unless the status
// is StatusSuccess.
type Outcome struct {
	Status Status
	Result *Result
	Err    error
}

// Options configures a Controller.
type Options struct {
	// CoalesceDelay is waited before a pass starts so that rapid successive
	// submissions collapse into the latest one. Zero disables the delay.
	CoalesceDelay time.Duration
	// OnOutcome, when set, receives the terminal outcome of every pass.
	OnOutcome func(Outcome)
}

// Controller guarantees at most one in-flight pass. Submitting a new request
// cancels any pass still building or rendering; a superseded pass never
// overwrites the results of a newer one.
type Controller struct {
	logger        *zap.Logger
	coalesceDelay time.Duration
	onOutcome     func(Outcome)

	mutex        sync.Mutex
	activeCancel context.CancelFunc
	generation   uint64
	state        State
	lastResult   *Result
	waitGroup    sync.WaitGroup
}

// NewController constructs a Controller. A nil logger disables pass logging.
func NewController(logger *zap.Logger, options Options) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		logger:        logger,
		coalesceDelay: options.CoalesceDelay,
		onOutcome:     options.OnOutcome,
		state:         StateIdle,
	}
}

// Submit schedules an asynchronous pass for the request, superseding any pass
// still in flight. The outcome is delivered through Options.OnOutcome.
func (controller *Controller) Submit(request Request) {
	controller.mutex.Lock()
	if controller.activeCancel != nil {
		controller.activeCancel()
	}
	passContext, cancelPass := context.WithCancel(context.Background())
	controller.activeCancel = cancelPass
	controller.generation++
	passGeneration := controller.generation
	controller.waitGroup.Add(1)
	controller.mutex.Unlock()

	go func() {
		defer controller.waitGroup.Done()
		outcome := controller.executePass(passContext, passGeneration, request)
		if controller.onOutcome != nil {
			controller.onOutcome(outcome)
		}
	}()
}

// Run executes one pass synchronously, superseding any pass still in flight.
// It is the entry point for one-shot callers that have no event loop.
func (controller *Controller) Run(ctx context.Context, request Request) Outcome {
	controller.mutex.Lock()
	if controller.activeCancel != nil {
		controller.activeCancel()
	}
	passContext, cancelPass := context.WithCancel(ctx)
	controller.activeCancel = cancelPass
	controller.generation++
	passGeneration := controller.generation
	controller.mutex.Unlock()

	return controller.executePass(passContext, passGeneration, request)
}

// Cancel stops any in-flight pass. Cancelling an already finished or already
// cancelled pass is a no-op.
func (controller *Controller) Cancel() {
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	if controller.activeCancel != nil {
		controller.activeCancel()
	}
}

// Wait blocks until every submitted pass has delivered its outcome.
func (controller *Controller) Wait() {
	controller.waitGroup.Wait()
}

// State reports the lifecycle position of the most recent pass.
func (controller *Controller) State() State {
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	return controller.state
}

// LastResult returns the result of the most recently completed, non-cancelled
// pass. Cancelled and failed passes leave it untouched.
func (controller *Controller) LastResult() (*Result, bool) {
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	return controller.lastResult, controller.lastResult != nil
}

// executePass runs build and render for one snapshot. The cancellation flag is
// checked immediately before publishing so a slow superseded pass can never
// replace a newer pass's result.
func (controller *Controller) executePass(passContext context.Context, passGeneration uint64, request Request) Outcome {
	controller.logger.Debug(passStartedMessage,
		zap.Uint64(generationFieldName, passGeneration),
		zap.Int(entriesFieldName, len(request.Entries)))

	if controller.coalesceDelay > 0 {
		coalesceTimer := time.NewTimer(controller.coalesceDelay)
		defer coalesceTimer.Stop()
		select {
		case <-passContext.Done():
			return controller.finishPass(passGeneration, Outcome{Status: StatusCancelled, Err: passContext.Err()})
		case <-coalesceTimer.C:
		}
	}

	controller.setState(passGeneration, StateBuilding)
	buildResult, buildError := builder.Build(passContext, request.Entries, request.Configuration.IgnoredSegments)
	if buildError != nil {
		return controller.finishPass(passGeneration, classifyFailure(buildError))
	}

	controller.setState(passGeneration, StateRendering)
	renderedText, renderError := render.Render(passContext, buildResult.Root, buildResult.Statistics, request.Configuration)
	if renderError != nil {
		return controller.finishPass(passGeneration, classifyFailure(renderError))
	}

	if cancellationError := passContext.Err(); cancellationError != nil {
		return controller.finishPass(passGeneration, Outcome{Status: StatusCancelled, Err: cancellationError})
	}

	passResult := &Result{Text: renderedText, Statistics: buildResult.Statistics}
	return controller.finishPass(passGeneration, Outcome{Status: StatusSuccess, Result: passResult})
}

// finishPass records the terminal outcome for a pass. Results and state are
// only published while the pass is still the current generation.
func (controller *Controller) finishPass(passGeneration uint64, outcome Outcome) Outcome {
	controller.mutex.Lock()
	if passGeneration == controller.generation {
		switch outcome.Status {
		case StatusSuccess:
			controller.state = StateDone
			controller.lastResult = outcome.Result
		case StatusCancelled:
			controller.state = StateCancelled
		case StatusFailed:
			controller.state = StateDone
		}
	}
	controller.mutex.Unlock()

	switch outcome.Status {
	case StatusCancelled:
		controller.logger.Debug(passCancelledMessage, zap.Uint64(generationFieldName, passGeneration))
	case StatusFailed:
		controller.logger.Debug(passFailedMessage,
			zap.Uint64(generationFieldName, passGeneration), zap.Error(outcome.Err))
	default:
		controller.logger.Debug(passCompletedMessage, zap.Uint64(generationFieldName, passGeneration))
	}
	return outcome
}

// setState publishes a lifecycle transition while the pass is still current.
func (controller *Controller) setState(passGeneration uint64, state State) {
	controller.mutex.Lock()
	if passGeneration == controller.generation {
		controller.state = state
	}
	controller.mutex.Unlock()
}

// classifyFailure maps an engine error onto the pass outcome taxonomy.
// Cancellation is expected during interactive use and is kept distinct from
// genuine failures.
func classifyFailure(err error) Outcome {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Outcome{Status: StatusCancelled, Err: err}
	}
	return Outcome{Status: StatusFailed, Err: err}
}
