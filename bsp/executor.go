package bsp

import "context"

// StepFunc executes a single super step and returns the number of items that
// were active during the step.
type StepFunc func(ctx context.Context, superStep int) (int, error)

// ExecutorCallbacks encapsulates a series of callbacks that are invoked by an
// Executor instance. All callbacks are optional and will be ignored if not
// specified.
type ExecutorCallbacks struct {
	// PreStep, if defined, is invoked before executing a super step.
	PreStep func(ctx context.Context, superStep int) error

	// PostStep, if defined, is invoked after running a super step.
	PostStep func(ctx context.Context, superStep, activeInStep int) error

	// ShouldRunAnotherStep if defined, is invoked after running a super step.
	// it checks whether the condition for terminating the entire run has
	// been met and if so the executor terminates, else the executor will
	// execute another step.
	ShouldRunAnotherStep func(
		ctx context.Context, superStep, activeInStep int,
	) (bool, error)
}

func initWithDefaultCallbacks(cb *ExecutorCallbacks) {
	if cb.PreStep == nil {
		cb.PreStep = func(ctx context.Context, superStep int) error {
			return nil
		}
	}

	if cb.PostStep == nil {
		cb.PostStep = func(ctx context.Context, superStep, activeInStep int) error {
			return nil
		}
	}

	if cb.ShouldRunAnotherStep == nil {
		cb.ShouldRunAnotherStep = func(
			ctx context.Context, superStep, activeInStep int,
		) (bool, error) {

			return true, nil
		}
	}
}

// ExecutorFactory is a function that creates new Executor instances.
type ExecutorFactory func(stepFn StepFunc, cbs ExecutorCallbacks) *Executor

// Executor serves as an orchestration layer for execution of super steps until
// an error occurs or an exit condition is met.
// Clients can provide an optional set of callbacks to be executed before and
// after each super-step.
type Executor struct {
	stepFn    StepFunc
	cbs       ExecutorCallbacks
	superStep int
}

// NewExecutor initializes and returns an Executor instance.
func NewExecutor(stepFn StepFunc, cbs ExecutorCallbacks) *Executor {
	initWithDefaultCallbacks(&cbs)

	return &Executor{
		stepFn: stepFn,
		cbs:    cbs,
	}
}

// SuperStep returns the number of super steps executed so far.
func (ex *Executor) SuperStep() int {
	return ex.superStep
}

// RunSteps executes at most numOfSteps super steps unless the context
// expires, an error occurs or the ShouldRunAnotherStep callback returns false.
func (ex *Executor) RunSteps(ctx context.Context, numOfSteps int) error {
	var (
		activeInStep int
		err          error
		shouldRun    bool
		cbs          = ex.cbs
	)

	for ; numOfSteps > 0; numOfSteps-- {
		if err = ensureContextNotExpired(ctx); err != nil {
			break
		} else if err = cbs.PreStep(ctx, ex.superStep); err != nil {
			break
		} else if activeInStep, err = ex.stepFn(ctx, ex.superStep); err != nil {
			break
		}

		ex.superStep++

		if err = cbs.PostStep(ctx, ex.superStep-1, activeInStep); err != nil {
			break
		} else if shouldRun, err = cbs.ShouldRunAnotherStep(
			ctx, ex.superStep-1, activeInStep,
		); !shouldRun || err != nil {
			break
		}
	}

	return err
}

func ensureContextNotExpired(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
