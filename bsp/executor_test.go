package bsp_test

import (
	"context"
	"errors"

	check "gopkg.in/check.v1"

	"github.com/mycok/uPath/bsp"
)

var _ = check.Suite(new(executorTestSuite))

type executorTestSuite struct{}

func (s *executorTestSuite) TestRunSteps(c *check.C) {
	var (
		steps []int
		pre   int
		post  int
	)

	exec := bsp.NewExecutor(
		func(_ context.Context, superStep int) (int, error) {
			steps = append(steps, superStep)

			return 1, nil
		},
		bsp.ExecutorCallbacks{
			PreStep: func(context.Context, int) error {
				pre++

				return nil
			},
			PostStep: func(_ context.Context, _, activeInStep int) error {
				post += activeInStep

				return nil
			},
		},
	)

	c.Assert(exec.RunSteps(context.TODO(), 3), check.IsNil)
	c.Assert(steps, check.DeepEquals, []int{0, 1, 2})
	c.Assert(pre, check.Equals, 3)
	c.Assert(post, check.Equals, 3)
	c.Assert(exec.SuperStep(), check.Equals, 3)
}

func (s *executorTestSuite) TestShouldRunAnotherStep(c *check.C) {
	exec := bsp.NewExecutor(
		func(_ context.Context, superStep int) (int, error) {
			if superStep == 4 {
				return 0, nil
			}

			return 1, nil
		},
		bsp.ExecutorCallbacks{
			ShouldRunAnotherStep: func(_ context.Context, _, activeInStep int) (bool, error) {
				return activeInStep != 0, nil
			},
		},
	)

	c.Assert(exec.RunSteps(context.TODO(), 100), check.IsNil)
	c.Assert(exec.SuperStep(), check.Equals, 5)
}

func (s *executorTestSuite) TestStepError(c *check.C) {
	exec := bsp.NewExecutor(
		func(context.Context, int) (int, error) {
			return 0, errors.New("step failed")
		},
		bsp.ExecutorCallbacks{},
	)

	c.Assert(exec.RunSteps(context.TODO(), 10), check.ErrorMatches, "step failed")
	c.Assert(exec.SuperStep(), check.Equals, 0)
}

func (s *executorTestSuite) TestContextCancellation(c *check.C) {
	ctx, cancelFn := context.WithCancel(context.TODO())

	exec := bsp.NewExecutor(
		func(_ context.Context, superStep int) (int, error) {
			if superStep == 1 {
				cancelFn()
			}

			return 1, nil
		},
		bsp.ExecutorCallbacks{},
	)

	err := exec.RunSteps(ctx, 100)
	c.Assert(errors.Is(err, context.Canceled), check.Equals, true)
	c.Assert(exec.SuperStep(), check.Equals, 2)
}
