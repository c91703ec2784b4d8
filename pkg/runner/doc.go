/*
Package runner implements the rendering loop that drains a run's event stream.

It acts as the bridge between the engine (a running sort) and the outside world.
The runner folds every StepEvent into a View it owns, so a renderer never reads
the engine's shared array, and hands each step to a pluggable Handler.

# Key Components

  - Runner: Drains a run's events in order and stops the run if its context ends.
  - View: The renderer-side fold of the event stream (values, highlights, sorted set).
  - TextHandler: Draws coloured bars on a terminal, throttled to a frame interval.
  - JSONHandler: Writes one JSON object per line for machine consumers.

# Usage

	run, err := ctrl.Start(ctx, domain.AlgorithmQuick, values, 150)
	if err != nil {
		log.Fatal(err)
	}

	r := runner.NewRunner(
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
	)
	res, err := r.Run(ctx, run)
*/
package runner
