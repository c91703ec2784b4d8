/*
Package sortviz is an instrumented execution engine for comparison sorts, designed to drive step-by-step visualizations.

It runs one of six algorithms (bubble, selection, insertion, merge, quick, heap) on a background goroutine and exposes every compare, swap, overwrite and mark as an ordered StepEvent stream. A run can be paused, resumed and stopped at any time, and is paced by an operator speed chosen at start.

# Concept

The Controller owns the state machine (Idle, Running, Paused, Stopping, Stopped) and at most one live run. The algorithm never touches the state machine: it only sees an instrumented view of its array, and every instrumentation call is a suspension point where cancellation, pause and pacing are honored. A renderer consumes the event stream at its own pace and folds it over its own copy of the initial array.

# Key Features

  - Deterministic Streams: For a given algorithm and input, the event sequence is identical regardless of speed or pauses.
  - Prompt Cancellation: Stop is observed within one poll interval, even while paused or backpressured.
  - Decoupled Rendering: Events travel through a bounded channel, so the algorithm never knows about the renderer.
  - Observability: Lifecycle hooks feed logging and Prometheus metrics.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/khshaikh19/sortviz"
		"github.com/khshaikh19/sortviz/pkg/domain"
	)

	func main() {
		ctrl := sortviz.New()

		run, err := ctrl.Start(context.Background(), domain.AlgorithmBubble, []int{5, 3, 8, 1}, 200)
		if err != nil {
			log.Fatal(err)
		}

		for ev := range run.Events() {
			fmt.Println(ev)
		}

		res, err := run.Wait(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Outcome, run.Array().Snapshot())
	}
*/
package sortviz
