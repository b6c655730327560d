package main

import (
	"fmt"
	"io"
	"time"

	"synport/internal/progress"
)

var timingStages = []progress.Stage{
	progress.StageResolve,
	progress.StageExtract,
	progress.StageMerge,
	progress.StageWrite,
	progress.StageRewrite,
}

// printStageTimings prints the time spent in each stage summed over all
// workers, so the figures can exceed wall-clock time.
func printStageTimings(out io.Writer, timings *progress.Timings) {
	if out == nil || timings == nil {
		return
	}
	for _, stage := range timingStages {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%-8s %8.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
