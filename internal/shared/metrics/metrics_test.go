package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesPipelineMetrics(t *testing.T) {
	IncPipelineStarted()
	IncPipelineCompleted()
	ObservePipelineDurationMs(1234)

	out := Render()
	for _, want := range []string{
		"# TYPE pipeline_started_total counter",
		"# TYPE pipeline_completed_total counter",
		"# TYPE pipeline_failed_total counter",
		"# TYPE pipeline_duration_ms histogram",
		"pipeline_duration_ms_bucket{le=\"+Inf\"}",
		"pipeline_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered metrics:\n%s", want, out)
		}
	}
}
