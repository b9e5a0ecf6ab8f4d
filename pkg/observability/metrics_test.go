package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse/internal/runtime"
	"github.com/vitaehq/converse/pkg/domain"
)

func TestMetricsCountEngineActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	def := &domain.FlowDefinition{
		ID: "metrics-flow", Name: "Metrics", Version: "1",
		Nodes: []domain.Node{
			{ID: "s", Type: domain.NodeTypeStart, Data: domain.StartData{}},
			{ID: "q", Type: domain.NodeTypeQuestion, Data: domain.QuestionData{
				Text: "Name?", VariableName: "name",
				Validation: []domain.ValidationRule{{Type: domain.ValidationRequired}},
			}},
			{ID: "e", Type: domain.NodeTypeEnd, Data: domain.EndData{}},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "s", Target: "q"},
			{ID: "e2", Source: "q", Target: "e"},
		},
	}

	eng := runtime.NewEngine(def, runtime.WithHooks(metrics.Hooks()))
	metrics.SessionStarted()

	init, err := eng.Initialize(context.Background())
	require.NoError(t, err)

	_, err = eng.ProcessUserResponse(context.Background(), init.State, "  ")
	require.NoError(t, err)

	res, err := eng.ProcessUserResponse(context.Background(), init.State, "Ada")
	require.NoError(t, err)
	require.True(t, res.IsComplete)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.sessionsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.sessionsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.validationFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.branchErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.nodeVisits.WithLabelValues("start")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.nodeVisits.WithLabelValues("end")))
}
