package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/framelearn/pkg/log"
)

func TestProxy_LogsFailedCall(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	p := Adapt(&oddball{}, WithLogger(logger))

	_, err := p.Call("Fail", sampleFrame())
	require.Error(t, err)

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	var failed map[string]interface{}
	for _, e := range entries {
		if e["message"] == "call failed" {
			failed = e
		}
	}
	require.NotNil(t, failed, "no call failed record")
	assert.Equal(t, "Fail", failed[log.OperationKey])
	assert.Equal(t, "x", failed[log.ConventionKey])
	assert.Equal(t, "boom", failed[log.ErrAttrKey])
	assert.Equal(t, float64(3), failed[log.SamplesKey])
	assert.Equal(t, "*adapter.oddball", failed[log.ModelNameKey])
}

func TestProxy_NoCallRecordsAboveDebug(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)
	p := Adapt(newDoubler(), WithLogger(logger))

	_, err := p.Transform(sampleFrame())
	require.NoError(t, err)
	assert.Empty(t, logger.GetBuffer().String())
}

func TestRegistry_LogsSnapshotID(t *testing.T) {
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	prev := log.SetProvider(provider)
	t.Cleanup(func() { log.SetProvider(prev) })

	r := NewRegistry()
	require.NoError(t, r.ApplyColumnRestoration("picker", func() any { return newPicker() }))

	snap, err := r.Persist(r.Adapt(newPicker()))
	require.NoError(t, err)
	_, err = r.Reconstruct(snap)
	require.NoError(t, err)

	logger := provider.GetLogger().(*log.TestLogger)
	entries, err := logger.GetLogEntries()
	require.NoError(t, err)

	ops := map[string]bool{}
	for _, e := range entries {
		if e[log.SnapshotIDKey] == snap.ID {
			assert.Equal(t, "picker", e[log.EstimatorKindKey])
			ops[e[log.OperationKey].(string)] = true
		}
	}
	assert.Equal(t, map[string]bool{
		log.OperationPersist:     true,
		log.OperationReconstruct: true,
	}, ops)
}
