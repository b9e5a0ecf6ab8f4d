package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse/pkg/domain"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore
// implementation adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newState := func() *domain.FlowState {
		s := domain.NewState(&domain.FlowDefinition{ID: "contract-flow"})
		s.CurrentNodeID = "q1"
		s.Set("foo", "bar")
		s.Append(domain.RoleAssistant, "Hello!")
		return s
	}

	t.Run("Save and Load", func(t *testing.T) {
		state := newState()

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CurrentNodeID, loaded.CurrentNodeID)
		assert.Equal(t, "bar", loaded.Variables["foo"])
		require.Len(t, loaded.Transcript, 1)
		assert.Equal(t, "Hello!", loaded.Transcript[0].Content)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		state := newState()
		require.NoError(t, store.Save(ctx, sessionID, state))

		state.Set("foo", "baz")
		state.CurrentNodeID = "q2"
		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "q2", loaded.CurrentNodeID)
		assert.Equal(t, "baz", loaded.Variables["foo"])
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		state := newState()
		require.NoError(t, store.Save(ctx, sessionID, state))

		first, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		first.Set("foo", "mutated")

		second, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "bar", second.Variables["foo"], "mutating a loaded state must not leak into the store")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, newState()))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, newState())
		_ = store.Save(ctx, id2, newState())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
