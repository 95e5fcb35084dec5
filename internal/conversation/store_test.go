package conversation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore()
	conv := store.Create(
		Message{Role: "system", Content: "prompt"},
		Message{Role: "assistant", Content: "greeting"},
	)

	require.NotEmpty(t, conv.ID)
	assert.Equal(t, 2, conv.Len())

	got, err := store.Get(conv.ID)
	require.NoError(t, err)
	assert.Same(t, conv, got)
}

func TestStore_GetUnknown(t *testing.T) {
	store := NewStore()
	_, err := store.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UniqueIDsUnderRapidCreation(t *testing.T) {
	store := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		conv := store.Create()
		assert.False(t, seen[conv.ID], "duplicate conversation id %s", conv.ID)
		seen[conv.ID] = true
	}
}

func TestConversation_HistoryIsACopy(t *testing.T) {
	store := NewStore()
	conv := store.Create(Message{Role: "system", Content: "prompt"})

	history := conv.History()
	history[0].Content = "mutated"
	history = append(history, Message{Role: "user", Content: "sneaky"})
	_ = history

	fresh := conv.History()
	require.Len(t, fresh, 1)
	assert.Equal(t, "prompt", fresh[0].Content)
}

func TestConversation_AppendOrderPreserved(t *testing.T) {
	store := NewStore()
	conv := store.Create()
	conv.Append("user", "first")
	conv.Append("assistant", "second")
	conv.Append("user", "third")

	history := conv.History()
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[1].Content)
	assert.Equal(t, "third", history[2].Content)
	assert.Equal(t, 3, conv.Len())
}

func TestConversation_ReplaceHistoryResetsCounter(t *testing.T) {
	store := NewStore()
	conv := store.Create()
	for i := 0; i < 35; i++ {
		conv.Append("user", "msg")
	}

	conv.ReplaceHistory([]Message{
		{Role: "system", Content: "prompt"},
		{Role: "assistant", Content: "summary"},
	})

	assert.Equal(t, 2, conv.Len())
	assert.Len(t, conv.History(), 2)
}

func TestConversation_ExtractionRoundTrip(t *testing.T) {
	store := NewStore()
	conv := store.Create()

	assert.Nil(t, conv.Extraction())

	conv.SetExtraction(&models.ExtractionResult{
		ConversationID: conv.ID,
		Fields: map[string]models.ExtractionField{
			"eventName": {Value: "Gala", Confidence: 0.9},
		},
	})

	got := conv.Extraction()
	require.NotNil(t, got)
	assert.Equal(t, "Gala", got.Fields["eventName"].Value)

	// The returned snapshot is detached from the live state.
	got.Fields["eventName"] = models.ExtractionField{Value: "Changed", Confidence: 0.1}
	assert.Equal(t, "Gala", conv.Extraction().Fields["eventName"].Value)
}

func TestConversation_ConcurrentAppends(t *testing.T) {
	store := NewStore()
	conv := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv.Append("user", "hello")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, conv.Len())
	assert.Len(t, conv.History(), 50)
}
