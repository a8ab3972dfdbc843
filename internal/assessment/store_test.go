package assessment

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"skillproof/internal/types"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	session := types.TestSession{
		TestID:        "test_abc",
		CreatedAt:     time.Now().UTC(),
		ClaimedSkills: []string{"Go"},
	}
	store.Put(session)

	got, ok := store.Get("test_abc")
	if !ok {
		t.Fatal("expected session to be found after Put")
	}
	if got.TestID != session.TestID || len(got.ClaimedSkills) != 1 {
		t.Errorf("Get returned a different session: %+v", got)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("expected Get of unknown id to report not found")
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	store.Put(types.TestSession{TestID: "t", ClaimedSkills: []string{"Old"}})
	store.Put(types.TestSession{TestID: "t", ClaimedSkills: []string{"New"}})

	got, _ := store.Get("t")
	if got.ClaimedSkills[0] != "New" {
		t.Errorf("expected silent overwrite, got %v", got.ClaimedSkills)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("test_%d", i)
			store.Put(types.TestSession{TestID: id})
			if _, ok := store.Get(id); !ok {
				t.Errorf("session %s not readable after Put", id)
			}
		}()
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("Len() = %d, want 50", store.Len())
	}
}
