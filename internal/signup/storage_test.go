package signup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileTokenStore_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	store := NewFileTokenStore(path)

	if _, ok, err := store.Get(TokenKey); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}

	if err := store.Set(TokenKey, "tok-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh store on the same file sees the persisted values.
	reopened := NewFileTokenStore(path)
	if v, ok, err := reopened.Get(TokenKey); err != nil || !ok || v != "tok-1" {
		t.Errorf("expected tok-1, got %q ok=%v err=%v", v, ok, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}

	if err := reopened.Remove(TokenKey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := store.Get(TokenKey); ok {
		t.Error("expected token removed")
	}
	if v, _, _ := store.Get("theme"); v != "dark" {
		t.Errorf("expected other keys kept, got %q", v)
	}
	if err := store.Remove("missing"); err != nil {
		t.Errorf("expected removing a missing key to succeed, got %v", err)
	}
}

func TestFileTokenStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := NewFileTokenStore(path)
	if _, _, err := store.Get(TokenKey); err == nil {
		t.Error("expected error for corrupt store")
	}
	if err := store.Set(TokenKey, "tok"); err == nil {
		t.Error("expected Set to refuse overwriting a corrupt store")
	}
}

func TestCaptainState(t *testing.T) {
	state := NewCaptainState()
	if _, ok := state.Captain(); ok {
		t.Fatal("expected empty state")
	}

	var seen []string
	state.Subscribe(func(c Captain) { seen = append(seen, c.ID) })

	state.SetCaptain(Captain{ID: "cap-1"})
	state.SetCaptain(Captain{ID: "cap-2"})

	if c, ok := state.Captain(); !ok || c.ID != "cap-2" {
		t.Errorf("expected cap-2, got %+v", c)
	}
	if len(seen) != 2 || seen[0] != "cap-1" || seen[1] != "cap-2" {
		t.Errorf("expected subscriber to see both updates, got %v", seen)
	}

	state.Clear()
	if _, ok := state.Captain(); ok {
		t.Error("expected state cleared")
	}
}

func TestForm_ResetKeepsErrors(t *testing.T) {
	var f Form
	fillForm(&f)
	f.setErrors(FormErrors{Fields: map[string]string{"email": "Invalid Email"}})

	f.Reset()

	if got := f.Payload(); got != (Payload{}) {
		t.Errorf("expected empty payload after reset, got %+v", got)
	}
	if f.Errors().Field("email") != "Invalid Email" {
		t.Error("expected reset to leave error state alone")
	}
}
