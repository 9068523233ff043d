package export

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteJSON_ArrayOfObjects(t *testing.T) {
	t.Parallel()

	rows := []map[string]string{
		{"match_id": "Kx3ou23b", "winner": "1"},
		{"match_id": "abcd1234", "winner": "2"},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["match_id"] != "Kx3ou23b" || decoded[1]["winner"] != "2" {
		t.Fatalf("unexpected payload: %v", decoded)
	}
}

func TestWriteJSON_SortedKeys(t *testing.T) {
	t.Parallel()

	rows := []map[string]string{
		{"zeta": "1", "alpha": "2", "mid": "3"},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if want := `[{"alpha":"2","mid":"3","zeta":"1"}]`; buf.String() != want {
		t.Fatalf("got %s, want %s", buf.String(), want)
	}
}

func TestWriteJSON_NoRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.String() != "[]" {
		t.Fatalf("expected empty array, got %s", buf.String())
	}
}
