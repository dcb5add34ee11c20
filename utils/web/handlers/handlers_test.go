package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestHandshakeHandler(t *testing.T) {
	recorder := httptest.NewRecorder()
	HandshakeHandler("hola")(recorder, httptest.NewRequest("GET", "/", nil))

	var message string
	if err := json.NewDecoder(recorder.Body).Decode(&message); err != nil {
		t.Fatal(err)
	}
	if recorder.Code != 200 || message != "hola" {
		t.Errorf("Unexpected response %d %q", recorder.Code, message)
	}
}

func TestSnapshotHandler_CallsProducerPerRequest(t *testing.T) {
	calls := 0
	handler := SnapshotHandler(func() []int {
		calls++
		return []int{calls}
	})

	for i := 1; i <= 2; i++ {
		recorder := httptest.NewRecorder()
		handler(recorder, httptest.NewRequest("GET", "/", nil))

		var values []int
		_ = json.NewDecoder(recorder.Body).Decode(&values)
		if len(values) != 1 || values[0] != i {
			t.Errorf("Expected [%d], got %v", i, values)
		}
	}
}
