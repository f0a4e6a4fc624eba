package game

import (
	"encoding/json"
	"strings"
	"testing"

	"snake-engine/game/types"
)

func TestStateJSON(t *testing.T) {
	st := State{
		SessionID: "abc",
		Width:     10,
		Height:    10,
		Snake:     []types.Point{{X: 4, Y: 5}},
	}

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"apple"`) {
		t.Errorf("Expected apple to be omitted, got %s", data)
	}

	st.Apple = &AppleState{Position: types.Point{X: 2, Y: 3}, Remaining: 7}
	data, err = json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"apple":{"position":{"x":2,"y":3},"spoiled":false,"remaining":7}`) {
		t.Errorf("Unexpected apple encoding: %s", data)
	}
}

func TestStateHead(t *testing.T) {
	if _, ok := (State{}).Head(); ok {
		t.Error("Expected no head for an empty snake")
	}

	st := State{Snake: []types.Point{{X: 1, Y: 2}, {X: 1, Y: 1}}, YouDied: true}
	head, ok := st.Head()
	if !ok || head != (types.Point{X: 1, Y: 2}) {
		t.Errorf("Expected head (1,2), got %v", head)
	}
	if !st.Finished() {
		t.Error("Expected finished state")
	}
}
