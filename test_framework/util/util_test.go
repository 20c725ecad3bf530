package util

import (
	"testing"
)

func TestAtLeast(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := AtLeast(10)
		if n < 10*RANDOM_MULTIPLIER {
			t.Fatalf("AtLeast(10) returned %v", n)
		}
	}
}

func TestShuffled(t *testing.T) {
	names := []string{"_0", "_1", "_2", "_3"}
	shuffled := Shuffled(Random(), names)
	if len(shuffled) != len(names) {
		t.Fatalf("expected %v names, got %v", len(names), len(shuffled))
	}
	seen := make(map[string]bool)
	for _, name := range shuffled {
		seen[name] = true
	}
	for _, name := range names {
		if !seen[name] {
			t.Errorf("%v lost by Shuffled()", name)
		}
	}
	if names[0] != "_0" || names[3] != "_3" {
		t.Error("Shuffled() modified its input")
	}
}
