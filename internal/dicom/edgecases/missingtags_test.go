package edgecases

import (
	"math/rand/v2"
	"testing"
)

func TestSelectTagsToOmit(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	tags := SelectTagsToOmit(rng, 2)
	if len(tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(tags))
	}
	if tags[0] == tags[1] {
		t.Errorf("Expected distinct tags, got %v", tags)
	}
	for _, tag := range tags {
		found := false
		for _, dt := range DisplayedTags {
			if tag == dt {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Tag %s is not a displayed tag", tag)
		}
	}
}

func TestSelectTagsToOmit_All(t *testing.T) {
	tags := SelectTagsToOmit(rand.New(rand.NewPCG(1, 1)), 10)
	if len(tags) != len(DisplayedTags) {
		t.Errorf("Expected %d tags, got %d", len(DisplayedTags), len(tags))
	}
	tags[0] = "changed"
	if DisplayedTags[0] == "changed" {
		t.Error("Result must not alias DisplayedTags")
	}
}
