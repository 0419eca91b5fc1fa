package domain

import "testing"

func TestTranscriptCommitsInIssueOrder(t *testing.T) {
	t.Parallel()
	tr := NewTranscript(nil)
	first := tr.Issue()
	second := tr.Issue()

	tr.Complete(second, Turn{Message: "two"})
	if tr.Len() != 0 {
		t.Fatalf("second turn must wait for the first")
	}
	tr.Complete(first, Turn{Message: "one"})
	turns := tr.Turns()
	if len(turns) != 2 || turns[0].Message != "one" || turns[1].Message != "two" {
		t.Fatalf("unexpected order: %+v", turns)
	}
	if tr.Pending() != 0 {
		t.Fatalf("expected nothing pending, got %d", tr.Pending())
	}
}

func TestReleasedTicketDoesNotBlock(t *testing.T) {
	t.Parallel()
	tr := NewTranscript([]Turn{{Message: "old"}})
	failed := tr.Issue()
	ok := tr.Issue()
	tr.Complete(ok, Turn{Message: "new"})
	tr.Release(failed)
	turns := tr.Turns()
	if len(turns) != 2 || turns[1].Message != "new" {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}
