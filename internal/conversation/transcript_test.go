package conversation

import "testing"

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript()
	tr.Append(SenderUser, "hello")
	tr.Append(SenderBot, "Hello!")
	tr.Append(SenderGuide, "breathe")

	msgs := tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	want := []Sender{SenderUser, SenderBot, SenderGuide}
	for i, m := range msgs {
		if m.Sender != want[i] {
			t.Errorf("msgs[%d].Sender = %q, want %q", i, m.Sender, want[i])
		}
	}
}

func TestTypingResolvedInPlace(t *testing.T) {
	tr := NewTranscript()
	first := tr.BeginTyping()
	tr.Append(SenderGuide, "step")
	second := tr.BeginTyping()

	if tr.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", tr.Pending())
	}

	if !tr.Resolve(second, "two") {
		t.Fatal("resolve second failed")
	}
	if !tr.Resolve(first, "one") {
		t.Fatal("resolve first failed")
	}

	msgs := tr.Messages()
	if msgs[0].Text != "one" || msgs[2].Text != "two" {
		t.Errorf("placeholders resolved out of place: %+v", msgs)
	}
	if tr.Pending() != 0 {
		t.Errorf("pending = %d, want 0", tr.Pending())
	}
}

func TestResolveUnknownID(t *testing.T) {
	tr := NewTranscript()
	id := tr.Append(SenderUser, "hi")

	if tr.Resolve(id, "x") {
		t.Error("resolving a finished message should fail")
	}
	if tr.Resolve(99, "x") {
		t.Error("resolving an unknown id should fail")
	}
}
