package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompterReturnsZeroValuesOnExhaustedInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	if got := p.NonEmpty("Name: "); got != "" {
		t.Errorf("NonEmpty() = %q, want empty", got)
	}
	if !p.EOF() {
		t.Fatal("EOF() = false after exhausted read")
	}
	if got := p.Int("Qty: "); got != 0 {
		t.Errorf("Int() = %d, want 0", got)
	}
	if got := p.PositiveInt("Qty: "); got != 0 {
		t.Errorf("PositiveInt() = %d, want 0", got)
	}
	if got := p.Money("Price: "); got != 0 {
		t.Errorf("Money() = %d, want 0", got)
	}
	if got := p.Date("Date: "); got != "" {
		t.Errorf("Date() = %q, want empty", got)
	}
	if got := p.YesNo("Sure? "); got {
		t.Error("YesNo() = true, want false")
	}
	if idx, ok := p.Select("Pick: ", 3); ok {
		t.Errorf("Select() = (%d, true), want backed out", idx)
	}

	// One prompt label at most per call; no re-prompt flood
	if out.Len() > 256 {
		t.Errorf("output grew to %d bytes on exhausted input", out.Len())
	}
}

func TestPrompterReadsThenHitsEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Alice\n"), &out)

	if got := p.NonEmpty("Name: "); got != "Alice" {
		t.Errorf("NonEmpty() = %q, want Alice", got)
	}
	if p.EOF() {
		t.Error("EOF() = true while input remains consumed cleanly")
	}
	if got := p.NonEmpty("Name: "); got != "" {
		t.Errorf("NonEmpty() after EOF = %q, want empty", got)
	}
	if !p.EOF() {
		t.Error("EOF() = false after exhausted read")
	}
}

func TestSelectBlankAndZeroBackOut(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n0\n9\n2\n"), &out)

	if _, ok := p.Select("Pick: ", 3); ok {
		t.Error("blank answer should back out")
	}
	if _, ok := p.Select("Pick: ", 3); ok {
		t.Error("0 should back out")
	}
	// 9 is out of range and re-prompts; 2 lands
	idx, ok := p.Select("Pick: ", 3)
	if !ok || idx != 1 {
		t.Errorf("Select() = (%d, %v), want (1, true)", idx, ok)
	}
}
