package corpus

import (
	"strings"
	"testing"

	"github.com/Rana718/tabqa/internal/types"
)

const sampleCorpus = "1 id : 1, city : Linz, count : 10 .\n" +
	"2 id : 2, city : Wels, count : 20 .\n" +
	"3 What is the count for Wels?\t20\t2\n" +
	"1 id : 3, city : Steyr, count : 30 .\n" +
	"2 id : 4, city : Enns, count : 40 .\n" +
	"3 id : 5, city : Traun, count : 50 .\n" +
	"4 id : 6, city : Braunau, count : 60 .\n" +
	"5 What is the count for Steyr?\t30\t1\n"

func TestReadGroupsStories(t *testing.T) {
	c, err := Read(strings.NewReader(sampleCorpus), "sample", ReadOptions{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if c.Facts != 6 {
		t.Errorf("Expected 6 facts, got %d", c.Facts)
	}
	if len(c.Stories) != 2 {
		t.Fatalf("Expected 2 stories, got %d", len(c.Stories))
	}
	if len(c.Stories[0].Facts) != 2 || len(c.Stories[1].Facts) != 4 {
		t.Errorf("Unexpected story sizes %d and %d", len(c.Stories[0].Facts), len(c.Stories[1].Facts))
	}
	if c.Stories[1].Line != 8 {
		t.Errorf("Expected second question on line 8, got %d", c.Stories[1].Line)
	}
}

func TestReadMaxLength(t *testing.T) {
	// each fact is 12 tokens: "id", ":", "1", ",", "city", ":", "Linz", ",", "count", ":", "10", "."
	c, err := Read(strings.NewReader(sampleCorpus), "sample", ReadOptions{MaxLength: 30})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(c.Stories) != 1 || c.Dropped != 1 {
		t.Fatalf("Expected 1 kept and 1 dropped story, got %d and %d", len(c.Stories), c.Dropped)
	}
	if c.Stories[0].Question.Key != "Wels" {
		t.Errorf("Expected the short story to survive, got %+v", c.Stories[0].Question)
	}

	c, _ = Read(strings.NewReader(sampleCorpus), "sample", ReadOptions{MaxLength: 24})
	if len(c.Stories) != 0 || c.Dropped != 2 {
		t.Errorf("Expected both stories dropped at the boundary, got %d kept", len(c.Stories))
	}
}

func TestReadMalformedLine(t *testing.T) {
	src := "1 id : 1, city : Linz .\nnot a fact\n"

	_, err := Read(strings.NewReader(src), "broken.txt", ReadOptions{})
	if !types.IsKind(err, types.InputErrorKind) {
		t.Fatalf("Expected input error, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken.txt:2") {
		t.Errorf("Expected error to name the line, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	c, err := Read(strings.NewReader(sampleCorpus), "sample", ReadOptions{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if err := Verify(c, "sample"); err != nil {
		t.Errorf("Expected corpus to verify, got %v", err)
	}

	tampered := strings.Replace(sampleCorpus, "Wels?\t20\t2", "Wels?\t25\t2", 1)
	c, _ = Read(strings.NewReader(tampered), "tampered", ReadOptions{})
	err = Verify(c, "tampered")
	if !types.IsKind(err, types.InputErrorKind) {
		t.Fatalf("Expected input error, got %v", err)
	}
	if !strings.Contains(err.Error(), "tampered:3") {
		t.Errorf("Expected error to name the question line, got %v", err)
	}

	dangling := strings.Replace(sampleCorpus, "Steyr?\t30\t1", "Steyr?\t30\t9", 1)
	c, _ = Read(strings.NewReader(dangling), "dangling", ReadOptions{})
	if err := Verify(c, "dangling"); err == nil {
		t.Error("Expected error for a reference outside the block")
	}
}
