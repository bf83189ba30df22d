package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Rana718/tabqa/internal/tokenizer"
	"github.com/Rana718/tabqa/internal/types"
)

type ReadOptions struct {
	// MaxLength drops stories whose facts hold this many tokens or more.
	// 0 keeps every story.
	MaxLength int
	// Columns, when known, make fact parsing exact.
	Columns []string
}

// Story is one question with every fact written before it in the same block.
type Story struct {
	Facts    []Fact
	Question QuestionLine
	// Line is the 1-based line number of the question.
	Line int
}

// Supporting returns the fact the question references.
func (s Story) Supporting() (Fact, bool) {
	for _, f := range s.Facts {
		if f.ID == s.Question.Ref {
			return f, true
		}
	}
	return Fact{}, false
}

type Corpus struct {
	Stories []Story
	Facts   int
	// Dropped counts stories removed by MaxLength.
	Dropped int
}

// Read groups a corpus into stories. A line with id 1 starts a new block.
// Malformed lines fail with an input error naming the line.
func Read(r io.Reader, name string, opts ReadOptions) (*Corpus, error) {
	c := &Corpus{}
	var (
		facts  []Fact
		tokens int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, "\t") {
			q, err := ParseQuestion(line)
			if err != nil {
				return nil, types.InputError("read corpus", fmt.Sprintf("%s:%d", name, lineNo), err)
			}
			if q.ID == 1 {
				facts, tokens = nil, 0
			}

			if opts.MaxLength > 0 && tokens >= opts.MaxLength {
				c.Dropped++
				continue
			}
			story := Story{Facts: append([]Fact(nil), facts...), Question: q, Line: lineNo}
			c.Stories = append(c.Stories, story)
			continue
		}

		f, err := ParseFact(line, opts.Columns)
		if err != nil {
			return nil, types.InputError("read corpus", fmt.Sprintf("%s:%d", name, lineNo), err)
		}
		if f.ID == 1 {
			facts, tokens = nil, 0
		}
		facts = append(facts, f)
		_, text, _ := strings.Cut(line, " ")
		tokens += len(tokenizer.Tokenize(text))
		c.Facts++
	}
	if err := scanner.Err(); err != nil {
		return nil, types.IOError("read corpus", name, err)
	}

	return c, nil
}

// Verify checks that every question's answer is the value stored under its
// subject column in the referenced fact, and that the fact holds the key.
func Verify(c *Corpus, name string) error {
	for _, s := range c.Stories {
		if err := verifyStory(s); err != nil {
			return types.InputError("verify corpus", fmt.Sprintf("%s:%d", name, s.Line), err)
		}
	}
	return nil
}

func verifyStory(s Story) error {
	fact, ok := s.Supporting()
	if !ok {
		return fmt.Errorf("question %d references fact %d, which is not in its block", s.Question.ID, s.Question.Ref)
	}

	for _, cand := range s.Question.Candidates() {
		subject, key := cand[0], cand[1]
		answer, ok := fact.Value(subject)
		if !ok || answer != s.Question.Answer {
			continue
		}
		for _, p := range fact.Pairs {
			if p.Column != subject && p.Value == key {
				return nil
			}
		}
	}
	return fmt.Errorf("question %d (%q) is not answered by fact %d", s.Question.ID, s.Question.Text, fact.ID)
}
