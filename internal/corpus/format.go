package corpus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rana718/tabqa/internal/types"
)

const (
	pairSep      = " : "
	fieldSep     = ", "
	factEnd      = " ."
	questionHead = "What is the "
	questionKey  = " for "
)

// QuestionTemplate renders subject, key, answer and the supporting fact id.
const QuestionTemplate = "What is the %s for %s?\t%s\t%d"

// FormatFact renders one row as "<id> <col> : <val>, <col> : <val> .".
func FormatFact(id int, columns []string, row []types.Value) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(id))
	b.WriteByte(' ')
	for i, v := range row {
		if i > 0 {
			b.WriteString(fieldSep)
		}
		b.WriteString(oneLine(columns[i]))
		b.WriteString(pairSep)
		b.WriteString(oneLine(v.String()))
	}
	b.WriteString(factEnd)
	return b.String()
}

func FormatQuestion(id int, columns []string, q Question) string {
	return strconv.Itoa(id) + " " + fmt.Sprintf(QuestionTemplate,
		oneLine(columns[q.Subject]), oneLine(q.Key.String()), oneLine(q.Answer.String()), q.Ref)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// oneLine keeps every record on a single line with exactly two tabs per
// question.
func oneLine(s string) string {
	return lineBreaks.Replace(s)
}

type Pair struct {
	Column string
	Value  string
}

type Fact struct {
	ID    int
	Pairs []Pair
}

// Value returns the value recorded for column.
func (f Fact) Value(column string) (string, bool) {
	for _, p := range f.Pairs {
		if p.Column == column {
			return p.Value, true
		}
	}
	return "", false
}

// QuestionLine is a parsed question. Subject and Key come from the first
// " for " in the question text. Candidates returns every other reading.
type QuestionLine struct {
	ID      int
	Text    string
	Subject string
	Key     string
	Answer  string
	Ref     int
}

func splitID(line string) (int, string, error) {
	idStr, rest, ok := strings.Cut(line, " ")
	if !ok {
		return 0, "", errors.New("missing line id")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		return 0, "", fmt.Errorf("invalid line id %q", idStr)
	}
	return id, rest, nil
}

// ParseFact recovers the column/value pairs of a fact line in order. With
// known column names values may contain ", " or " : "; without them the line
// is split on those separators.
func ParseFact(line string, columns []string) (Fact, error) {
	id, rest, err := splitID(line)
	if err != nil {
		return Fact{}, err
	}
	if !strings.HasSuffix(rest, factEnd) {
		return Fact{}, fmt.Errorf("fact %d does not end with %q", id, factEnd)
	}
	body := strings.TrimSuffix(rest, factEnd)

	if len(columns) > 0 {
		pairs, err := splitKnown(body, columns)
		if err != nil {
			return Fact{}, fmt.Errorf("fact %d: %w", id, err)
		}
		return Fact{ID: id, Pairs: pairs}, nil
	}

	pairs, err := splitHeuristic(body)
	if err != nil {
		return Fact{}, fmt.Errorf("fact %d: %w", id, err)
	}
	return Fact{ID: id, Pairs: pairs}, nil
}

func splitKnown(body string, columns []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(columns))
	for i, col := range columns {
		prefix := col + pairSep
		if !strings.HasPrefix(body, prefix) {
			return nil, fmt.Errorf("expected column %q", col)
		}
		body = body[len(prefix):]

		if i == len(columns)-1 {
			pairs = append(pairs, Pair{Column: col, Value: body})
			break
		}

		sep := fieldSep + columns[i+1] + pairSep
		idx := strings.Index(body, sep)
		if idx < 0 {
			return nil, fmt.Errorf("missing column %q after %q", columns[i+1], col)
		}
		pairs = append(pairs, Pair{Column: col, Value: body[:idx]})
		body = body[idx+len(fieldSep):]
	}
	return pairs, nil
}

func splitHeuristic(body string) ([]Pair, error) {
	var pairs []Pair
	for _, part := range strings.Split(body, fieldSep) {
		col, val, ok := strings.Cut(part, pairSep)
		if !ok {
			if len(pairs) == 0 {
				return nil, fmt.Errorf("malformed pair %q", part)
			}
			// separator inside a value
			pairs[len(pairs)-1].Value += fieldSep + part
			continue
		}
		pairs = append(pairs, Pair{Column: col, Value: val})
	}
	return pairs, nil
}

func ParseQuestion(line string) (QuestionLine, error) {
	id, rest, err := splitID(line)
	if err != nil {
		return QuestionLine{}, err
	}

	fields := strings.Split(rest, "\t")
	if len(fields) != 3 {
		return QuestionLine{}, fmt.Errorf("question %d has %d tab-separated fields, want 3", id, len(fields))
	}
	text, answer := fields[0], fields[1]

	ref, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || ref < 1 {
		return QuestionLine{}, fmt.Errorf("question %d has invalid supporting fact %q", id, fields[2])
	}

	q := QuestionLine{ID: id, Text: text, Answer: answer, Ref: ref}
	splits := q.Candidates()
	if len(splits) == 0 {
		return QuestionLine{}, fmt.Errorf("question %d does not match %q", id, QuestionTemplate)
	}
	q.Subject, q.Key = splits[0][0], splits[0][1]
	return q, nil
}

// Candidates returns every (subject, key) reading of the question text.
func (q QuestionLine) Candidates() [][2]string {
	if !strings.HasPrefix(q.Text, questionHead) || !strings.HasSuffix(q.Text, "?") {
		return nil
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(q.Text, questionHead), "?")

	var out [][2]string
	for start := 0; ; {
		idx := strings.Index(inner[start:], questionKey)
		if idx < 0 {
			break
		}
		at := start + idx
		out = append(out, [2]string{inner[:at], inner[at+len(questionKey):]})
		start = at + 1
	}
	return out
}
