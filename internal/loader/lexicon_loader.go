package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mindloop/neuron/internal/lexicon"
)

// LoadLexicon reads and parses a lexicon .brain file.
func LoadLexicon(path string) (*lexicon.Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon file: %w", err)
	}
	defer f.Close()
	l, err := ParseLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return l, nil
}

// ParseLexicon parses lexicon records from r:
//
//	WORD|id|text|concept,concept,...|pos
//	PHRASE|id|text|concept,concept,...|pos
//	SYNONYM|synonym|canonical
//	STOP|word
//
// Surface forms are lowercased. As with graphs, any bad record fails
// the whole load with the full diagnostic list.
func ParseLexicon(r io.Reader) (*lexicon.Lexicon, error) {
	l := lexicon.New()
	var problems []string

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := splitRecord(line)
		switch parts[0] {
		case "WORD", "PHRASE":
			if len(parts) < 5 {
				problems = append(problems, fmt.Sprintf("line %d: %s record needs 5 fields, got %d", lineNum, parts[0], len(parts)))
				continue
			}
			entry := &lexicon.Entry{
				ID:         parts[1],
				Text:       strings.ToLower(parts[2]),
				ConceptIDs: splitConcepts(parts[3]),
				POS:        parts[4],
			}
			if parts[0] == "WORD" {
				l.AddWord(entry)
			} else {
				l.AddPhrase(entry)
			}

		case "SYNONYM":
			if len(parts) < 3 {
				problems = append(problems, fmt.Sprintf("line %d: SYNONYM record needs 3 fields, got %d", lineNum, len(parts)))
				continue
			}
			l.AddSynonym(strings.ToLower(parts[1]), strings.ToLower(parts[2]))

		case "STOP":
			if len(parts) < 2 {
				problems = append(problems, fmt.Sprintf("line %d: STOP record needs 2 fields, got %d", lineNum, len(parts)))
				continue
			}
			l.AddStopword(strings.ToLower(parts[1]))

		default:
			problems = append(problems, fmt.Sprintf("line %d: unknown record type %q", lineNum, parts[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon records: %w", err)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("lexicon validation problems:\n%s", strings.Join(problems, "\n"))
	}
	return l, nil
}

// splitConcepts splits a comma-separated concept id list, dropping
// empty entries.
func splitConcepts(field string) []string {
	var ids []string
	for _, c := range strings.Split(field, ",") {
		if c = strings.TrimSpace(c); c != "" {
			ids = append(ids, c)
		}
	}
	return ids
}
