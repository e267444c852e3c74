package deck

import (
	"bufio"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// BuildFromExport parses a tab-separated Anki export and builds the index.
//
// Header comment lines start with '#'; "#tags column:N" declares the
// 1-based column holding tags. Data rows are
// id \t model \t deck \t field_1 ... field_N \t tags, with the tags
// boundary at the declared column or, absent that, the last column.
//
// A missing export file is a valid starting state and yields an empty
// index. Field indexes that fall outside a row resolve to empty strings
// rather than failing the build.
func BuildFromExport(path string, fm *FieldMap, lem Lemmatizer, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if fm == nil {
		fm = DefaultFieldMap()
	}

	idx := NewIndex()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no reference export, starting with empty deck", "path", path)
			return idx, nil
		}
		return nil, err
	}
	defer f.Close()

	tagsCol := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			if rest, ok := cutHeader(line, "#tags column:"); ok {
				if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
					tagsCol = n
				}
			}
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 4 {
			continue
		}
		noteID := strings.Trim(strings.TrimSpace(parts[0]), `"`)
		model := strings.TrimSpace(parts[1])

		tagsIdx := len(parts) - 1
		if tagsCol > 0 && tagsCol <= len(parts) {
			tagsIdx = tagsCol - 1
		}
		if tagsIdx < 3 {
			// Declared tags column inside the fixed id/model/deck prefix:
			// treat the row as having no content fields.
			tagsIdx = 3
		}
		fields := parts[3:tagsIdx]

		target, gloss, ignore := fm.Resolve(model)
		if ignore {
			continue
		}
		idx.AddNote(NoteEntry{
			NoteID:      noteID,
			Model:       model,
			GreekText:   fieldAt(fields, target),
			EnglishText: fieldAt(fields, gloss),
		}, lem)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	st := idx.Stats()
	logger.Info("deck index built", "notes", st.Notes,
		"exact_keys", st.ExactKeys, "lemma_keys", st.LemmaKeys, "gloss_keys", st.GlossKeys)
	return idx, nil
}

// cutHeader matches a header directive case-insensitively and returns the
// remainder after the prefix.
func cutHeader(line, prefix string) (string, bool) {
	if len(line) < len(prefix) || !strings.EqualFold(line[:len(prefix)], prefix) {
		return "", false
	}
	return line[len(prefix):], true
}

func fieldAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return CleanField(fields[i])
}
