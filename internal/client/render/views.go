package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/dmitrijs2005/ragdesk/internal/common"
)

// QuestionPreviewLength is how much of a question the history list shows.
const QuestionPreviewLength = 60

// Answer renders a full RAG answer with its sources.
func Answer(ans *models.Answer, st *Style) string {
	var b strings.Builder
	b.WriteString(MarkupToText(AnswerMarkup(ans.Answer), st))
	if len(ans.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Sources(ans.Sources, st))
	}
	if d := answerDetails(ans); d != "" {
		b.WriteString("\n\n")
		b.WriteString(st.Muted(d))
	}
	return b.String()
}

// answerDetails describes how the answer was produced, e.g.
// "mode: rag, 3 passage(s)". Empty when the backend sent neither field.
func answerDetails(ans *models.Answer) string {
	var parts []string
	if ans.Mode != "" {
		parts = append(parts, "mode: "+ans.Mode)
	}
	if ans.NumContexts > 0 {
		parts = append(parts, fmt.Sprintf("%d passage(s)", ans.NumContexts))
	}
	return strings.Join(parts, ", ")
}

// Sources renders the bulleted source list.
func Sources(sources []string, st *Style) string {
	lines := make([]string, 0, len(sources)+1)
	lines = append(lines, st.Bold("Sources:"))
	for _, s := range sources {
		lines = append(lines, "• "+s)
	}
	return strings.Join(lines, "\n")
}

// Documents renders the numbered document list.
func Documents(docs []string, st *Style) string {
	if len(docs) == 0 {
		return st.Muted("No documents uploaded yet")
	}
	var b strings.Builder
	for i, d := range docs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%2d. %s", i+1, d)
	}
	return b.String()
}

// HistoryQuestion is the collapsed form of a history entry.
func HistoryQuestion(q string) string {
	return common.TruncateRunes(q, QuestionPreviewLength) + "..."
}

// History renders the collapsed history list, numbered from 1.
func History(entries []models.ConversationEntry, st *Style) string {
	if len(entries) == 0 {
		return st.Muted("No conversations yet")
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%2d. %s", i+1, HistoryQuestion(e.Question))
	}
	return b.String()
}

// HistoryEntry renders one expanded entry.
func HistoryEntry(e models.ConversationEntry, st *Style) string {
	var b strings.Builder
	b.WriteString(st.Accent(e.Question))
	if e.Timestamp != "" {
		b.WriteString(" " + st.Muted(e.Timestamp))
	}
	b.WriteString("\n" + st.Bold("Answer:") + " " + e.Answer)
	if len(e.Sources) > 0 {
		b.WriteString("\n" + Sources(e.Sources, st))
	}
	return b.String()
}

// Profile renders the profile card.
func Profile(p *models.Profile, st *Style) string {
	return fmt.Sprintf("%s %s\n%s %s\n%s %s",
		st.Bold("Username:"), p.Username,
		st.Bold("Email:   "), p.Email,
		st.Bold("Created: "), p.CreatedDate(),
	)
}

// PreviewTable writes the data preview. The header is the field names of the
// first row in the order supplied; each row prints its own values in its own
// order. String values are shown unquoted, everything else as raw JSON.
func PreviewTable(w io.Writer, rows []models.Row) error {
	if len(rows) == 0 || rows[0] == nil {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	var header []string
	for p := rows[0].Oldest(); p != nil; p = p.Next() {
		header = append(header, p.Key)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range rows {
		if row == nil {
			continue
		}
		var cells []string
		for p := row.Oldest(); p != nil; p = p.Next() {
			cells = append(cells, cell(p.Value))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func cell(v json.RawMessage) string {
	var s string
	if len(v) > 0 && v[0] == '"' && json.Unmarshal(v, &s) == nil {
		return s
	}
	return string(v)
}
