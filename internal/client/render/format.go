// Package render turns backend results into what the terminal shows: the
// answer markup, lists, the data preview table, and the Plotly charts page.
package render

import (
	"regexp"
	"strings"
)

var boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// FormatAnswer applies the answer markup rules in a fixed order, each to the
// output of the previous one:
//
//  1. **text** becomes <strong>text</strong>
//  2. a blank line (\n\n) becomes a paragraph break </p><p>
//  3. a line starting with "- " becomes a "<br>• " bullet, including the
//     first line of a paragraph or of the whole answer
//  4. every remaining \n becomes <br>
//
// The result is the inside of a paragraph; see AnswerMarkup.
func FormatAnswer(s string) string {
	s = boldRe.ReplaceAllString(s, "<strong>${1}</strong>")
	s = strings.ReplaceAll(s, "\n\n", "</p><p>")
	s = strings.ReplaceAll(s, "\n- ", "<br>• ")
	s = strings.ReplaceAll(s, "</p><p>- ", "</p><p><br>• ")
	if rest, ok := strings.CutPrefix(s, "- "); ok {
		s = "<br>• " + rest
	}
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}

// AnswerMarkup wraps the formatted answer in its paragraph.
func AnswerMarkup(answer string) string {
	return "<p>" + FormatAnswer(answer) + "</p>"
}

// MarkupToText converts answer markup into terminal text. Bold spans are
// rendered with st; any other markup is left as is.
func MarkupToText(markup string, st *Style) string {
	r := strings.NewReplacer(
		"<strong>", st.code("[bold]"),
		"</strong>", st.code("[reset]"),
		"</p><p><br>", "\n\n",
		"</p><p>", "\n\n",
		"<br>", "\n",
	)
	markup = strings.TrimPrefix(markup, "<p>")
	markup = strings.TrimSuffix(markup, "</p>")
	return strings.TrimPrefix(r.Replace(markup), "\n")
}
