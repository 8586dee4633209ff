package output

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
)

var listMarkerRe = regexp.MustCompile(`^(\d+)([.)])(\s|$)`)

// escapeMarkdown keeps heading text literal, including leading "1." or "-"
// prefixes that would otherwise start a nested list.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return `\` + s
	}
	return listMarkerRe.ReplaceAllString(s, `$1\$2$3`)
}

// Markdown renders res as a table of contents: the title as a top-level
// heading and the outline as a nested list annotated with page numbers.
func Markdown(res outline.Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", escapeMarkdown(res.Title))
	if len(res.Outline) == 0 {
		return buf.Bytes()
	}
	buf.WriteString("\n")
	writeSections(&buf, outline.Nest(res.Outline), 0)
	return buf.Bytes()
}

func writeSections(buf *bytes.Buffer, sections []*outline.Section, depth int) {
	for _, s := range sections {
		fmt.Fprintf(buf, "%s- %s (p. %d)\n", strings.Repeat("  ", depth), escapeMarkdown(s.Text), s.Page)
		writeSections(buf, s.Children, depth+1)
	}
}
