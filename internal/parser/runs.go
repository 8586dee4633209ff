package parser

import (
	"strings"

	"github.com/dgallion1/outliner/internal/doctree"
)

// runCollector turns styled text pieces into spans. Adjacent pieces inside
// one block that share rounded size and weight merge; block boundaries and
// style changes start a new span.
type runCollector struct {
	page *doctree.Page
	cur  *pendingRun
}

type pendingRun struct {
	size int
	bold bool
	text strings.Builder
}

func newRunCollector(page *doctree.Page) *runCollector {
	return &runCollector{page: page}
}

func (c *runCollector) add(s string, size float64, bold bool) {
	if strings.TrimSpace(s) == "" {
		if c.cur != nil && s != "" {
			c.cur.text.WriteByte(' ')
		}
		return
	}
	rs := roundSize(size)
	if c.cur != nil && (c.cur.size != rs || c.cur.bold != bold) {
		c.flush()
	}
	if c.cur == nil {
		c.cur = &pendingRun{size: rs, bold: bold}
	}
	c.cur.text.WriteString(s)
}

func (c *runCollector) flush() {
	if c.cur == nil {
		return
	}
	if t := normalize(c.cur.text.String()); t != "" {
		c.page.Add(doctree.Span{Text: t, FontSize: c.cur.size, Bold: c.cur.bold})
	}
	c.cur = nil
}
