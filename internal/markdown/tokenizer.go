package markdown

import (
	"regexp"
	"strings"
)

const fence = "```"

var (
	orderedItem   = regexp.MustCompile(`^\d+\.\s`)
	unorderedItem = regexp.MustCompile(`^[*-]\s`)
	imageLine     = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)(?:\s+"([^"]*)")?\)$`)
)

// StateKind names the tokenizer states.
type StateKind int

const (
	Idle StateKind = iota
	AccumulatingParagraph
	AccumulatingList
	InCodeFence
)

func (k StateKind) String() string {
	switch k {
	case AccumulatingParagraph:
		return "AccumulatingParagraph"
	case AccumulatingList:
		return "AccumulatingList"
	case InCodeFence:
		return "InCodeFence"
	default:
		return "Idle"
	}
}

// State is the tokenizer's scan state. Ordered is meaningful in
// AccumulatingList and Language in InCodeFence.
type State struct {
	Kind     StateKind
	Ordered  bool
	Language string
}

// Tokenizer is a line-driven state machine producing Blocks.
// Feed lines with Step and call Finish once at end of input.
type Tokenizer struct {
	f      *Formatter
	state  State
	para   []string
	items  []string
	code   []string
	blocks []Block
}

// NewTokenizer returns a Tokenizer in the Idle state. A nil formatter
// defaults to ModeEscape.
func NewTokenizer(f *Formatter) *Tokenizer {
	if f == nil {
		f = NewFormatter(ModeEscape)
	}
	return &Tokenizer{f: f}
}

// Tokenize splits body into lines and runs them through a fresh Tokenizer.
func Tokenize(body string, f *Formatter) []Block {
	t := NewTokenizer(f)
	body = strings.ReplaceAll(body, "\r\n", "\n")
	for _, line := range strings.Split(body, "\n") {
		t.Step(line)
	}
	return t.Finish()
}

// State returns the current scan state.
func (t *Tokenizer) State() State { return t.state }

// Step consumes one source line.
func (t *Tokenizer) Step(raw string) {
	if t.state.Kind == InCodeFence {
		if strings.HasPrefix(strings.TrimSpace(raw), fence) {
			t.closeFence()
			return
		}
		t.code = append(t.code, raw)
		return
	}

	line := strings.TrimSpace(raw)
	switch {
	case line == "":
		t.flushParagraph()
	case strings.HasPrefix(line, "# "):
		// The title comes from front matter.
	case strings.HasPrefix(line, "## "):
		t.emitText(KindHeading, line[3:], 2)
	case strings.HasPrefix(line, "### "):
		t.emitText(KindSubheading, line[4:], 3)
	case strings.HasPrefix(line, "> "):
		t.emitText(KindBlockquote, line[2:], 0)
	case strings.HasPrefix(line, fence):
		t.flush()
		t.state = State{Kind: InCodeFence, Language: strings.TrimSpace(line[len(fence):])}
	case orderedItem.MatchString(line):
		t.listItem(true, line[orderedItem.FindStringIndex(line)[1]:])
	case unorderedItem.MatchString(line):
		t.listItem(false, line[2:])
	case imageLine.MatchString(line):
		t.flush()
		t.emitImage(imageLine.FindStringSubmatch(line))
	default:
		t.closeList()
		t.para = append(t.para, line)
		t.state = State{Kind: AccumulatingParagraph}
	}
}

// Finish flushes any open paragraph, list or code fence and returns the blocks.
// An unterminated code fence runs to end of input.
func (t *Tokenizer) Finish() []Block {
	if t.state.Kind == InCodeFence {
		t.closeFence()
	}
	t.flush()
	blocks := t.blocks
	t.blocks = nil
	return blocks
}

func (t *Tokenizer) emitText(kind Kind, text string, level int) {
	t.flush()
	t.blocks = append(t.blocks, Block{
		Kind:  kind,
		Text:  t.f.Format(strings.TrimSpace(text)),
		Level: level,
	})
}

func (t *Tokenizer) emitImage(m []string) {
	alt, src, caption := m[1], m[2], m[3]
	if !t.f.SafeURL(src) {
		return
	}
	img := &Image{
		Src: t.f.Escape(src),
		Alt: t.f.Escape(alt),
	}
	if caption != "" {
		img.Caption = t.f.Format(caption)
	}
	t.blocks = append(t.blocks, Block{Kind: KindImage, Text: img.Alt, Image: img})
}

func (t *Tokenizer) listItem(ordered bool, text string) {
	switch {
	case t.state.Kind == AccumulatingList && t.state.Ordered != ordered:
		t.closeList()
	case t.state.Kind == AccumulatingParagraph:
		t.flushParagraph()
	}
	t.state = State{Kind: AccumulatingList, Ordered: ordered}
	t.items = append(t.items, t.f.Format(strings.TrimSpace(text)))
}

func (t *Tokenizer) flush() {
	t.flushParagraph()
	t.closeList()
}

func (t *Tokenizer) flushParagraph() {
	if t.state.Kind != AccumulatingParagraph {
		return
	}
	t.blocks = append(t.blocks, Block{
		Kind: KindParagraph,
		Text: t.f.Format(strings.Join(t.para, " ")),
	})
	t.para = nil
	t.state = State{Kind: Idle}
}

func (t *Tokenizer) closeList() {
	if t.state.Kind != AccumulatingList {
		return
	}
	if len(t.items) > 0 {
		t.blocks = append(t.blocks, Block{
			Kind:    KindList,
			Ordered: t.state.Ordered,
			Items:   t.items,
		})
	}
	t.items = nil
	t.state = State{Kind: Idle}
}

func (t *Tokenizer) closeFence() {
	t.blocks = append(t.blocks, Block{
		Kind:     KindCode,
		Text:     t.f.Escape(trimBlankLines(t.code)),
		Language: t.f.Escape(t.state.Language),
	})
	t.code = nil
	t.state = State{Kind: Idle}
}

// trimBlankLines drops leading and trailing whitespace-only lines and
// trailing spaces, keeping the indentation of the first kept line.
func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.TrimRight(strings.Join(lines[start:end], "\n"), " \t")
}
