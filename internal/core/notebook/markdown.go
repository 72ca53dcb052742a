package notebook

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownDecoder splits a markdown file into cells. Top-level fenced code
// blocks become code cells; the text between them becomes markdown cells.
type MarkdownDecoder struct{}

type fence struct {
	open, close int // line indices of the fence markers, close == -1 when unterminated
	body        []string
}

func (MarkdownDecoder) Decode(data []byte) ([]*Cell, error) {
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(data))

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	var fences []fence
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			continue
		}
		if f, ok := locateFence(block, data, lines); ok {
			fences = append(fences, f)
		}
	}

	var cells []*Cell
	addMarkdown := func(from, to int) {
		if from >= to {
			return
		}
		chunk := trimBlankLines(lines[from:to])
		if len(chunk) > 0 {
			cells = append(cells, NewMarkdownCell(chunk...))
		}
	}

	cursor := 0
	for _, f := range fences {
		addMarkdown(cursor, f.open)
		cells = append(cells, NewCodeCell(f.body...))
		if f.close < 0 {
			cursor = len(lines)
		} else {
			cursor = f.close + 1
		}
	}
	addMarkdown(cursor, len(lines))

	return cells, nil
}

func locateFence(block *ast.FencedCodeBlock, src []byte, lines []string) (fence, bool) {
	lineOf := func(offset int) int { return bytes.Count(src[:offset], []byte("\n")) }

	var f fence
	segs := block.Lines()
	switch {
	case block.Info != nil:
		f.open = lineOf(block.Info.Segment.Start)
	case segs.Len() > 0:
		f.open = lineOf(segs.At(0).Start) - 1
	default:
		return fence{}, false
	}

	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		f.body = append(f.body, strings.TrimRight(string(seg.Value(src)), "\n"))
	}

	f.close = -1
	next := f.open + len(f.body) + 1
	if next < len(lines) && isFenceLine(lines[next]) {
		f.close = next
	}

	return f, true
}

func isFenceLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "```") || strings.HasPrefix(t, "~~~")
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
