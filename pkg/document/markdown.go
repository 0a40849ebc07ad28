package document

import (
	"cmp"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

//nolint:gochecknoglobals // goldmark.Markdown is safe for concurrent use.
var markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// unlintableRegions returns the sorted, merged byte ranges of source that hold
// code or raw HTML.
func unlintableRegions(source []byte) []Span {
	root := markdownParser.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	var regions []Span
	addSegments := func(segments *text.Segments) {
		if segments == nil || segments.Len() == 0 {
			return
		}
		first := segments.At(0)
		last := segments.At(segments.Len() - 1)
		regions = append(regions, Span{Start: first.Start, End: last.Stop})
	}

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.FencedCodeBlock:
			if n.Info != nil {
				regions = append(regions, Span{Start: n.Info.Segment.Start, End: n.Info.Segment.Stop})
			}
			addSegments(n.Lines())
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			addSegments(n.Lines())
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			addSegments(n.Lines())
			if n.HasClosure() {
				regions = append(regions, Span{Start: n.ClosureLine.Start, End: n.ClosureLine.Stop})
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			addSegments(n.Segments)
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			var span Span
			found := false
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				textNode, ok := child.(*ast.Text)
				if !ok {
					continue
				}
				if !found {
					span = Span{Start: textNode.Segment.Start, End: textNode.Segment.Stop}
					found = true
					continue
				}
				span.Start = min(span.Start, textNode.Segment.Start)
				span.End = max(span.End, textNode.Segment.Stop)
			}
			if found {
				regions = append(regions, span)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return mergeRegions(regions, len(source))
}

// mergeRegions clamps regions to [0, limit), drops empty ones and merges
// overlapping or adjacent ranges.
func mergeRegions(regions []Span, limit int) []Span {
	clean := regions[:0]
	for _, region := range regions {
		region.Start = max(region.Start, 0)
		region.End = min(region.End, limit)
		if region.End > region.Start {
			clean = append(clean, region)
		}
	}
	if len(clean) == 0 {
		return nil
	}

	slices.SortFunc(clean, func(a, b Span) int {
		return cmp.Compare(a.Start, b.Start)
	})

	merged := []Span{clean[0]}
	for _, region := range clean[1:] {
		last := &merged[len(merged)-1]
		if region.Start <= last.End {
			last.End = max(last.End, region.End)
			continue
		}
		merged = append(merged, region)
	}
	return merged
}
