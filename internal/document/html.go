package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

const maxLabelLength = 40

// LoadHTML builds a document from HTML. Geometry comes from a
// data-rect="x,y,w,h" attribute or from inline left/top/width/height in px;
// <body data-viewport="w,h"> sets the viewport.
func LoadHTML(r io.Reader) (*Tree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	body := doc.Find("body").First()
	width, height := float64(DefaultViewportWidth), float64(DefaultViewportHeight)
	if vp, ok := body.Attr("data-viewport"); ok {
		vals, err := parseFloats(vp, 2)
		if err != nil {
			return nil, fmt.Errorf("body data-viewport: %w", err)
		}
		width, height = vals[0], vals[1]
	}

	tree := NewTree(width, height)
	var specErr error
	body.Children().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		spec, err := nodeSpecFromSelection(s)
		if err != nil {
			specErr = err
			return false
		}
		if _, err := tree.Append(nil, spec); err != nil {
			specErr = err
			return false
		}
		return true
	})
	if specErr != nil {
		return nil, specErr
	}
	return tree, nil
}

func nodeSpecFromSelection(s *goquery.Selection) (NodeSpec, error) {
	spec := NodeSpec{
		Tag:   goquery.NodeName(s),
		Attrs: map[string]string{},
	}
	for _, attr := range s.Nodes[0].Attr {
		spec.Attrs[strings.ToLower(attr.Key)] = attr.Val
	}
	spec.ID = spec.Attrs["id"]

	inline := parseInlineStyle(spec.Attrs["style"])
	spec.Style = Style{Display: inline["display"], Visibility: inline["visibility"]}
	if _, hidden := spec.Attrs["hidden"]; hidden {
		spec.Style.Display = DisplayNone
	}
	_, spec.Disabled = spec.Attrs["disabled"]

	rect, err := rectFromSelection(spec.Attrs["data-rect"], inline)
	if err != nil {
		return NodeSpec{}, fmt.Errorf("<%s id=%q>: %w", spec.Tag, spec.ID, err)
	}
	spec.Rect = rect

	if _, ok := spec.Attrs["text"]; !ok {
		if label := ownText(s); label != "" {
			spec.Attrs["text"] = label
		}
	}

	var childErr error
	s.Children().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		child, err := nodeSpecFromSelection(c)
		if err != nil {
			childErr = err
			return false
		}
		spec.Children = append(spec.Children, child)
		return true
	})
	if childErr != nil {
		return NodeSpec{}, childErr
	}
	return spec, nil
}

func rectFromSelection(dataRect string, inline map[string]string) (spatial.Rect, error) {
	if strings.TrimSpace(dataRect) != "" {
		vals, err := parseFloats(dataRect, 4)
		if err != nil {
			return spatial.Rect{}, fmt.Errorf("data-rect: %w", err)
		}
		return spatial.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
	}

	var rect spatial.Rect
	fields := []struct {
		name string
		dst  *float64
	}{
		{"left", &rect.X},
		{"top", &rect.Y},
		{"width", &rect.Width},
		{"height", &rect.Height},
	}
	for _, f := range fields {
		raw, ok := inline[f.name]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
		if err != nil {
			return spatial.Rect{}, fmt.Errorf("style %s: invalid length %q", f.name, raw)
		}
		*f.dst = v
	}
	return rect, nil
}

func parseInlineStyle(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.ToLower(strings.TrimSpace(value))
		if name != "" {
			out[name] = value
		}
	}
	return out
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// ownText returns the element's text excluding descendants, truncated.
func ownText(s *goquery.Selection) string {
	text := strings.TrimSpace(s.Clone().Children().Remove().End().Text())
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > maxLabelLength {
		text = string(runes[:maxLabelLength])
	}
	return text
}
