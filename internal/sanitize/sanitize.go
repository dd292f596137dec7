package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// allowedTags maps a tag name to the attributes it may keep. Tags outside the
// map are escaped verbatim instead of rendered. Event-handler attributes are
// never in an allow list, so they are dropped from surviving tags.
var allowedTags = map[string][]string{
	"a":          {"href", "title", "target"},
	"abbr":       {"title"},
	"b":          nil,
	"blockquote": {"cite"},
	"br":         nil,
	"code":       nil,
	"em":         nil,
	"h1":         nil,
	"h2":         nil,
	"h3":         nil,
	"h4":         nil,
	"h5":         nil,
	"h6":         nil,
	"hr":         nil,
	"i":          nil,
	"img":        {"src", "alt", "title", "width", "height"},
	"li":         nil,
	"ol":         nil,
	"p":          nil,
	"pre":        nil,
	"small":      nil,
	"strong":     nil,
	"sub":        nil,
	"sup":        nil,
	"u":          nil,
	"ul":         nil,
}

// textEscaper escapes text content. Quotes stay literal in text, matching the
// escaping the API has always produced.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// attrEscaper escapes attribute values, which are always double-quoted.
var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Clean neutralizes executable HTML in an untrusted string while preserving
// benign markup. It is pure and idempotent: cleaning an already-clean string
// returns it unchanged. Tags outside the allow list come back entity-escaped,
// surviving tags keep only allow-listed attributes, and href/src values with
// script-capable schemes are removed.
func Clean(input string) string {
	if input == "" {
		return input
	}

	z := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	b.Grow(len(input))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF, or a parse error at the tail; either way the
			// remainder is already consumed.
			return b.String()

		case html.TextToken:
			// Token() decodes entities, so re-escaping here keeps
			// Clean idempotent.
			b.WriteString(textEscaper.Replace(z.Token().Data))

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			allowed, ok := allowedTags[tok.Data]
			if !ok {
				b.WriteString(textEscaper.Replace(raw))
				continue
			}
			writeTag(&b, tok, allowed, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			if _, ok := allowedTags[tok.Data]; !ok {
				b.WriteString(textEscaper.Replace(raw))
				continue
			}
			b.WriteString("</")
			b.WriteString(tok.Data)
			b.WriteString(">")

		case html.CommentToken, html.DoctypeToken:
			b.WriteString(textEscaper.Replace(string(z.Raw())))
		}
	}
}

func writeTag(b *strings.Builder, tok html.Token, allowed []string, selfClosing bool) {
	b.WriteByte('<')
	b.WriteString(tok.Data)
	for _, attr := range tok.Attr {
		if !contains(allowed, attr.Key) {
			continue
		}
		if (attr.Key == "href" || attr.Key == "src") && unsafeURL(attr.Val) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(attr.Val))
		b.WriteByte('"')
	}
	if selfClosing {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
}

func contains(list []string, key string) bool {
	for _, item := range list {
		if item == key {
			return true
		}
	}
	return false
}

// unsafeURL reports whether a URL value can execute script when dereferenced.
func unsafeURL(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, scheme := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}
