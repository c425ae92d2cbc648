package preview

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlText extracts the readable text of an HTML fragment. Line breaks
// become newlines and images show their alt text.
func htmlText(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "br":
				sb.WriteByte('\n')
			case "img":
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					if string(key) == "alt" {
						sb.Write(val)
					}
				}
			}
		}
	}
}
