package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello world", want: "hello world"},
		{name: "named", in: "Tom &amp; Jerry &lt;3", want: "Tom & Jerry <3"},
		{name: "numeric", in: "&#169; &#x2014; &#39;", want: "© — '"},
		{name: "nbsp", in: "a&nbsp;b", want: "a\u00a0b"},
		{name: "double encoded", in: "&amp;lt;b&amp;gt;", want: "<b>"},
		{name: "unknown reference", in: "&bogus; & more", want: "&bogus; & more"},
		{name: "empty", in: "", want: ""},
		{name: "deeply nested", in: "&" + strings.Repeat("amp;", 12) + "lt;", want: "<"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	inputs := []string{
		"a &amp;amp; b",
		"&lt;a href=&quot;x&quot;&gt;",
		"&amp;#38;",
		"café &eacute;",
		"<p>already & decoded</p>",
		"&" + strings.Repeat("amp;", 10) + "lt;",
		"&" + strings.Repeat("amp;", 40) + "#x3C;b" + "&" + strings.Repeat("amp;", 25) + "gt;",
	}
	for _, in := range inputs {
		once := Decode(in)
		require.Equal(t, once, Decode(once), "input %q", in)
	}
}
