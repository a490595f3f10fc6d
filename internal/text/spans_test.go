package text

import (
	"reflect"
	"strings"
	"testing"
)

// TestParseSpans covers the markup subset: colored spans, nesting,
// stripped foreign tags and entity unescaping.
func TestParseSpans(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   []span
	}{
		{
			name:   "plain text",
			markup: "hello",
			want:   []span{{text: "hello"}},
		},
		{
			name:   "empty input",
			markup: "",
			want:   nil,
		},
		{
			name:   "colored span",
			markup: `a<span foreground="#FF0000">b</span>c`,
			want: []span{
				{text: "a"},
				{text: "b", fg: "#FF0000"},
				{text: "c"},
			},
		},
		{
			name:   "single quoted color attribute",
			markup: "<span foreground='#00FF00'>ok</span>",
			want:   []span{{text: "ok", fg: "#00FF00"}},
		},
		{
			name:   "color alias attribute",
			markup: `<span color="#0000FF">x</span>`,
			want:   []span{{text: "x", fg: "#0000FF"}},
		},
		{
			name:   "nested spans restore outer color",
			markup: `<span foreground="#111111">a<span foreground="#222222">b</span>c</span>`,
			want: []span{
				{text: "a", fg: "#111111"},
				{text: "b", fg: "#222222"},
				{text: "c", fg: "#111111"},
			},
		},
		{
			name:   "span without color inherits",
			markup: `<span foreground="#333333"><span weight="bold">b</span></span>`,
			want:   []span{{text: "b", fg: "#333333"}},
		},
		{
			name:   "foreign tags stripped",
			markup: "<b>bold</b> and <i>italic</i>",
			want:   []span{{text: "bold"}, {text: " and "}, {text: "italic"}},
		},
		{
			name:   "entities unescaped",
			markup: "1 &lt; 2 &amp;&amp; 3 &gt; 2",
			want:   []span{{text: "1 < 2 && 3 > 2"}},
		},
		{
			name:   "bare ampersand kept",
			markup: "AT&T &unknown;",
			want:   []span{{text: "AT&T &unknown;"}},
		},
		{
			name:   "unterminated tag kept literal",
			markup: "a<span foreground",
			want:   []span{{text: "a<span foreground"}},
		},
		{
			name:   "unbalanced closing tag ignored",
			markup: "a</span>b",
			want:   []span{{text: "a"}, {text: "b"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseSpans(tc.markup)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parseSpans(%q) = %+v, want %+v", tc.markup, got, tc.want)
			}
		})
	}
}

// TestChars2b verifies the byte-to-Char2b widening used for measurement.
func TestChars2b(t *testing.T) {
	got := chars2b("Ab")
	if len(got) != 2 {
		t.Fatalf("chars2b produced %d chars, want 2", len(got))
	}
	if got[0].Byte1 != 0 || got[0].Byte2 != 'A' || got[1].Byte2 != 'b' {
		t.Errorf("chars2b(\"Ab\") = %+v", got)
	}
}

// TestXLFD pins the core font pattern shape.
func TestXLFD(t *testing.T) {
	got := xlfd("Sans", "12")
	want := "-*-sans-medium-r-*-*-12-*-*-*-*-*-*-*"
	if got != want {
		t.Errorf("xlfd(Sans, 12) = %q, want %q", got, want)
	}
}

// TestChunkRun pins the draw request's one-byte length limit: every
// chunk fits, nothing is dropped, and only the final chunk may run
// short.
func TestChunkRun(t *testing.T) {
	cases := []struct {
		length int
		chunks int
	}{
		{0, 0},
		{1, 1},
		{maxTextChunk, 1},
		{maxTextChunk + 1, 2},
		{2 * maxTextChunk, 2},
		{2*maxTextChunk + 1, 3},
	}

	for _, tc := range cases {
		s := strings.Repeat("x", tc.length)
		got := chunkRun(s)
		if len(got) != tc.chunks {
			t.Errorf("chunkRun of %d bytes produced %d chunks, want %d", tc.length, len(got), tc.chunks)
			continue
		}
		joined := ""
		for i, chunk := range got {
			if len(chunk) > maxTextChunk {
				t.Errorf("length %d: chunk %d is %d bytes, over the %d-byte limit", tc.length, i, len(chunk), maxTextChunk)
			}
			if i < len(got)-1 && len(chunk) != maxTextChunk {
				t.Errorf("length %d: interior chunk %d is %d bytes, want %d", tc.length, i, len(chunk), maxTextChunk)
			}
			joined += chunk
		}
		if joined != s {
			t.Errorf("length %d: chunks do not reassemble the run", tc.length)
		}
	}
}
