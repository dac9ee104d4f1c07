package sanitize

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlist/internal/domain"
)

func TestSanitizer_Field(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		field Field
		in    string
		want  string
	}{
		{"script dropped from name", CategoryName, "<script>alert(1)</script>Music", "Music"},
		{"ampersand kept as text", CategoryName, "Art & Culture", "Art & Culture"},
		{"unicode kept", CategoryName, "Música & Dança", "Música & Dança"},
		{"all tags stripped from title", EventTitle, "<b>Big</b> <i>Show</i>", "Big Show"},
		{"style content dropped", VenueName, "<style>p{color:red}</style>The Crocodile", "The Crocodile"},
		{"whitespace trimmed", EventLocation, "  Seattle  ", "Seattle"},
		{"empty stays empty", VenueAddress, "", ""},
		{"script dropped from description", EventDescription, "<p>ok</p><script>bad()</script>", "<p>ok</p>"},
		{"disallowed tag text kept", CategoryDescription, "<p>Live <b>music</b></p>", "<p>Live music</p>"},
		{"allowed inline tags kept", CategoryDescription, "<p><strong>Loud</strong> and <em>proud</em></p>", "<p><strong>Loud</strong> and <em>proud</em></p>"},
		{"links keep only href and title", EventDescription, `<a href="https://example.com" title="site" onclick="evil()">x</a>`, `<a href="https://example.com" title="site">x</a>`},
		{"lists allowed in description", EventDescription, "<ul><li>one</li></ul>", "<ul><li>one</li></ul>"},
		{"blockquote stripped from description", EventDescription, "<blockquote>quote</blockquote>", "quote"},
		{"blockquote allowed in post", EventPostContent, "<blockquote>quote</blockquote>", "<blockquote>quote</blockquote>"},
		{"links not allowed in category description", CategoryDescription, `<a href="https://example.com">x</a>`, "x"},
		{"multiply encoded script in name", CategoryName, "&amp;amp;lt;script&amp;amp;gt;alert(1)&amp;amp;lt;/script&amp;amp;gt;Music", "Music"},
		{"multiply encoded tag in title", EventTitle, "&amp;amp;lt;b&amp;amp;gt;Rock", "Rock"},
		{"encoded tag in address", VenueAddress, "&lt;i&gt;1 Main St&lt;/i&gt;", "1 Main St"},
		{"encoded ampersand decoded", CategoryName, "Rock &amp;amp; Roll", "Rock & Roll"},
		{"nul dropped", CategoryName, "Mus\x00ic", "Music"},
		{"invalid utf-8 dropped", VenueName, "\xffHall\xfe", "Hall"},
		{"nul dropped from description", EventDescription, "<p>a\x00b</p>", "<p>ab</p>"},
		{"encoded markup stays escaped in description", EventDescription, "&lt;script&gt;x&lt;/script&gt;", "&lt;script&gt;x&lt;/script&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Field(tt.field, tt.in))
		})
	}
}

func TestSanitizer_JavascriptHrefRemoved(t *testing.T) {
	out := New().Field(EventPostContent, `<a href="javascript:alert(1)">click</a>`)
	assert.NotContains(t, out, "javascript")
	assert.Contains(t, out, "click")
}

func TestSanitizer_MalformedMarkupNeverFails(t *testing.T) {
	s := New()
	inputs := []string{
		"<p><strong>unclosed",
		"<<script>script>alert(1)<</script>/script>",
		"</p></p></div>",
		"<a href=\"",
		"<",
	}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			s.Field(EventDescription, in)
			s.Field(CategoryName, in)
		})
	}
	assert.NotContains(t, s.Field(CategoryName, "<<script>script>alert(1)<</script>/script>"), "<script>")
}

func TestSanitizer_PlainTextHasNoMarkup(t *testing.T) {
	s := New()
	inputs := []string{
		"&amp;amp;amp;amp;lt;script&amp;amp;amp;amp;gt;alert(1)",
		"&#38;lt;img src=x onerror=alert(1)&#38;gt;",
		"&amp;lt;&amp;lt;b&amp;gt;b&amp;gt;",
		"\xff&lt;b\x00&gt;x",
	}
	for _, field := range []Field{CategoryName, VenueName, VenueAddress, EventTitle, EventLocation} {
		for _, in := range inputs {
			out := s.Field(field, in)
			assert.NotContains(t, out, "<", "%s %q", field, in)
			assert.Equal(t, out, s.Field(field, out), "%s %q", field, in)
			assert.True(t, utf8.ValidString(out))
			assert.NotContains(t, out, "\x00")
		}
	}
}

func TestSanitize_Contract(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("<p>hello</p>", nil, nil))
	assert.Equal(t, "<p>hello</p>", Sanitize("<p>hello</p><img src=x>", []string{"p"}, nil))
}

func TestSanitizer_Entities(t *testing.T) {
	s := New()

	c := domain.NewCategory("<script>alert(1)</script>Music", "<p>Live</p><iframe src=x></iframe>")
	s.Category(c)
	assert.Equal(t, "Music", c.Name)
	assert.Equal(t, "<p>Live</p>", c.Description)

	v := domain.NewVenue("<b>Hall</b>", "<i>1 Main St</i>", nil)
	s.Venue(v)
	assert.Equal(t, "Hall", v.Name)
	assert.Equal(t, "1 Main St", v.Address)

	e := &domain.Event{Title: "<h1>Gig</h1>", Description: "<p>ok</p><script>bad()</script>", Location: "<em>Pier</em>"}
	s.Event(e)
	assert.Equal(t, "Gig", e.Title)
	assert.Equal(t, "<p>ok</p>", e.Description)
	assert.Equal(t, "Pier", e.Location)

	p := domain.NewEventPost("ev-1", "<blockquote>hi</blockquote><script>x()</script>")
	s.EventPost(p)
	assert.Equal(t, "<blockquote>hi</blockquote>", p.Content)
}
