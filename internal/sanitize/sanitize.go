// Package sanitize strips markup from free-text fields using per-field allow-lists.
//
// Sanitization never fails. NUL bytes and invalid UTF-8 are dropped first.
// Plain-text fields (no allowed tags) come back as unescaped text with every tag
// removed, however many times the input was entity-encoded; rich fields come back
// as HTML holding only the allowed tags and attributes. Script and style content is dropped.
// Surrounding whitespace is trimmed in both cases.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"eventlist/internal/domain"
)

// Field names a sanitized entity field.
type Field string

const (
	CategoryName        Field = "category.name"
	CategoryDescription Field = "category.description"
	VenueName           Field = "venue.name"
	VenueAddress        Field = "venue.address"
	EventTitle          Field = "event.title"
	EventDescription    Field = "event.description"
	EventLocation       Field = "event.location"
	EventPostContent    Field = "eventpost.content"
)

// Rule is the allow-list for one field. A Rule with no Tags strips all markup.
type Rule struct {
	Tags  []string
	Attrs map[string][]string
}

var (
	basicTags = []string{"p", "br", "strong", "em"}
	listTags  = []string{"p", "br", "strong", "em", "ul", "ol", "li", "a"}
	postTags  = []string{"p", "br", "strong", "em", "ul", "ol", "li", "a", "blockquote"}
	linkAttrs = map[string][]string{"a": {"href", "title"}}
)

// Rules is the per-field allow-list table.
var Rules = map[Field]Rule{
	CategoryName:        {},
	VenueName:           {},
	VenueAddress:        {},
	EventTitle:          {},
	EventLocation:       {},
	CategoryDescription: {Tags: basicTags},
	EventDescription:    {Tags: listTags, Attrs: linkAttrs},
	EventPostContent:    {Tags: postTags, Attrs: linkAttrs},
}

// Policy sanitizes text against one allow-list. It is safe for concurrent use.
type Policy struct {
	p     *bluemonday.Policy
	plain bool
}

// NewPolicy builds a Policy keeping only tags and, per tag, the attributes in attrs.
func NewPolicy(tags []string, attrs map[string][]string) *Policy {
	if len(tags) == 0 {
		return &Policy{p: bluemonday.StrictPolicy(), plain: true}
	}
	p := bluemonday.NewPolicy()
	p.AllowElements(tags...)
	for tag, names := range attrs {
		if len(names) > 0 {
			p.AllowAttrs(names...).OnElements(tag)
		}
	}
	p.AllowStandardURLs()
	return &Policy{p: p}
}

// Sanitize returns text cleaned by the policy. It returns "" if the underlying
// sanitizer panics or plain text never settles.
func (p *Policy) Sanitize(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
		}
	}()
	text = storable(text)
	if !p.plain {
		return strings.TrimSpace(p.p.Sanitize(text))
	}
	// Each pass strips markup and decodes one level of entities. Only a fixed point
	// is returned, so decoding it again cannot reveal new tags.
	for passes := len(text) + 1; passes > 0; passes-- {
		next := storable(html.UnescapeString(p.p.Sanitize(text)))
		if next == text {
			return strings.TrimSpace(text)
		}
		text = next
	}
	return ""
}

// storable drops NUL bytes and invalid UTF-8, neither of which a text column accepts.
func storable(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}

// Sanitize cleans text keeping only allowedTags and, per tag, allowedAttrs.
func Sanitize(text string, allowedTags []string, allowedAttrs map[string][]string) string {
	return NewPolicy(allowedTags, allowedAttrs).Sanitize(text)
}

// Sanitizer applies the Rules table to entities in place.
type Sanitizer struct {
	policies map[Field]*Policy
}

// New compiles a policy for every entry in Rules.
func New() *Sanitizer {
	policies := make(map[Field]*Policy, len(Rules))
	for f, r := range Rules {
		policies[f] = NewPolicy(r.Tags, r.Attrs)
	}
	return &Sanitizer{policies: policies}
}

// Field sanitizes text with the rule registered for f. Unknown fields are stripped to plain text.
func (s *Sanitizer) Field(f Field, text string) string {
	p, ok := s.policies[f]
	if !ok {
		p = s.policies[EventTitle]
	}
	return p.Sanitize(text)
}

func (s *Sanitizer) Category(c *domain.Category) {
	c.Name = s.Field(CategoryName, c.Name)
	c.Description = s.Field(CategoryDescription, c.Description)
}

func (s *Sanitizer) Venue(v *domain.Venue) {
	v.Name = s.Field(VenueName, v.Name)
	v.Address = s.Field(VenueAddress, v.Address)
}

func (s *Sanitizer) Event(e *domain.Event) {
	e.Title = s.Field(EventTitle, e.Title)
	e.Description = s.Field(EventDescription, e.Description)
	e.Location = s.Field(EventLocation, e.Location)
}

func (s *Sanitizer) EventPost(p *domain.EventPost) {
	p.Content = s.Field(EventPostContent, p.Content)
}
