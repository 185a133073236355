package events

import (
	"encoding/json"
	"strings"

	"github.com/testersconnect/site/pkg/decode"
	"github.com/testersconnect/site/pkg/validation"
)

type fields map[string]json.RawMessage

// DecodeCreate builds a CreateCommand from a JSON object, applying the
// create defaults: mode Online, no tags, published.
func DecodeCreate(body map[string]json.RawMessage) (CreateCommand, error) {
	f := fields(body)
	cmd := CreateCommand{
		Mode:        ModeOnline,
		Tags:        []string{},
		IsPublished: true,
	}

	var err error
	if cmd.Title, _, err = f.text("title"); err != nil {
		return cmd, err
	}
	if cmd.Slug, _, err = f.text("slug"); err != nil {
		return cmd, err
	}
	if cmd.EventDate, _, err = f.text("event_date"); err != nil {
		return cmd, err
	}
	if m, ok, err := f.text("mode"); err != nil {
		return cmd, err
	} else if ok && m != "" {
		cmd.Mode = Mode(m)
	}
	if cmd.City, _, err = f.nullable("city"); err != nil {
		return cmd, err
	}
	if cmd.Description, _, err = f.text("description"); err != nil {
		return cmd, err
	}
	if tags, ok := f.tags("tags"); ok {
		cmd.Tags = tags
	}
	if b, ok := f.boolean("is_published"); ok {
		cmd.IsPublished = b
	}
	if cmd.CoverImageURL, _, err = f.nullable("cover_image_url"); err != nil {
		return cmd, err
	}
	if cmd.RegisterURL, _, err = f.nullable("register_url"); err != nil {
		return cmd, err
	}
	if cmd.EventType, _, err = f.nullable("event_type"); err != nil {
		return cmd, err
	}

	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Slug = strings.TrimSpace(cmd.Slug)
	cmd.EventDate = strings.TrimSpace(cmd.EventDate)
	return cmd, nil
}

// DecodePatch returns the lookup slug and a Patch holding only the keys
// present in body. Explicit nulls coalesce the way a fresh create would:
// mode to Online, tags to none, is_published to true, text to empty.
func DecodePatch(body map[string]json.RawMessage) (string, Patch, error) {
	f := fields(body)
	var p Patch

	slug, _, err := f.text("slug")
	if err != nil {
		return "", p, err
	}
	slug = strings.TrimSpace(slug)

	if v, ok, err := f.text("title"); err != nil {
		return slug, p, err
	} else if ok {
		p.Title = Some(strings.TrimSpace(v))
	}

	if v, ok, err := f.text("event_date"); err != nil {
		return slug, p, err
	} else if ok {
		d, perr := ParseDate(strings.TrimSpace(v))
		if perr != nil {
			return slug, p, validation.New("event_date must be a date in YYYY-MM-DD form")
		}
		p.EventDate = Some(d)
	}

	if v, ok, err := f.text("mode"); err != nil {
		return slug, p, err
	} else if ok {
		m := Mode(v)
		if v == "" {
			m = ModeOnline
		}
		p.Mode = Some(m)
	}

	if v, ok, err := f.nullable("city"); err != nil {
		return slug, p, err
	} else if ok {
		p.City = Some(v)
	}

	if v, ok, err := f.text("description"); err != nil {
		return slug, p, err
	} else if ok {
		p.Description = Some(v)
	}

	if _, present := body["tags"]; present {
		tags, _ := f.tags("tags")
		if tags == nil {
			tags = []string{}
		}
		p.Tags = Some(tags)
	}

	if _, present := body["is_published"]; present {
		b, ok := f.boolean("is_published")
		if !ok {
			b = true
		}
		p.IsPublished = Some(b)
	}

	if v, ok, err := f.nullable("cover_image_url"); err != nil {
		return slug, p, err
	} else if ok {
		p.CoverImageURL = Some(v)
	}

	if v, ok, err := f.nullable("register_url"); err != nil {
		return slug, p, err
	} else if ok {
		p.RegisterURL = Some(v)
	}

	if v, ok, err := f.nullable("event_type"); err != nil {
		return slug, p, err
	} else if ok {
		p.EventType = Some(v)
	}

	return slug, p, nil
}

// text reads a string member. Null yields "", a non-string is rejected.
func (f fields) text(key string) (string, bool, error) {
	raw, ok := f[key]
	if !ok {
		return "", false, nil
	}
	if decode.IsNull(raw) {
		return "", true, nil
	}
	s, ok := decode.String(raw)
	if !ok {
		return "", true, validation.Newf("%s must be a string", key)
	}
	return s, true, nil
}

// nullable reads an optional string member. Null and blank yield nil.
func (f fields) nullable(key string) (*string, bool, error) {
	s, ok, err := f.text(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true, nil
	}
	return &s, true, nil
}

// tags reads a string array, trimming entries and dropping blanks.
// Non-array values report ok == false.
func (f fields) tags(key string) ([]string, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := decode.String(item); ok {
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
	}
	return tags, true
}

// boolean reads a JSON boolean. Null and other values report ok == false.
func (f fields) boolean(key string) (bool, bool) {
	raw, ok := f[key]
	if !ok {
		return false, false
	}
	var b *bool
	if err := json.Unmarshal(raw, &b); err != nil || b == nil {
		return false, false
	}
	return *b, true
}
