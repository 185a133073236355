package reviews

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/testersconnect/site/pkg/decode"
)

// DecodeCreate reads a review body leniently: text members may be any
// scalar, and rating may be a number or a numeric string. A missing or
// unusable rating is left nil; null and "" count as zero.
func DecodeCreate(body map[string]json.RawMessage) CreateCommand {
	return CreateCommand{
		ResourceID: text(body["resource_id"]),
		Name:       text(body["name"]),
		Comment:    text(body["comment"]),
		Rating:     number(body["rating"]),
	}
}

func text(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	s, _ := decode.String(raw)
	return s
}

func number(raw json.RawMessage) *float64 {
	if raw == nil {
		return nil
	}
	zero := 0.0
	if decode.IsNull(raw) {
		return &zero
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			return &f
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return &zero
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
