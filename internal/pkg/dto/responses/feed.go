package responses

import "github.com/goccy/go-json"

type Feed struct {
	Posts      json.RawMessage `json:"posts"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}
