package http_common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// MovieID accepts a JSON string or number: clients send the media server id
// either way.
type MovieID string

func (id *MovieID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MovieID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("movie_id must be a string or a number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = MovieID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = MovieID(n.String())
	return nil
}

func (id MovieID) String() string {
	return string(id)
}
