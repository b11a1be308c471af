package rubix

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque identifier. Backends send both numeric and string ids,
// both decode to the same textual form and compare by value.
type ID string

func (i ID) String() string { return string(i) }

func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	*i = ID(n.String())
	return nil
}
