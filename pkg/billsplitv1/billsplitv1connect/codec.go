package billsplitv1connect

import (
	"encoding/json"
	"fmt"
)

// jsonCodec encodes billsplitv1 messages with encoding/json.
// It is registered under the name "json", so requests use application/json.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	// An empty body is a valid empty message
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to decode %T: %w", msg, err)
	}
	return nil
}

// jsonCharsetCodec handles "application/json; charset=utf-8" requests.
type jsonCharsetCodec struct {
	jsonCodec
}

func (jsonCharsetCodec) Name() string {
	return "json; charset=utf-8"
}
