package core

import "github.com/goccy/go-json"

// JSONCodec is the text wire format shared by the gateway and the orchestrator.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}

func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
