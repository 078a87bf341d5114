package record

import (
	"bytes"
	"encoding/gob"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

type Marshaler interface {
	Marshal(v any) (data []byte, err error)
}

type Unmarshaler interface {
	Unmarshal(data []byte, v any) error
}

type MarshalUnmarshaler interface {
	Marshaler
	Unmarshaler
}

var (
	JsonMaUn    MarshalUnmarshaler = &jsonMarshalUnmarshaler{}
	GobMaUn     MarshalUnmarshaler = &gobMarshalUnmarshaler{}
	MsgpackMaUn MarshalUnmarshaler = &msgpackMarshalUnmarshaler{}
)

type jsonMarshalUnmarshaler struct{}

func (j *jsonMarshalUnmarshaler) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j *jsonMarshalUnmarshaler) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type gobMarshalUnmarshaler struct{}

func (g *gobMarshalUnmarshaler) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *gobMarshalUnmarshaler) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(v)
}

type msgpackMarshalUnmarshaler struct{}

func (m *msgpackMarshalUnmarshaler) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes integers held in interfaces as int64 or uint64 and
// floats as float64, whatever width they were encoded with.
func (m *msgpackMarshalUnmarshaler) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(v)
}
