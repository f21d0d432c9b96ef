package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrMalformed is returned for frames that are not a valid envelope or
	// whose payload does not fit the tag.
	ErrMalformed = errors.New("protocol: malformed packet")
	// ErrUnknownMessage is returned for an envelope with a tag the server
	// does not accept.
	ErrUnknownMessage = errors.New("protocol: unknown message")
)

// DecodeClient parses an inbound frame. The payload is left raw, use the
// Decode* helpers for the tags that carry one.
func DecodeClient(frame []byte) (ClientPacket, error) {
	var p ClientPacket
	if err := json.Unmarshal(frame, &p); err != nil {
		return ClientPacket{}, errors.Wrap(ErrMalformed, err.Error())
	}
	if p.Message == "" {
		return ClientPacket{}, errors.Wrap(ErrMalformed, "missing message tag")
	}
	if !clientTags[p.Message] {
		return p, errors.Wrapf(ErrUnknownMessage, "tag %q", p.Message)
	}
	return p, nil
}

// DecodeJoin reads a JoinGame payload. Both a bare string and {"name": ...}
// are accepted, missing or null data joins without a name.
func DecodeJoin(data json.RawMessage) (Join, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Join{}, nil
	}
	var j Join
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &j.Name); err != nil {
			return Join{}, errors.Wrap(ErrMalformed, err.Error())
		}
	case '{':
		if err := json.Unmarshal(data, &j); err != nil {
			return Join{}, errors.Wrap(ErrMalformed, err.Error())
		}
	default:
		return Join{}, errors.Wrap(ErrMalformed, "JoinGame data must be a string or object")
	}
	return j, nil
}

// DecodeMove reads a MoveSnake payload. Both a bare number of degrees and
// {"direction": n, "boost": b} are accepted.
func DecodeMove(data json.RawMessage) (Move, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Move{}, errors.Wrap(ErrMalformed, "MoveSnake without data")
	}
	var m Move
	if data[0] == '{' {
		var raw struct {
			Direction *float64 `json:"direction"`
			Boost     *bool    `json:"boost"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return Move{}, errors.Wrap(ErrMalformed, err.Error())
		}
		if raw.Direction == nil {
			return Move{}, errors.Wrap(ErrMalformed, "MoveSnake without direction")
		}
		m.Direction = *raw.Direction
		m.Boost = raw.Boost
		return m, nil
	}
	if err := json.Unmarshal(data, &m.Direction); err != nil {
		return Move{}, errors.Wrap(ErrMalformed, err.Error())
	}
	return m, nil
}

// Encode wraps data in an envelope tagged with message.
func Encode(message string, data interface{}) ([]byte, error) {
	b, err := json.Marshal(ServerPacket{Message: message, Data: data})
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", message)
	}
	return b, nil
}

// MustEncode is Encode for payloads that are known to marshal.
func MustEncode(message string, data interface{}) []byte {
	b, err := Encode(message, data)
	if err != nil {
		panic(err)
	}
	return b
}
