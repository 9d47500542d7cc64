package export

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"entity-extractor/internal/extract"
)

// wireResult is the MessagePack layout of a result. Struct fields are
// encoded as a map in declaration order.
type wireResult struct {
	Entities      []wireEntity       `msgpack:"entities"`
	Relationships []wireRelationship `msgpack:"relationships"`
}

type wireRelationship struct {
	FromEntity string `msgpack:"from_entity"`
	ToEntity   string `msgpack:"to_entity"`
	Key        string `msgpack:"key"`
}

// wireEntity encodes its attributes by hand to keep their order.
type wireEntity struct {
	*extract.Entity
}

var _ msgpack.CustomEncoder = wireEntity{}

func (e wireEntity) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(3); err != nil {
		return err
	}

	if err := encodeStrings(enc, "name", e.Name, "kind", string(e.Kind), "attributes"); err != nil {
		return err
	}

	if err := enc.EncodeMapLen(e.Attributes.Len()); err != nil {
		return err
	}

	for pair := e.Attributes.Oldest(); pair != nil; pair = pair.Next() {
		if err := enc.EncodeString(pair.Key); err != nil {
			return err
		}

		if pair.Value.IsValues() {
			if err := enc.Encode(pair.Value.Values); err != nil {
				return err
			}

			continue
		}

		if err := enc.EncodeMapLen(1); err != nil {
			return err
		}

		if err := encodeStrings(enc, "Type", pair.Value.Type); err != nil {
			return err
		}
	}

	return nil
}

func encodeStrings(enc *msgpack.Encoder, values ...string) error {
	for _, v := range values {
		if err := enc.EncodeString(v); err != nil {
			return err
		}
	}

	return nil
}

func toWire(res *extract.Result) wireResult {
	out := wireResult{
		Entities:      make([]wireEntity, 0, len(res.Entities)),
		Relationships: make([]wireRelationship, 0, len(res.Relationships)),
	}

	for _, e := range res.Entities {
		out.Entities = append(out.Entities, wireEntity{e})
	}

	for _, r := range res.Relationships {
		out.Relationships = append(out.Relationships, wireRelationship{
			FromEntity: r.FromEntity,
			ToEntity:   r.ToEntity,
			Key:        string(r.Key),
		})
	}

	return out
}

func encodeMsgpack(w io.Writer, res *extract.Result) error {
	if err := msgpack.NewEncoder(w).Encode(toWire(res)); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}

	return nil
}
