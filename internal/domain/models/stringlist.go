package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList decodes from either a single string or an array of strings.
// Older records and partner feeds use both shapes for the same field.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*l = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("want a string or an array of strings: %w", err)
	}
	*l = many
	return nil
}

func (l *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*l = nil
		return nil
	case bsontype.String:
		s, ok := raw.StringValueOK()
		if !ok {
			return errors.New("malformed string value")
		}
		*l = StringList{s}
		return nil
	case bsontype.Array:
		var many []string
		if err := raw.Unmarshal(&many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	return fmt.Errorf("cannot decode %s into a string list", t)
}
