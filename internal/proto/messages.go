package pb

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Request field names.
const (
	FieldPath        = "path"
	FieldData        = "data"
	FieldFields      = "fields"
	FieldCollection  = "collection"
	FieldField       = "field"
	FieldValue       = "value"
	FieldDocuments   = "documents"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "displayName"
	FieldUserID      = "userId"
	FieldAccessToken = "accessToken"
	FieldStatus      = "status"
	FieldKey         = "key"
	FieldURL         = "url"
)

// StatusOK is the Ping status of a healthy server.
const StatusOK = "OK"

// NewMessage builds a Struct message. Values must be accepted by structpb.NewValue.
func NewMessage(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return s, nil
}

// String returns a string field of s or "".
func String(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

// Map returns a nested object field of s as a plain map, or nil.
func Map(s *structpb.Struct, key string) map[string]any {
	if s == nil {
		return nil
	}
	nested := s.GetFields()[key].GetStructValue()
	if nested == nil {
		return nil
	}
	return nested.AsMap()
}

// Maps returns a list-of-objects field of s. Non-object elements are skipped.
func Maps(s *structpb.Struct, key string) []map[string]any {
	if s == nil {
		return nil
	}
	list := s.GetFields()[key].GetListValue()
	if list == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		if obj := v.GetStructValue(); obj != nil {
			out = append(out, obj.AsMap())
		}
	}
	return out
}
