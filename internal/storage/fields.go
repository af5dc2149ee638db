package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Biskuitttt/Suratt/internal/model"
)

// EncodeFields marshals document fields for backends that store JSON
func EncodeFields(fields map[string]any) ([]byte, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return data, nil
}

// DecodeFields unmarshals stored document fields
func DecodeFields(data []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(data) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

// CloneFields deep-copies fields through their JSON form so every backend
// hands out the same value types (numbers become float64)
func CloneFields(fields map[string]any) (map[string]any, error) {
	data, err := EncodeFields(fields)
	if err != nil {
		return nil, err
	}
	return DecodeFields(data)
}

// SortByKey orders documents by key in place
func SortByKey(docs []*model.Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Key < docs[j].Key
	})
}
