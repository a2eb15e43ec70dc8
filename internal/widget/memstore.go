package widget

import (
	"context"
	"encoding/json"
)

// MemStore is an in-memory Store for tests and one-off tooling.
type MemStore struct {
	values map[string]json.RawMessage
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{values: map[string]json.RawMessage{}}
}

func memKey(memberID, widgetKey string) string {
	return memberID + "/" + widgetKey
}

// GetWidgetData returns the stored JSON value, or nil when absent.
func (m *MemStore) GetWidgetData(_ context.Context, memberID, widgetKey string) (json.RawMessage, error) {
	v, ok := m.values[memKey(memberID, widgetKey)]
	if !ok {
		return nil, nil
	}
	return v, nil
}

// SetWidgetData serializes value and stores it under the member/widget key.
func (m *MemStore) SetWidgetData(_ context.Context, memberID, widgetKey string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[memKey(memberID, widgetKey)] = data
	return nil
}
