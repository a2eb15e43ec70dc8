// Package widget provides the per-member key-value persistence layer that
// dashboard features store their documents in. Each feature owns the shape
// of its own value; this package only moves opaque JSON.
package widget

import (
	"context"
	"encoding/json"
)

// Store is the get/set contract features persist through. GetWidgetData
// returns nil (not an error) when no value has ever been written, which
// callers treat as an empty document.
type Store interface {
	GetWidgetData(ctx context.Context, memberID, widgetKey string) (json.RawMessage, error)
	SetWidgetData(ctx context.Context, memberID, widgetKey string, value any) error
}
