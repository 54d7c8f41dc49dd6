package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotPayload is the diagnostic bag persisted on roi_dashboard_snapshot.
// It is observability-only: nothing reads it for control flow. Serialized to
// JSON at the persistence boundary, never passed around as a raw map.
type SnapshotPayload struct {
	PrimarySymbol *string      `json:"primarySymbol,omitempty"`
	PrimaryTicker *string      `json:"primaryTicker,omitempty"`
	PrimarySource *string      `json:"primarySource,omitempty"`
	PrimaryMode   *string      `json:"primaryMode,omitempty"`
	LastPriceDate *string      `json:"lastPriceDate,omitempty"`
	LastError     *string      `json:"lastError,omitempty"`
	Lock          *LockPayload `json:"lock,omitempty"`
}

// LockPayload is stored in the payload of the reserved JOB_LOCK snapshot row.
type LockPayload struct {
	RunID   string `json:"runId"`
	Holder  string `json:"holder"`
	Trigger string `json:"trigger"`
}

func (p SnapshotPayload) ToJSONString() (string, error) {
	bytes, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot payload: %w", err)
	}
	return string(bytes), nil
}

func SnapshotPayloadFromJSON(raw *string) (*SnapshotPayload, error) {
	out := &SnapshotPayload{}
	if raw == nil || *raw == "" {
		return out, nil
	}
	err := json.Unmarshal([]byte(*raw), out)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot payload: %w", err)
	}
	return out, nil
}

// MetricsResult holds the scalar KPIs derived from one NAV series. All values
// are percentages except AsOfDate.
type MetricsResult struct {
	RoiInception decimal.Decimal
	Roi30d       decimal.Decimal
	MaxDrawdown  decimal.Decimal
	Volatility   decimal.Decimal
	AsOfDate     *time.Time
}
