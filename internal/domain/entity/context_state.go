package entity

import (
	"encoding/json"
	"time"
)

// ContextState is the durable snapshot of an OrderContext, keyed by context
// key so an in-progress table order survives a process restart.
type ContextState struct {
	Key       string    `gorm:"size:50;primary_key" json:"key"`
	Data      []byte    `gorm:"type:jsonb;not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the ContextState model
func (ContextState) TableName() string {
	return "order_contexts"
}

// NewContextState serializes an OrderContext into its durable form
func NewContextState(oc *OrderContext) (*ContextState, error) {
	data, err := json.Marshal(oc)
	if err != nil {
		return nil, err
	}
	return &ContextState{Key: string(oc.Key), Data: data}, nil
}

// Restore deserializes the stored snapshot
func (cs *ContextState) Restore() (*OrderContext, error) {
	var oc OrderContext
	if err := json.Unmarshal(cs.Data, &oc); err != nil {
		return nil, err
	}
	if oc.Items == nil {
		oc.Items = []LineItem{}
	}
	return &oc, nil
}
