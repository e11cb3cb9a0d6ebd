package order

import (
	"errors"
	"strings"
)

// Status is one position in the fixed linear fulfilment sequence.
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// ErrUnknownStatus is returned for values outside the fixed sequence. The
// mapper fails loudly rather than defaulting to a stage.
var ErrUnknownStatus = errors.New("unknown order status")

// Stages returns the fulfilment sequence in display order.
func Stages() []Status {
	return []Status{StatusPlaced, StatusPreparing, StatusOutForDelivery, StatusDelivered}
}

// ParseStatus normalises external status labels into a Status.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "placed", "order placed":
		return StatusPlaced, nil
	case "preparing", "being prepared":
		return StatusPreparing, nil
	case "out_for_delivery", "out-for-delivery", "out for delivery":
		return StatusOutForDelivery, nil
	case "delivered":
		return StatusDelivered, nil
	}
	return "", ErrUnknownStatus
}

// Next returns the stage after s, or s itself when Delivered is reached;
// the sequence is linear with a terminal end.
func (s Status) Next() (Status, error) {
	stages := Stages()
	for i, stage := range stages {
		if stage == s {
			if i == len(stages)-1 {
				return s, nil
			}
			return stages[i+1], nil
		}
	}
	return "", ErrUnknownStatus
}

// StageState classifies one stage relative to the current status.
type StageState string

const (
	StageCompleted StageState = "completed"
	StageActive    StageState = "active"
	StagePending   StageState = "pending"
)

// StageProgress pairs a stage with its positional classification.
type StageProgress struct {
	Stage Status     `json:"stage"`
	State StageState `json:"state"`
}

// Classify maps the current status onto the fixed sequence: stages before it
// are completed, the stage itself is active, later stages are pending.
// Delivered is active with nothing after it.
func Classify(current Status) ([]StageProgress, error) {
	stages := Stages()
	index := -1
	for i, stage := range stages {
		if stage == current {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrUnknownStatus
	}
	out := make([]StageProgress, len(stages))
	for i, stage := range stages {
		state := StagePending
		switch {
		case i < index:
			state = StageCompleted
		case i == index:
			state = StageActive
		}
		out[i] = StageProgress{Stage: stage, State: state}
	}
	return out, nil
}
