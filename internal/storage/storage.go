package storage

import "swapCore/internal/model"

// Journal defines a sink for transition receipts.
type Journal interface {
	Append(rec model.TransitionRecord) error
}
