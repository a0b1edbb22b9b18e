package interfaces

import "errors"

// Errors adapters return so use cases can tell storage outcomes apart without
// knowing the backend.
var (
	ErrPaymentVersionConflict = errors.New("payment version conflict")
	ErrDuplicateIntent        = errors.New("payment already exists for intent")
	ErrLedgerCampaignNotFound = errors.New("campaign not found in ledger")
	ErrCampaignAlreadyExists  = errors.New("campaign already exists")
)
