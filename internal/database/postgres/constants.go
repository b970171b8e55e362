package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised when a CHECK constraint rejects a row
	PgErrorCodeCheckViolation = "23514"
	// PgErrorCodeSerializationFailure is raised when a SERIALIZABLE transaction loses a race
	PgErrorCodeSerializationFailure = "40001"
	// PgErrorCodeDeadlockDetected is raised when Postgres aborts one side of a deadlock
	PgErrorCodeDeadlockDetected = "40P01"
)

// Constraint names referenced from the migrations
const (
	ConstraintBalanceNonNegative = "accounts_balance_non_negative"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Account Operations
const (
	ErrMsgFailedToInsertAccount = "failed to insert account"
	ErrMsgFailedToGetAccount    = "failed to get account"
	ErrMsgFailedToLockAccount   = "failed to lock account"
	ErrMsgFailedToDeleteAccount = "failed to delete account"
	ErrMsgFailedToDeductBalance = "failed to deduct balance"
	ErrMsgFailedToChangeBalance = "failed to change balance"
	ErrMsgFailedToUpdateClaim   = "failed to update claim"
)

// Error Messages - Item Operations
const (
	ErrMsgFailedToCountItems       = "failed to count items"
	ErrMsgFailedToInsertItem       = "failed to insert item"
	ErrMsgFailedToRemoveItem       = "failed to remove item"
	ErrMsgFailedToGetItem          = "failed to get item"
	ErrMsgFailedToReplaceItem      = "failed to replace item"
	ErrMsgFailedToListItems        = "failed to list items"
	ErrMsgFailedToMarshalDetails   = "failed to marshal item details"
	ErrMsgFailedToUnmarshalDetails = "failed to unmarshal item details"
)

// Error Messages - Settlement Operations
const (
	ErrMsgFailedToInsertSettlement   = "failed to insert settlement"
	ErrMsgFailedToGetSettlement      = "failed to get settlement"
	ErrMsgFailedToListSettlements    = "failed to list open settlements"
	ErrMsgFailedToFinalizeSettlement = "failed to finalize settlement"
)
