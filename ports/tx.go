package ports

import "context"

// TxRunner executes fn inside a single database transaction. The transaction
// travels on the context; repository methods called with that context join it.
// Start/Break/End use this so the status check, event append and session
// update commit or roll back as one unit.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
