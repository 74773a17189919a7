package audit

import "context"

// Repository is the audit sink. Record must complete before the calling
// lifecycle step is considered done; it is not fire-and-forget.
type Repository interface {
	Record(ctx context.Context, entry Entry) error
}
