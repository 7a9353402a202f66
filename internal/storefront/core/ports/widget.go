package ports

import (
	"context"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
)

// Widget opens the third-party checkout widget. The widget later calls
// either opts.Handler or opts.OnDismiss, exactly once, unless it is
// forgotten first.
type Widget interface {
	Open(ctx context.Context, opts entity.WidgetOptions) error
	// Forget drops an open widget without calling either callback.
	Forget(orderID string)
}
