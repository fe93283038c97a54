package inventory

import "errors"

// ErrInvalidItem guards the stored-record invariants (positive qty, known unit,
// valid expiry date).
var ErrInvalidItem = errors.New("invalid inventory item")
