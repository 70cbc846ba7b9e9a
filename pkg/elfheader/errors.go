package elfheader

import (
	"errors"
	"fmt"
)

// ErrInvalidFile is returned when the buffer is too short for the header of
// its class, or when EI_CLASS or EI_DATA hold a value that cannot be decoded.
var ErrInvalidFile = errors.New("invalid ELF file")

// InvalidMagicError reports a buffer that does not start with "\x7fELF".
type InvalidMagicError struct {
	Magic [4]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("invalid ELF magic: % x", e.Magic[:])
}
