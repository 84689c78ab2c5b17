package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wedding-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxListLimit     = 200
	DefaultListLimit = 20

	cursorVersion = "v1"
)

// Cursor is the opaque page token handed to clients.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// Keyset is the position after which a page starts, newest first.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode uses microsecond precision to align with PostgreSQL timestamps.
func (k Keyset) Encode() string {
	raw := fmt.Sprintf("%s:%d:%s", cursorVersion, k.CreatedAt.UnixMicro(), k.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeKeyset(token string) (Keyset, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Keyset{}, errs.Wrap(ErrInvalidCursor, "cursor is not base64url")
	}

	parts := strings.SplitN(string(raw), ":", 3)
	if len(parts) != 3 || parts[0] != cursorVersion {
		return Keyset{}, errs.Wrap(ErrInvalidCursor, "unknown cursor format")
	}

	micros, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Keyset{}, errs.Wrap(ErrInvalidCursor, "cursor timestamp is not a number")
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return Keyset{}, errs.Wrap(ErrInvalidCursor, "cursor id is not a uuid")
	}

	return Keyset{CreatedAt: time.UnixMicro(micros).UTC(), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
