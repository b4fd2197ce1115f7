package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidToken is returned when a page token cannot be decoded.
var ErrInvalidToken = errors.New("invalid pagination token")

// EncodeToken creates a base64 encoded cursor for the page starting at offset.
// afterID is the ID of the last item already returned, so a cursor for a log
// that has since changed can be detected.
func EncodeToken(offset int, afterID string) string {
	tokenStr := fmt.Sprintf("%d|%s", offset, afterID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (int, string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, "", fmt.Errorf("%w (base64 decode): %v", ErrInvalidToken, err)
	}

	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("%w (split)", ErrInvalidToken)
	}

	offset, err := strconv.Atoi(parts[0])
	if err != nil || offset <= 0 {
		return 0, "", fmt.Errorf("%w (offset %q)", ErrInvalidToken, parts[0])
	}
	if parts[1] == "" {
		return 0, "", fmt.Errorf("%w (missing item id)", ErrInvalidToken)
	}

	return offset, parts[1], nil
}

// Window returns the bounds of the page of at most limit items after the
// cursor in token, over items identified by idAt. A zero limit means no limit.
// next is empty on the last page.
func Window(total, limit int, token string, idAt func(int) string) (start, end int, next string, err error) {
	if token != "" {
		offset, afterID, err := DecodeToken(token)
		if err != nil {
			return 0, 0, "", err
		}
		if offset > total || idAt(offset-1) != afterID {
			return 0, 0, "", fmt.Errorf("%w (stale cursor)", ErrInvalidToken)
		}
		start = offset
	}

	end = total
	if limit > 0 && start+limit < total {
		end = start + limit
		next = EncodeToken(end, idAt(end-1))
	}
	return start, end, next, nil
}
