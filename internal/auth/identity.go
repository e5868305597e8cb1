package auth

import (
	"context"
	"fmt"

	"github.com/openama/askfeed/pkg/ctxutil"
)

// Authenticate verifies the token and returns a context carrying the
// user ID. An empty token returns the context unchanged: the caller
// stays anonymous.
func (v *TokenVerifier) Authenticate(ctx context.Context, token string) (context.Context, error) {
	if token == "" {
		return ctx, nil
	}
	userID, err := v.Verify(token)
	if err != nil {
		return ctx, fmt.Errorf("authenticate: %w", err)
	}
	return ctxutil.WithUserID(ctx, userID), nil
}
