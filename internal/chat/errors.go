package chat

import "errors"

var (
	// ErrEmptyMessage rejects submissions whose content is empty after
	// sanitization and trimming.
	ErrEmptyMessage = errors.New("chat: message content is empty")

	// ErrUnauthenticated rejects submissions with no resolvable sender.
	ErrUnauthenticated = errors.New("chat: sender identity required")
)
