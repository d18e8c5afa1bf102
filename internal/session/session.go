package session

import "errors"

var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"
