package postgres

import "github.com/pkg/errors"

// ErrNotFound is returned by repositories when a required row is absent.
// Controllers decide the caller-facing message and status.
var ErrNotFound = errors.New("row not found")
