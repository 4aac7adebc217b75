package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicate is returned when an insert hits a unique index. The unique
// indexes (trials.anonId, assessments (anonId, phase), classes.code) are the
// race-breakers for concurrent writes; callers translate this into their own
// conflict semantics.
var ErrDuplicate = errors.New("duplicate key")

// ErrNotFound is returned by updates that matched no document
var ErrNotFound = errors.New("not found")

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
