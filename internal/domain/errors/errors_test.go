package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	err := ErrTrekNameRequired.WithDetails("name was blank")

	assert.True(t, errors.Is(err, ErrTrekNameRequired))
	assert.False(t, errors.Is(err, ErrEmptyMessage))
	assert.Equal(t, "name was blank", err.Details())
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrUnauthenticated.WrapMessage("plan trek")

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UNAUTHENTICATED", appErr.ErrorCode())
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestPartialWriteError(t *testing.T) {
	cause := errors.New("deadline exceeded")

	t.Run("rolled back", func(t *testing.T) {
		err := error(&PartialWriteError{Collection: "destinations", DocumentID: "d1", RolledBack: true, Cause: cause})

		assert.True(t, errors.Is(err, ErrPartialWrite))
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "rolled back")

		var appErr AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, "PARTIAL_WRITE", appErr.ErrorCode())
		assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	})

	t.Run("left behind", func(t *testing.T) {
		rollback := errors.New("permission denied")
		err := &PartialWriteError{Collection: "destinations", DocumentID: "d1", Cause: cause, Rollback: rollback}

		assert.Contains(t, err.Error(), "left destinations/d1 behind")
		assert.Equal(t, "rollback failed: permission denied", err.Details())
		assert.Equal(t, "Trek was only partially saved", err.Message())
	})
}
