package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		kind  string
	}{
		{
			name:  "no rows maps to not found",
			err:   pgx.ErrNoRows,
			check: IsNotFound,
			kind:  "NotFound",
		},
		{
			name:  "unique violation maps to duplicate key",
			err:   &pgconn.PgError{Code: "23505", ConstraintName: "videos_youtube_id_key"},
			check: IsDuplicateKey,
			kind:  "DuplicateKey",
		},
		{
			name:  "foreign key violation maps to not found",
			err:   &pgconn.PgError{Code: "23503", ConstraintName: "historial_video_id_fkey"},
			check: IsNotFound,
			kind:  "NotFound",
		},
		{
			name:  "not null violation maps to invalid argument",
			err:   &pgconn.PgError{Code: "23502", Message: "null value in column \"titulo\""},
			check: IsInvalidArgument,
			kind:  "InvalidArgument",
		},
		{
			name:  "check violation maps to invalid argument",
			err:   &pgconn.PgError{Code: "23514", Message: "videos_vistas_check"},
			check: IsInvalidArgument,
			kind:  "InvalidArgument",
		},
		{
			name:  "data exception maps to invalid argument",
			err:   &pgconn.PgError{Code: "22P02", Message: "invalid input syntax"},
			check: IsInvalidArgument,
			kind:  "InvalidArgument",
		},
		{
			name:  "admin shutdown maps to store unavailable",
			err:   &pgconn.PgError{Code: "57P01"},
			check: IsStoreUnavailable,
			kind:  "StoreUnavailable",
		},
		{
			name:  "connection failure maps to store unavailable",
			err:   errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			check: IsStoreUnavailable,
			kind:  "StoreUnavailable",
		},
		{
			name:  "already classified error keeps its kind",
			err:   fmt.Errorf("inner: %w", ErrDuplicateKey),
			check: IsDuplicateKey,
			kind:  "DuplicateKey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapError(tt.err, "create video")
			assert.Error(t, wrapped)
			assert.True(t, tt.check(wrapped), "unexpected classification: %v", wrapped)
			assert.Equal(t, tt.kind, Kind(wrapped))
			assert.Contains(t, wrapped.Error(), "create video")
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "anything"))
}

func TestWrapError_PreservesCause(t *testing.T) {
	wrapped := WrapError(context.DeadlineExceeded, "get stats")
	assert.True(t, IsStoreUnavailable(wrapped))
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
}

func TestBlockedContentIsInvalidArgument(t *testing.T) {
	err := fmt.Errorf("create video: %w (term: %q)", ErrBlockedContent, "tarot")
	assert.True(t, IsBlockedContent(err))
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, "InvalidArgument", Kind(err))
}

func TestKind_Unclassified(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "Internal", Kind(errors.New("boom")))
}
