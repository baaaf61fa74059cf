// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoStore)
	assert.Contains(t, err.Error(), "WithStore")

	assert.PanicsWithError(t, ErrNoStore.Error(), func() {
		MustFromContext(context.Background())
	})

	s, err := Open(context.Background(), newFakeStorage())
	require.NoError(t, err)
	defer s.Close()

	ctx := WithStore(context.Background(), s)
	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Same(t, s, MustFromContext(ctx))
}
