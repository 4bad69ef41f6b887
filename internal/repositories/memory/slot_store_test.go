package memory

import (
	"context"
	"testing"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStore(t *testing.T) {
	ctx := context.Background()
	s := NewSlotStore()

	_, err := s.Load(ctx, "goats")
	assert.ErrorIs(t, err, apperrors.ErrSlotAbsent)

	payload := []byte(`[{"id":"K001"}]`)
	require.NoError(t, s.Save(ctx, "goats", payload))
	payload[2] = 'X'

	got, err := s.Load(ctx, "goats")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"K001"}]`, string(got))

	got[2] = 'Y'
	again, _ := s.Load(ctx, "goats")
	assert.Equal(t, `[{"id":"K001"}]`, string(again))

	require.NoError(t, s.Delete(ctx, "goats"))
	require.NoError(t, s.Delete(ctx, "goats"))
	_, err = s.Load(ctx, "goats")
	assert.ErrorIs(t, err, apperrors.ErrSlotAbsent)
}
