package drop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/domain"
)

func TestControlID_RoundTrip(t *testing.T) {
	id := NewControlID(domain.GameReason, "steal", "m123")
	assert.Equal(t, "reason:steal:m123", id.String())

	got, err := ParseControlID(id.String())
	require.NoError(t, err)
	assert.Equal(t, domain.GameReason, got.Game)
	assert.Equal(t, "steal", got.Action)
	assert.Equal(t, "m123", got.Arg(0))
	assert.Equal(t, "", got.Arg(5))
}

func TestParseControlID_Invalid(t *testing.T) {
	for _, s := range []string{"", "reason", ":steal", "reason:"} {
		_, err := ParseControlID(s)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, s)
	}
}

func TestPagerButtons(t *testing.T) {
	ref := PageRef{Game: domain.GameModel, View: "bag", Owner: "u1", Target: "u2", Index: 0}
	buttons := PagerButtons(ref, false, true)
	require.Len(t, buttons, 2)

	assert.True(t, buttons[0].Disabled)
	assert.False(t, buttons[1].Disabled)
	assert.NotEqual(t, buttons[0].ID, buttons[1].ID)

	c, err := ParseControlID(buttons[1].ID)
	require.NoError(t, err)
	next, err := ParsePageRef(c)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Index)
	assert.Equal(t, "u1", next.Owner)
	assert.Equal(t, "u2", next.Target)
	assert.Equal(t, "bag", next.View)

	c, err = ParseControlID(buttons[0].ID)
	require.NoError(t, err)
	_, err = ParsePageRef(c)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "disabled buttons do not decode to a page")
}
