package app

import (
	"context"
	"testing"

	"github.com/dkeye/Relay/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSessions_Bind_Get_Cancel_Unbind(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sig := mocks.NewMockSignalConnection(ctrl)
	sessions := NewSessions()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Given a bound connection
	sessions.Bind("c1", "client-1", sig, cancel)
	req.Equal(1, sessions.Len())

	sess, ok := sessions.Get("c1")
	req.True(ok)
	req.Equal("client-1", sess.Client)
	req.Equal(sig, sess.Signal)

	// When it is cancelled, its context is done
	req.True(sessions.Cancel("c1"))
	req.ErrorIs(ctx.Err(), context.Canceled)

	// And unknown connections are reported
	req.False(sessions.Cancel("nope"))

	sessions.Unbind("c1")
	_, ok = sessions.Get("c1")
	req.False(ok)
	req.Zero(sessions.Len())
}
