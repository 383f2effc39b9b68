package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestRunSessionJanitor(t *testing.T) {
	sessions := new(mockSessionRepo)
	ctx, cancel := context.WithCancel(context.Background())

	called := make(chan struct{}, 1)
	sessions.On("CleanExpiredSessions", mock.Anything).Return(int64(2), nil).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	done := make(chan struct{})
	go func() {
		RunSessionJanitor(ctx, sessions, 10*time.Millisecond, zap.NewNop())
		close(done)
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("janitor never ran")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
