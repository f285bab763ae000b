package agent

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lucheng0127/lightremote/internal/command"
	"github.com/lucheng0127/lightremote/internal/light"
)

func newTestDispatcher(t *testing.T, out *bytes.Buffer) *Dispatcher {
	t.Helper()

	l := light.NewLight("", out)
	d := NewDispatcher(zaptest.NewLogger(t))
	d.Register(command.NewTurnOnCommand(l))
	d.Register(command.NewTurnOffCommand(l))
	return d
}

func TestDispatcherCommands(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(t, &out)

	assert.Equal(t, []string{command.TurnOffName, command.TurnOnName}, d.Commands())
}

func TestDispatcherPress(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(t, &out)

	require.NoError(t, d.Press(context.Background(), command.TurnOnName))
	require.NoError(t, d.Press(context.Background(), command.TurnOffName))

	assert.Equal(t, "Light is ON.\nLight is OFF.\n", out.String())
}

func TestDispatcherPressUnknown(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(t, &out)

	err := d.Press(context.Background(), "dim")

	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Empty(t, out.String())
}

func TestDispatcherPressCanceledContext(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(t, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, d.Press(ctx, command.TurnOnName), context.Canceled)
	assert.Empty(t, out.String())
}

func TestDispatcherDispatch(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(t, &out)

	name, err := d.Dispatch(context.Background(), []byte(`{"command":"turn_on"}`))

	require.NoError(t, err)
	assert.Equal(t, command.TurnOnName, name)
	assert.Equal(t, "Light is ON.\n", out.String())
}

func TestDispatcherDispatchInvalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "malformed json", payload: `{"command":`, wantErr: ErrInvalidMessage},
		{name: "missing command", payload: `{}`, wantErr: ErrInvalidMessage},
		{name: "unknown command", payload: `{"command":"dim"}`, wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			d := newTestDispatcher(t, &out)

			_, err := d.Dispatch(context.Background(), []byte(tt.payload))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out.String())
		})
	}
}

func TestDispatcherOnExecuted(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(t, &out)

	var executed []string
	d.OnExecuted(func(name string) {
		executed = append(executed, name)
	})

	require.NoError(t, d.Press(context.Background(), command.TurnOnName))
	require.Error(t, d.Press(context.Background(), "dim"))

	assert.Equal(t, []string{command.TurnOnName}, executed)
}

func TestDispatcherConcurrentPress(t *testing.T) {
	var out lockedBuffer
	l := light.NewLight("", &out)
	d := NewDispatcher(zaptest.NewLogger(t))
	d.Register(command.NewTurnOnCommand(l))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Press(context.Background(), command.TurnOnName))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(out.String(), "Light is ON.\n"))
}

func TestDispatcherNilLogger(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(nil)

	require.NotPanics(t, func() {
		d.Register(command.NewTurnOnCommand(light.NewLight("", &out)))
	})
	require.NoError(t, d.Press(context.Background(), command.TurnOnName))
	assert.Equal(t, "Light is ON.\n", out.String())
}

func TestDispatcherSlowCallbackDoesNotBlock(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(t, &out)

	entered := make(chan struct{})
	release := make(chan struct{})
	d.OnExecuted(func(name string) {
		close(entered)
		<-release
	})

	pressDone := make(chan error, 1)
	go func() {
		pressDone <- d.Press(context.Background(), command.TurnOnName)
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("executed callback was not called")
	}

	commandsDone := make(chan []string, 1)
	go func() {
		commandsDone <- d.Commands()
	}()

	select {
	case names := <-commandsDone:
		assert.Equal(t, []string{command.TurnOffName, command.TurnOnName}, names)
	case <-time.After(5 * time.Second):
		t.Fatal("Commands blocked while executed callback was running")
	}

	close(release)
	require.NoError(t, <-pressDone)
}
