package server

import (
	"context"
	"errors"
	"log/slog"

	"example.com/arena/protocol"
	"example.com/arena/session"

	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"
)

var errSessionDone = errors.New("session done")

// Link pumps messages between t and sess until the session ends, the peer
// goes away or ctx is cancelled. Read and write failures are reported to the
// session as a disconnect. The transport is closed on return.
func Link(ctx context.Context, t Transport, sess *session.Session) error {
	sess.Connected()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return readLoop(ctx, t, sess)
	})
	eg.Go(func() error {
		return writeLoop(ctx, t, sess)
	})
	err := eg.Wait()

	if closeErr := t.Close(websocket.StatusNormalClosure, ""); closeErr != nil {
		slog.Debug("close transport", "err", closeErr)
	}
	if errors.Is(err, errSessionDone) {
		return nil
	}
	return err
}

func readLoop(ctx context.Context, t Transport, sess *session.Session) error {
	for {
		data, err := t.Read(ctx)
		if err != nil {
			sess.Disconnect(err)
			return err
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			slog.WarnContext(ctx, "dropping peer message", "err", err, "len", len(data))
			continue
		}
		sess.Deliver(msg)
	}
}

func writeLoop(ctx context.Context, t Transport, sess *session.Session) error {
	outbox := sess.Outbox()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-outbox:
			if err := write(ctx, t, msg); err != nil {
				sess.Disconnect(err)
				return err
			}
		case <-sess.Done():
			for len(outbox) > 0 {
				if err := write(ctx, t, <-outbox); err != nil {
					return err
				}
			}
			return errSessionDone
		}
	}
}

func write(ctx context.Context, t Transport, msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		slog.ErrorContext(ctx, "encode message", "tag", msg.Tag(), "err", err)
		return nil
	}
	return t.Write(ctx, data)
}
