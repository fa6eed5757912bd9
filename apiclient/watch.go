package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tiggercwh/go-dice/gameModel"
)

func (c *Client) wsURL() (string, error) {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return "", err
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.String(), nil
}

// WatchStats subscribes to the server stats feed and calls fn for every
// snapshot until ctx is cancelled or the connection drops.
func (c *Client) WatchStats(ctx context.Context, fn func(*gameModel.Stats)) error {
	target, err := c.wsURL()
	if err != nil {
		return err
	}
	header := http.Header{}
	header.Set(RequestIDHeader, uuid.NewString())
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var stats gameModel.Stats
		if err := conn.ReadJSON(&stats); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure {
				return nil
			}
			return err
		}
		fn(&stats)
	}
}
