package ipc

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"mediumcheck/internal/resolver"
)

const dialTimeout = 2 * time.Second

// Client provides RPC access to a running server.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Call sends req and waits for the reply or ctx.
func (c *Client) Call(ctx context.Context, req CheckRequest) (resolver.MediumStatus, error) {
	if err := ctx.Err(); err != nil {
		return resolver.MediumStatus{}, err
	}
	var resp CheckResponse
	call := c.client.Go(ServiceName+".Check", req, &resp, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return resolver.MediumStatus{}, ctx.Err()
	case <-call.Done:
	}
	if call.Error != nil {
		return resolver.MediumStatus{}, call.Error
	}
	return resp, nil
}

// Check sends a CHECK_MEDIUM message. Transport failures are reported as a
// failed status.
func (c *Client) Check(ctx context.Context, text string) resolver.MediumStatus {
	status, err := c.Call(ctx, CheckRequest{Type: resolver.MessageTypeCheckMedium, Text: text})
	if err != nil {
		return resolver.Failure(fmt.Errorf("ipc: %w", err))
	}
	return status
}
