package electrum

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"electrumcrawler/domain"

	"github.com/gorilla/websocket"
)

// maxLineSize bounds one newline-delimited message. Peer lists of large servers run to a few hundred KB.
const maxLineSize = 4 << 20

// rpcConn carries whole JSON-RPC messages.
type rpcConn interface {
	WriteMessage(msg []byte) error
	ReadMessage() ([]byte, error)
	SetDeadline(t time.Time) error
	Close() error
}

// streamConn frames messages with '\n' over a tcp or tls stream.
type streamConn struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (c *streamConn) WriteMessage(msg []byte) error {
	_, err := c.conn.Write(append(msg, '\n'))
	return err
}

func (c *streamConn) ReadMessage() ([]byte, error) {
	var line []byte
	for {
		chunk, isPrefix, err := c.reader.ReadLine()
		if err != nil {
			return nil, err
		}
		line = append(line, chunk...)
		if len(line) > maxLineSize {
			return nil, fmt.Errorf("message exceeds %d bytes", maxLineSize)
		}
		if !isPrefix {
			return line, nil
		}
	}
}

func (c *streamConn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

func (c *streamConn) Close() error {
	return c.conn.Close()
}

// wsConn carries one message per websocket text frame.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) WriteMessage(msg []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	_, msg, err := c.conn.ReadMessage()
	return msg, err
}

func (c *wsConn) SetDeadline(t time.Time) error {
	if err := c.conn.SetReadDeadline(t); err != nil {
		return err
	}
	return c.conn.SetWriteDeadline(t)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// dialer opens an rpcConn for each transport kind.
type dialer struct {
	net       *net.Dialer
	tlsConfig *tls.Config
	ws        *websocket.Dialer
}

func newDialer(dialTimeout time.Duration) *dialer {
	netDialer := &net.Dialer{Timeout: dialTimeout}
	// Servers commonly run with self-signed certificates.
	tlsConfig := &tls.Config{InsecureSkipVerify: true}
	return &dialer{
		net:       netDialer,
		tlsConfig: tlsConfig,
		ws: &websocket.Dialer{
			NetDialContext:   netDialer.DialContext,
			HandshakeTimeout: dialTimeout,
			TLSClientConfig:  tlsConfig,
			ReadBufferSize:   64 << 10,
			WriteBufferSize:  4 << 10,
		},
	}
}

func (d *dialer) dial(ctx context.Context, target domain.Target) (rpcConn, error) {
	switch target.Transport {
	case domain.TransportTCP:
		conn, err := d.net.DialContext(ctx, "tcp", target.Addr())
		if err != nil {
			return nil, err
		}
		return &streamConn{conn: conn, reader: bufio.NewReaderSize(conn, 64<<10)}, nil

	case domain.TransportSSL:
		tlsDialer := &tls.Dialer{NetDialer: d.net, Config: d.tlsConfig}
		conn, err := tlsDialer.DialContext(ctx, "tcp", target.Addr())
		if err != nil {
			return nil, err
		}
		return &streamConn{conn: conn, reader: bufio.NewReaderSize(conn, 64<<10)}, nil

	case domain.TransportWS, domain.TransportWSS:
		u := url.URL{Scheme: string(target.Transport), Host: net.JoinHostPort(target.Host, strconv.Itoa(target.Port)), Path: "/"}
		conn, resp, err := d.ws.DialContext(ctx, u.String(), nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			return nil, err
		}
		conn.SetReadLimit(maxLineSize)
		return &wsConn{conn: conn}, nil

	default:
		return nil, fmt.Errorf("unsupported transport '%s'", target.Transport)
	}
}
