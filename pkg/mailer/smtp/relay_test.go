package smtp

import (
	"context"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/massmail/pkg/mailer"
	"github.com/dmitrymomot/massmail/pkg/recipient"
)

// testRelay is a minimal in-process SMTP server. Like Postfix it keeps a
// transaction open after a refused RCPT and answers a second MAIL with 503.
type testRelay struct {
	ln     net.Listener
	reject map[string]bool

	mu        sync.Mutex
	conns     int
	nested    int
	delivered []string
}

func startTestRelay(t *testing.T, reject ...string) *testRelay {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	r := &testRelay{ln: ln, reject: make(map[string]bool)}
	for _, addr := range reject {
		r.reject[addr] = true
	}
	go r.serve()
	return r
}

func (r *testRelay) port() int { return r.ln.Addr().(*net.TCPAddr).Port }

func (r *testRelay) serve() {
	for {
		c, err := r.ln.Accept()
		if err != nil {
			return
		}
		r.mu.Lock()
		r.conns++
		r.mu.Unlock()
		go r.handle(c)
	}
}

func (r *testRelay) handle(c net.Conn) {
	defer c.Close()
	_ = c.SetDeadline(time.Now().Add(10 * time.Second))

	tp := textproto.NewConn(c)
	reply := func(line string) { _ = tp.PrintfLine("%s", line) }

	reply("220 relay.test ESMTP")
	var (
		open  bool
		rcpts []string
	)
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb, arg, _ := strings.Cut(line, " ")
		switch strings.ToUpper(verb) {
		case "EHLO", "HELO":
			reply("250 relay.test")
		case "MAIL":
			if open {
				r.mu.Lock()
				r.nested++
				r.mu.Unlock()
				reply("503 5.5.1 Error: nested MAIL command")
				continue
			}
			open, rcpts = true, nil
			reply("250 2.1.0 Ok")
		case "RCPT":
			addr := strings.Trim(strings.TrimPrefix(arg, "TO:"), "<>")
			if r.reject[addr] {
				reply("550 5.1.1 user unknown")
				continue
			}
			rcpts = append(rcpts, addr)
			reply("250 2.1.5 Ok")
		case "DATA":
			if len(rcpts) == 0 {
				reply("554 5.5.1 Error: no valid recipients")
				continue
			}
			reply("354 End data with <CR><LF>.<CR><LF>")
			if _, err := tp.ReadDotLines(); err != nil {
				return
			}
			r.mu.Lock()
			r.delivered = append(r.delivered, rcpts...)
			r.mu.Unlock()
			open, rcpts = false, nil
			reply("250 2.0.0 Ok: queued")
		case "RSET":
			open, rcpts = false, nil
			reply("250 2.0.0 Ok")
		case "QUIT":
			reply("221 2.0.0 Bye")
			return
		default:
			reply("502 5.5.2 Error: command not recognized")
		}
	}
}

func (r *testRelay) stats() (conns, nested int, delivered []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conns, r.nested, append([]string(nil), r.delivered...)
}

func TestSendAll_RejectedRecipientDoesNotBlockLaterOnes(t *testing.T) {
	t.Parallel()

	relay := startTestRelay(t, "bad@example.com")
	tr := New(Config{
		Host:    "127.0.0.1",
		Port:    relay.port(),
		From:    "News <news@example.com>",
		Timeout: 5 * time.Second,
	})

	set := recipient.Set{
		{Email: "a@example.com"},
		{Email: "bad@example.com"},
		{Email: "c@example.com"},
		{Email: "d@example.com"},
	}
	report, err := mailer.SendAll(context.Background(), tr, set,
		mailer.MessageTemplate{Subject: "Hi", Body: "Hello {first_name}"}, mailer.WithDelay(0))

	require.ErrorIs(t, err, mailer.ErrPartialFailure)
	require.Equal(t, 3, report.Sent)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "bad@example.com", report.Failures[0].Email)
	require.Contains(t, report.Failures[0].Reason, "550 5.1.1 user unknown")

	conns, nested, delivered := relay.stats()
	require.Zero(t, nested)
	require.Equal(t, 2, conns)
	require.Equal(t, []string{"a@example.com", "c@example.com", "d@example.com"}, delivered)
}
