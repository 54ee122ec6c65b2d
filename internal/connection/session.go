package connection

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// Session is a raw FTP control connection. Unlike FTPConnection it can send
// arbitrary commands, so SITE parameters apply to the transfers that follow
// on the same session.
type Session struct {
	conn   net.Conn
	reader *bufio.Reader
}

// DialSession connects to addr and logs in.
func DialSession(ctx context.Context, addr, user, password string) (*Session, error) {
	d := net.Dialer{Timeout: ftpTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	s := &Session{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}

	if _, err := s.readResponse(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("no greeting from %s: %w", addr, err)
	}

	if err := s.cmd("USER %s", user); err != nil {
		conn.Close()
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := s.cmd("PASS %s", password); err != nil {
		conn.Close()
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s, nil
}

func (s *Session) Close() error {
	s.send("QUIT")
	return s.conn.Close()
}

// Quote sends command verbatim and returns the server reply.
func (s *Session) Quote(command string) (string, error) {
	return s.cmdResp("%s", command)
}

// SetBinary switches between TYPE I and TYPE A.
func (s *Session) SetBinary(binary bool) error {
	if binary {
		if err := s.cmd("TYPE I"); err != nil {
			return fmt.Errorf("failed to set binary mode: %w", err)
		}
		return nil
	}
	if err := s.cmd("TYPE A"); err != nil {
		return fmt.Errorf("failed to set ASCII mode: %w", err)
	}
	return nil
}

func (s *Session) ChangeDir(dir string) error {
	if err := s.cmd("CWD %s", dir); err != nil {
		return fmt.Errorf("failed to access %s: %w", dir, err)
	}
	return nil
}

// NameList returns the non-blank names reported by NLST.
func (s *Session) NameList(ctx context.Context, arg string) ([]string, error) {
	var names []string
	err := s.transfer(ctx, "NLST", arg, func(r io.Reader) error {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if name := strings.TrimSpace(scanner.Text()); name != "" {
				names = append(names, name)
			}
		}
		return scanner.Err()
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Retrieve issues RETR path and hands the data connection to fn. The
// transfer fails when no data arrives for ftpTimeout or ctx is done.
func (s *Session) Retrieve(ctx context.Context, path string, fn func(io.Reader) error) error {
	return s.transfer(ctx, "RETR", path, fn)
}

func (s *Session) transfer(ctx context.Context, cmd, arg string, fn func(io.Reader) error) error {
	pasvResp, err := s.cmdResp("PASV")
	if err != nil {
		return err
	}

	dataAddr, err := parsePASV(pasvResp)
	if err != nil {
		return err
	}

	d := net.Dialer{Timeout: ftpTimeout}
	dataConn, err := d.DialContext(ctx, "tcp", dataAddr)
	if err != nil {
		return fmt.Errorf("failed to connect data channel: %w", err)
	}
	defer dataConn.Close()

	// closing the data connection unblocks a read in progress
	stop := context.AfterFunc(ctx, func() { dataConn.Close() })
	defer stop()

	if arg != "" {
		err = s.send("%s %s", cmd, arg)
	} else {
		err = s.send("%s", cmd)
	}
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", cmd, err)
	}

	resp, err := s.readResponse()
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", cmd, arg, err)
	}
	if !strings.HasPrefix(resp, "125") && !strings.HasPrefix(resp, "150") {
		return fmt.Errorf("%s %s failed: %s", cmd, arg, resp)
	}

	fnErr := fn(&idleReader{conn: dataConn, timeout: ftpTimeout})
	dataConn.Close()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s %s interrupted: %w", cmd, arg, err)
	}

	if _, err := s.readResponse(); err != nil {
		if fnErr != nil {
			return fnErr
		}
		return fmt.Errorf("%s %s did not complete: %w", cmd, arg, err)
	}
	if fnErr != nil {
		return fmt.Errorf("failed to read %s data: %w", cmd, fnErr)
	}
	return nil
}

func (s *Session) cmd(format string, args ...interface{}) error {
	_, err := s.cmdResp(format, args...)
	return err
}

func (s *Session) cmdResp(format string, args ...interface{}) (string, error) {
	if err := s.send(format, args...); err != nil {
		return "", err
	}
	return s.readResponse()
}

func (s *Session) send(format string, args ...interface{}) error {
	cmd := fmt.Sprintf(format, args...)
	s.conn.SetWriteDeadline(time.Now().Add(ftpTimeout))
	_, err := fmt.Fprintf(s.conn, "%s\r\n", cmd)
	return err
}

func (s *Session) readResponse() (string, error) {
	s.conn.SetReadDeadline(time.Now().Add(ftpTimeout))
	var resp strings.Builder
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		resp.WriteString(line)
		// Single line response or last line of multi-line
		if len(line) >= 4 && line[3] == ' ' {
			break
		}
	}
	result := strings.TrimSpace(resp.String())
	if len(result) > 0 && (result[0] == '4' || result[0] == '5') {
		return result, fmt.Errorf("ftp error: %s", result)
	}
	return result, nil
}

// idleReader fails a read only when the peer has been silent for timeout,
// however long the whole transfer takes.
type idleReader struct {
	conn    net.Conn
	timeout time.Duration
}

func (r *idleReader) Read(p []byte) (int, error) {
	if err := r.conn.SetReadDeadline(time.Now().Add(r.timeout)); err != nil {
		return 0, err
	}
	return r.conn.Read(p)
}

func parsePASV(resp string) (string, error) {
	// Parse: 227 Entering Passive Mode (h1,h2,h3,h4,p1,p2)
	start := strings.Index(resp, "(")
	end := strings.Index(resp, ")")
	if start == -1 || end == -1 {
		return "", fmt.Errorf("invalid PASV response: %s", resp)
	}

	parts := strings.Split(resp[start+1:end], ",")
	if len(parts) != 6 {
		return "", fmt.Errorf("invalid PASV response: %s", resp)
	}

	host := strings.Join(parts[:4], ".")
	p1, err := strconv.Atoi(strings.TrimSpace(parts[4]))
	if err != nil {
		return "", fmt.Errorf("invalid PASV port: %s", resp)
	}
	p2, err := strconv.Atoi(strings.TrimSpace(parts[5]))
	if err != nil {
		return "", fmt.Errorf("invalid PASV port: %s", resp)
	}
	port := p1*256 + p2

	return fmt.Sprintf("%s:%d", host, port), nil
}
