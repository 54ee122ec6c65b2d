package connection

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

const ftpTimeout = 30 * time.Second

// FTPConnection browses the z/OS catalog with jlaffaye/ftp.
type FTPConnection struct {
	host     string
	port     int
	user     string
	password string
	conn     *ftp.ServerConn

	// z/OS member listings do not parse as unix LIST output, so the raw
	// protocol trace is kept and parsed instead.
	debug bytes.Buffer
}

func NewFTPConnection(host string, port int, user, password string) *FTPConnection {
	return &FTPConnection{
		host:     host,
		port:     port,
		user:     user,
		password: password,
	}
}

func (f *FTPConnection) Connect(ctx context.Context) error {
	addr := JoinAddress(f.host, f.port)

	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(ftpTimeout),
		ftp.DialWithDebugOutput(&f.debug),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	if err := conn.Login(f.user, f.password); err != nil {
		conn.Quit()
		return fmt.Errorf("login failed: %w", err)
	}

	f.conn = conn
	return nil
}

func (f *FTPConnection) Close() error {
	if f.conn != nil {
		if err := f.conn.Quit(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
		f.conn = nil
	}
	return nil
}

func (f *FTPConnection) ListDatasets(hlq string) ([]string, error) {
	if f.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	// z/OS FTP: list datasets matching pattern (e.g., 'USERNAME.*')
	query := fmt.Sprintf("'%s.*'", strings.Trim(hlq, "'"))
	entries, err := f.conn.NameList(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	var datasets []string
	for _, e := range entries {
		name := strings.TrimSpace(e)
		if name != "" {
			datasets = append(datasets, name)
		}
	}
	return datasets, nil
}

func (f *FTPConnection) ListMembers(dataset string) ([]Member, error) {
	if f.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	dsn := strings.Trim(dataset, "'")
	if err := f.conn.ChangeDir(fmt.Sprintf("'%s'", dsn)); err != nil {
		return nil, fmt.Errorf("failed to access dataset %s: %w", dsn, err)
	}

	f.debug.Reset()
	// The listing fails to parse, but the trace holds the raw lines.
	f.conn.List("")

	return parseMemberListFromDebug(f.debug.String())
}

func parseMemberListFromDebug(debug string) ([]Member, error) {
	var members []Member
	lines := strings.Split(debug, "\n")

	inList := false
	for _, line := range lines {
		// Look for lines after "125 List started" until "250 List completed"
		if strings.Contains(line, "125 List started") {
			inList = true
			continue
		}
		if strings.Contains(line, "250 List completed") {
			break
		}
		if !inList {
			continue
		}

		// Skip header line
		if strings.Contains(line, "Name") && strings.Contains(line, "VV.MM") {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		member := parseMemberLine(line)
		if member.Name != "" {
			members = append(members, member)
		}
	}

	return members, nil
}

func parseMemberLine(line string) Member {
	// Format: Name     VV.MM   Created       Changed      Size  Init   Mod   Id
	// Example: HSISAPIE  01.82 2024/04/16 2025/12/10 20:18     5    27     0 FALZONE
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return Member{}
	}

	m := Member{Name: fields[0]}

	if vvmm := strings.Split(fields[1], "."); len(vvmm) == 2 {
		m.VV, _ = strconv.Atoi(vvmm[0])
		m.MM, _ = strconv.Atoi(vvmm[1])
	}

	m.Created = fields[2]
	m.Changed = fields[3] + " " + fields[4]
	m.Size, _ = strconv.Atoi(fields[5])
	m.Init, _ = strconv.Atoi(fields[6])
	m.Mod, _ = strconv.Atoi(fields[7])
	if len(fields) >= 9 {
		m.User = fields[8]
	}

	return m
}

var _ Catalog = (*FTPConnection)(nil)
