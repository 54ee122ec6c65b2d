package connection

import "testing"

func TestParseAddress(t *testing.T) {
	tests := []struct {
		input    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{input: "zos.example.com", wantHost: "zos.example.com", wantPort: 21},
		{input: "zos.example.com:2121", wantHost: "zos.example.com", wantPort: 2121},
		{input: "ftp://zos.example.com:990/", wantHost: "zos.example.com", wantPort: 990},
		{input: " 10.1.1.5 ", wantHost: "10.1.1.5", wantPort: 21},
		{input: "[::1]:21", wantHost: "::1", wantPort: 21},
		{input: "", wantErr: true},
		{input: ":21", wantErr: true},
		{input: "zos.example.com:ftp", wantErr: true},
		{input: "zos.example.com:70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			host, port, err := ParseAddress(tt.input, DefaultPort)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAddress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if host != tt.wantHost {
				t.Errorf("host = %q, want %q", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("port = %d, want %d", port, tt.wantPort)
			}
		})
	}
}

func TestJoinAddress(t *testing.T) {
	if got := JoinAddress("zos.example.com", 21); got != "zos.example.com:21" {
		t.Errorf("JoinAddress() = %q", got)
	}
	if got := JoinAddress("::1", 2121); got != "[::1]:2121" {
		t.Errorf("JoinAddress() = %q", got)
	}
}
