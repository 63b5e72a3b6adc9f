package sftpclient

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/sftp"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Host: "test-host", User: "test-user", Pass: "test-pass"}.withDefaults()

	if cfg.Port != 22 {
		t.Errorf("Expected default Port to be 22, got %d", cfg.Port)
	}
	if cfg.RemoteDir != "/" {
		t.Errorf("Expected default RemoteDir to be '/', got %q", cfg.RemoteDir)
	}

	cfg = Config{Port: 2222, RemoteDir: "/inbound"}.withDefaults()
	if cfg.Port != 2222 || cfg.RemoteDir != "/inbound" {
		t.Errorf("Explicit values must be kept, got %+v", cfg)
	}
}

func TestUploadFileValidation(t *testing.T) {
	ctx := context.Background()

	const (
		testHost = "127.0.0.1"
		testUser = "test-user"
		testPass = "test-pass"
		testFile = "test.txt"
	)

	local := filepath.Join(t.TempDir(), testFile)
	if err := os.WriteFile(local, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	// A listener that is closed right away gives a port nobody answers on.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	testCases := []struct {
		name          string
		cfg           Config
		localPath     string
		errorContains string
	}{
		{
			name:          "Missing credentials",
			cfg:           Config{},
			localPath:     testFile,
			errorContains: "sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS",
		},
		{
			name:          "Non-existent local file",
			cfg:           Config{Host: testHost, User: testUser, Pass: testPass},
			localPath:     "non_existent_file.txt",
			errorContains: "sftp: open local file",
		},
		{
			name:          "Unreadable known_hosts",
			cfg:           Config{Host: testHost, User: testUser, Pass: testPass, KnownHostsFile: filepath.Join(t.TempDir(), "nope")},
			localPath:     local,
			errorContains: "sftp: load known_hosts",
		},
		{
			name:          "Nothing listening",
			cfg:           Config{Host: testHost, Port: port, User: testUser, Pass: testPass, InsecureIgnoreHostKey: true},
			localPath:     local,
			errorContains: "sftp: dial error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := UploadFile(ctx, tc.cfg, tc.localPath, testFile)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errorContains) {
				t.Errorf("Expected error to contain %q, got %q", tc.errorContains, err.Error())
			}
		})
	}
}

func TestUploadInMemory(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	server := sftp.NewRequestServer(serverConn, sftp.InMemHandler())
	go server.Serve()
	t.Cleanup(func() { server.Close() })

	cli, err := sftp.NewClientPipe(clientConn, clientConn)
	if err != nil {
		t.Fatalf("NewClientPipe() error = %v", err)
	}
	defer cli.Close()

	report := "COD_SIU,MATERIA\r\n101,Zoología\r\n"
	if err := upload(cli, "/inbound", "equipos.csv", strings.NewReader(report)); err != nil {
		t.Fatalf("upload() error = %v", err)
	}

	f, err := cli.Open("/inbound/equipos.csv")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != report {
		t.Errorf("Uploaded content = %q, want %q", got, report)
	}
}
