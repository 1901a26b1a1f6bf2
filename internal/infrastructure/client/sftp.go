package client

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

type SFTPConfig struct {
	Addr           string
	User           string
	Password       string
	KnownHostsFile string
}

type SFTPClient struct {
	ssh    *ssh.Client
	Client *sftp.Client
}

func NewSFTPClient(ctx context.Context, cfg SFTPConfig) (*SFTPClient, error) {
	if cfg.Addr == "" || cfg.User == "" {
		return nil, fmt.Errorf("sftp: missing host or user")
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.KnownHostsFile != "" {
		cb, err := knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("sftp: known_hosts: %w", err)
		}
		hostKeyCallback = cb
	} else {
		log.Println("⚠️  SFTP_KNOWN_HOSTS не задан, ключ сервера не проверяется")
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         20 * time.Second,
	}

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", cfg.Addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		go func() {
			// соединение все равно может установиться, закрываем его
			if r := <-ch; r.client != nil {
				r.client.Close()
			}
		}()
		return nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("sftp: new client: %w", err)
	}

	return &SFTPClient{ssh: sshClient, Client: sftpClient}, nil
}

func (c *SFTPClient) Close() error {
	if c.Client != nil {
		c.Client.Close()
	}
	return c.ssh.Close()
}
