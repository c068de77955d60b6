package shell

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
)

// DefaultSSHPort is used when a hop does not specify a port.
const DefaultSSHPort = "22"

// PasswordPrompt asks the user for a password. It is injected so tests
// never touch the terminal.
type PasswordPrompt func(prompt string) (string, error)

// Connector establishes the SSH client chain described by a hop list.
// Each hop's connection carries the TCP stream for the next one, so the
// final client runs commands on the last host in the chain.
type Connector struct {
	prompt PasswordPrompt
}

// NewConnector creates a connector that prompts for passwords with the
// given function when key-based authentication is unavailable.
func NewConnector(prompt PasswordPrompt) *Connector {
	return &Connector{prompt: prompt}
}

// Dial connects through every hop in order and returns a client on the
// final host. Hops whose login program is not ssh cannot be dialed by the
// built-in opener.
func (c *Connector) Dial(hops []domain.Descriptor) (*ssh.Client, error) {
	if len(hops) == 0 {
		return nil, fmt.Errorf("no hops to dial")
	}

	var client *ssh.Client
	for _, hop := range hops {
		cfg := c.clientConfig(hop)
		addr := net.JoinHostPort(hop.Host(), portOrDefault(hop.Port()))

		if client == nil {
			next, err := ssh.Dial("tcp", addr, cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
			}
			client = next
			continue
		}

		conn, err := client.Dial("tcp", addr)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to reach %s through hop chain: %w", addr, err)
		}

		ncc, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to establish session with %s: %w", addr, err)
		}
		client = ssh.NewClient(ncc, chans, reqs)
	}

	return client, nil
}

// clientConfig builds the SSH client configuration for one hop: agent
// keys first when an agent is reachable, then an interactive password.
func (c *Connector) clientConfig(hop domain.Descriptor) *ssh.ClientConfig {
	login := hop.User()
	if login == "" {
		if current, err := user.Current(); err == nil {
			login = current.Username
		}
	}

	var auth []ssh.AuthMethod
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			auth = append(auth, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}
	auth = append(auth, ssh.PasswordCallback(func() (string, error) {
		return c.prompt(fmt.Sprintf("%s@%s's password: ", login, hop.Host()))
	}))

	return &ssh.ClientConfig{
		User:            login,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         15 * time.Second,
	}
}

// portOrDefault substitutes the standard SSH port for an empty one.
func portOrDefault(port string) string {
	if port == "" {
		return DefaultSSHPort
	}
	return port
}
