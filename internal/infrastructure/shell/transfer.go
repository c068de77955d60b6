package shell

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
)

// stagedEdit copies the remote file to a local temp file, opens the
// editor there, and installs the result back as the target user. It is
// the path taken for copy-style workflows and whenever no terminal is
// available for an interactive remote session.
func (l *Launcher) stagedEdit(client *ssh.Client, final domain.Descriptor) error {
	original, err := l.fetch(client, final)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "doas-edit-*"+filepath.Ext(final.Path()))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(original); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to stage %s: %w", final.Path(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to stage %s: %w", final.Path(), err)
	}

	if err := l.runLocalCommand(l.editor, tmpPath); err != nil {
		return err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to read edited file: %w", err)
	}

	if bytes.Equal(edited, original) {
		l.logger.Printf("%s unchanged, nothing to write back", final.Path())
		return nil
	}

	return l.install(client, final, edited)
}

// fetch reads the remote file, preferring a plain SFTP read and falling
// back to an elevated cat when the login user cannot open it. A file
// that exists under neither route is treated as new and starts empty.
func (l *Launcher) fetch(client *ssh.Client, final domain.Descriptor) ([]byte, error) {
	if sftpClient, err := sftp.NewClient(client); err == nil {
		defer sftpClient.Close()

		if f, err := sftpClient.Open(final.Path()); err == nil {
			defer f.Close()
			return io.ReadAll(f)
		}
	}

	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	out, err := session.Output(l.elevatedCommand(final, "cat -- "+shellQuote(final.Path())))
	if err != nil {
		l.logger.Printf("%s not readable, starting empty", final.Path())
		return nil, nil
	}
	return out, nil
}

// install writes data to a remote temp file over SFTP and moves it into
// place with the elevation command. When the SFTP subsystem is disabled
// the data is piped through an elevated tee instead.
func (l *Launcher) install(client *ssh.Client, final domain.Descriptor, data []byte) error {
	remoteTmp := fmt.Sprintf("/tmp/.doas-edit-%d", time.Now().UnixNano())

	if sftpClient, err := sftp.NewClient(client); err == nil {
		defer sftpClient.Close()

		if f, err := sftpClient.Create(remoteTmp); err == nil {
			_, werr := f.Write(data)
			cerr := f.Close()
			if werr == nil && cerr == nil {
				return l.installStaged(client, final, remoteTmp)
			}
			sftpClient.Remove(remoteTmp)
		}
	}

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	session.Stdin = bytes.NewReader(data)
	cmd := l.elevatedCommand(final, "tee -- "+shellQuote(final.Path())+" > /dev/null")
	if err := session.Run(cmd); err != nil {
		return fmt.Errorf("failed to write %s: %w", final.Path(), err)
	}
	return nil
}

// installStaged moves an uploaded temp file into place as the target
// user and removes the staging copy.
func (l *Launcher) installStaged(client *ssh.Client, final domain.Descriptor, remoteTmp string) error {
	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	cmd := l.elevatedCommand(final, fmt.Sprintf("cat -- %s > %s && rm -f -- %s",
		shellQuote(remoteTmp), shellQuote(final.Path()), shellQuote(remoteTmp)))
	if err := session.Run(cmd); err != nil {
		return fmt.Errorf("failed to install %s: %w", final.Path(), err)
	}
	return nil
}

// elevatedCommand wraps cmd so it runs as the target user of final. The
// command is executed through sh so redirections happen after elevation.
func (l *Launcher) elevatedCommand(final domain.Descriptor, cmd string) string {
	wrapped := "sh -c " + shellQuote(cmd)

	switch final.Method() {
	case "sudo":
		return fmt.Sprintf("sudo -u %s -- %s", shellQuote(final.User()), wrapped)
	case "su":
		return fmt.Sprintf("su %s -c %s", shellQuote(final.User()), shellQuote(cmd))
	case "doas":
		return fmt.Sprintf("doas -u %s %s", shellQuote(final.User()), wrapped)
	default:
		return cmd
	}
}
