package di

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/cemkeylan/doas-edit/internal/core/rewrite"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/address"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/config"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/shell"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/transport"
	"github.com/cemkeylan/doas-edit/internal/interfaces/cli"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	ConfigRepo *config.Repository
	Settings   *config.Settings

	// Core services
	Registry *transport.StaticRegistry
	Codec    *address.Codec
	Composer *rewrite.Composer

	// Infrastructure
	Connector *shell.Connector
	Launcher  *shell.Launcher

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger *log.Logger
}

// NewContainer creates and configures the dependency injection container
func NewContainer(configPath string) (*Container, error) {
	container := &Container{
		Logger: log.New(os.Stderr, "[doas-edit] ", log.LstdFlags),
	}

	if err := container.initializeComponents(configPath); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return container, nil
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents(configPath string) error {
	// 1. Load configuration
	c.ConfigRepo = config.NewRepository(configPath)

	settings, err := c.ConfigRepo.Load()
	if err != nil {
		c.Logger.Printf("Warning: Failed to load configuration, using defaults: %v", err)
		settings = c.ConfigRepo.LoadDefault()
	}
	c.Settings = settings

	// 2. Transport registry with configured overrides
	c.Registry = transport.NewStaticRegistry()
	applySettings(c.Registry, settings)

	// 3. Core rewriting services
	c.Codec = address.NewCodec()
	c.Composer = rewrite.NewComposer(c.Registry, c.Codec, settings.ElevationMethod)

	// 4. Session infrastructure
	c.Connector = shell.NewConnector(terminalPasswordPrompt)
	c.Launcher = shell.NewLauncher(c.Registry, c.Codec, c.Connector, resolveEditor(settings), c.Logger)

	// 5. CLI container
	c.CLIContainer = &cli.CLIContainer{
		Composer:     c.Composer,
		Launcher:     c.Launcher,
		Registry:     c.Registry,
		Codec:        c.Codec,
		Settings:     c.Settings,
		Logger:       c.Logger,
		ReloadConfig: c.reloadConfig,
	}

	return nil
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// reloadConfig rebuilds settings-derived dependencies from an alternate
// config file, keeping the CLI container pointed at the new instances.
func (c *Container) reloadConfig(path string) error {
	repo := config.NewRepository(path)

	settings, err := repo.Load()
	if err != nil {
		return err
	}

	c.ConfigRepo = repo
	c.Settings = settings
	c.Registry = transport.NewStaticRegistry()
	applySettings(c.Registry, settings)
	c.Composer = rewrite.NewComposer(c.Registry, c.Codec, settings.ElevationMethod)
	c.Launcher = shell.NewLauncher(c.Registry, c.Codec, c.Connector, resolveEditor(settings), c.Logger)

	c.CLIContainer.Composer = c.Composer
	c.CLIContainer.Launcher = c.Launcher
	c.CLIContainer.Registry = c.Registry
	c.CLIContainer.Settings = c.Settings

	return nil
}

// applySettings layers configured methods and local host names onto the
// built-in registry table.
func applySettings(registry *transport.StaticRegistry, settings *config.Settings) {
	for _, m := range settings.Methods {
		registry.Register(transport.Method{
			Name:         m.Name,
			LoginProgram: m.LoginProgram,
			CopyProgram:  m.CopyProgram,
			MountType:    m.MountType,
			Elevation:    m.Elevation,
		})
	}
	for _, host := range settings.LocalHosts {
		registry.AddLocalHost(host)
	}
}

// resolveEditor picks the editor command: configuration first, then the
// conventional environment variables, then vi.
func resolveEditor(settings *config.Settings) string {
	if settings.Editor != "" {
		return settings.Editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// terminalPasswordPrompt reads a password from the controlling terminal
// without echoing it.
func terminalPasswordPrompt(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}
