package routes

import (
	"context"
	"errors"
	"io"

	"drivedash/config"
	"drivedash/controllers"
	"drivedash/jobs"
	"drivedash/listing"
	"drivedash/models"
	"drivedash/services"
	"drivedash/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ServiceContainer holds the services and controllers one shell session
// works against.
type ServiceContainer struct {
	Config    *config.Config
	Auth      *services.AuthService
	Client    *services.Client
	Notices   *services.NotificationService
	Dashboard *controllers.Dashboard
	Listing   *listing.Adapter
	Renderer  *listing.Renderer
	Out       io.Writer
}

// Option customises NewServiceContainer.
type Option func(*containerOptions)

type containerOptions struct {
	previewer services.Previewer
	colorize  bool
}

// WithPreviewer replaces the browser previewer.
func WithPreviewer(p services.Previewer) Option {
	return func(o *containerOptions) { o.previewer = p }
}

// WithColor forces coloured listings on or off.
func WithColor(on bool) Option {
	return func(o *containerOptions) { o.colorize = on }
}

// NewServiceContainer wires the gateway client, session, notices and the
// dashboard from cfg. Notices and listings are written to out.
func NewServiceContainer(cfg *config.Config, out io.Writer, opts ...Option) (*ServiceContainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := containerOptions{
		previewer: services.NewBrowserPreviewer(out),
		colorize:  !color.NoColor,
	}
	for _, opt := range opts {
		opt(&o)
	}

	auth := services.NewAuthService(cfg.Token, cfg.TokenFile)
	client := services.NewClient(services.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Tokens:  auth,
	})
	notices := services.NewNotificationService(out)
	uploader := jobs.NewBatchUploader(cfg.UploadStrategy, client, cfg.UploadConcurrency)
	dashboard := controllers.NewDashboard(client, uploader, auth, notices, o.previewer)

	return &ServiceContainer{
		Config:    cfg,
		Auth:      auth,
		Client:    client,
		Notices:   notices,
		Dashboard: dashboard,
		Listing:   listing.NewAdapter(dashboard),
		Renderer:  listing.NewRenderer(o.colorize),
		Out:       out,
	}, nil
}

// SetupRoutes builds the shell command tree. The tree keeps flag state, so
// build a fresh one for every command line.
func SetupRoutes(c *ServiceContainer) *cobra.Command {
	root := &cobra.Command{
		Use:           "drivedash",
		Short:         "Browse and manage your drive from the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(c.Out)
	root.SetErr(c.Out)

	RegisterFolderRoutes(root, c)
	RegisterFileRoutes(root, c)
	RegisterTrashRoutes(root, c)
	RegisterSearchRoutes(root, c)
	RegisterShareRoutes(root, c)
	RegisterAuthRoutes(root, c)
	return root
}

// Execute runs one command line against the container.
func Execute(ctx context.Context, c *ServiceContainer, args []string) error {
	root := SetupRoutes(c)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Notified reports whether err was already shown to the user as a notice.
func Notified(err error) bool {
	var (
		fetchErr *utils.FetchError
		mutErr   *utils.MutationError
		linkErr  *utils.LinkError
		authErr  *utils.AuthRequiredError
	)
	return errors.As(err, &fetchErr) ||
		errors.As(err, &mutErr) ||
		errors.As(err, &linkErr) ||
		errors.As(err, &authErr)
}

// render prints the listing after a command changed it.
func (c *ServiceContainer) render() error {
	return c.Renderer.Render(c.Out, c.Dashboard.Snapshot(), c.Listing.Overlay(), c.Listing.Draft())
}

// lookup resolves an item reference against the current listing.
func (c *ServiceContainer) lookup(ref string) (models.Item, error) {
	return c.Listing.Lookup(ref)
}
