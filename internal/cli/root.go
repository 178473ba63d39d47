// Package cli implementa o usersctl: subcomandos cobra que conduzem o
// dashboard.Controller contra a API REST e o painel interativo no terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafabene/usermanager/internal/client"
	"github.com/rafabene/usermanager/internal/dashboard"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/ports"
	"github.com/rafabene/usermanager/internal/infrastructure/logging"
)

// Options são as dependências de processo do usersctl
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Store substitui o cliente HTTP (usado nos testes)
	Store dashboard.RecordStore
	// Now é o relógio usado por filtros de data, exportação e analytics
	Now func() time.Time
}

type app struct {
	opts Options

	apiURL     string
	configPath string
	language   string
	pageSize   int
	timeout    time.Duration
	verbose    bool

	profile  Profile
	logger   ports.Logger
	store    dashboard.RecordStore
	reported bool
}

// Execute roda o usersctl com args e retorna o código de saída do processo
func Execute(ctx context.Context, opts Options, args []string) int {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{opts: opts, logger: logging.Nop()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "usersctl",
		Short: "Manage users of the user manager backend",
		Long: `usersctl drives the user dashboard from the terminal.

Every command loads the user list from the API, applies the requested
search, filters and selection, and reports the outcome as notifications
on stderr. Failures exit with status 1.

Settings are read from a TOML profile (--config) and overridden by flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "base URL of the user manager API")
	flags.StringVar(&a.configPath, "config", "", "path to the TOML profile (default "+DefaultProfilePath()+")")
	flags.StringVar(&a.language, "lang", "", "preferred language for server messages (Accept-Language)")
	flags.IntVar(&a.pageSize, "page-size", dashboard.DefaultPageSize, "rows per page")
	flags.DurationVar(&a.timeout, "timeout", 10*time.Second, "timeout of each API call")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log API calls to stderr")

	root.AddCommand(
		a.listCommand(),
		a.getCommand(),
		a.createCommand(),
		a.updateCommand(),
		a.deleteCommand(),
		a.bulkDeleteCommand(),
		a.bulkUpdateCommand(),
		a.exportCommand(),
		a.analyticsCommand(),
		a.dashboardCommand(),
	)
	return root
}

// setup resolve profile + flags e constrói logger e store
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path, required := a.configPath, true
	if path == "" {
		path, required = DefaultProfilePath(), false
	}
	profile, err := LoadProfile(path, required)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		profile.APIURL = a.apiURL
	}
	if flags.Changed("lang") {
		profile.Language = a.language
	}
	if flags.Changed("page-size") {
		profile.PageSize = a.pageSize
	}
	if flags.Changed("timeout") {
		profile.Timeout = a.timeout.String()
	}
	if profile.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", profile.PageSize)
	}
	timeout, err := profile.TimeoutDuration()
	if err != nil {
		return err
	}
	a.profile = profile

	if a.verbose {
		a.logger = logging.NewWithWriter(a.opts.Err, "debug", "usersctl")
	}

	a.store = a.opts.Store
	if a.store == nil {
		a.store = client.New(client.Config{
			BaseURL:  profile.APIURL,
			Timeout:  timeout,
			Language: profile.Language,
			Logger:   a.logger,
		})
	}

	a.logger.Debug("profile resolved",
		"api_url", profile.APIURL,
		"page_size", profile.PageSize,
		"timeout", timeout.String(),
	)
	return nil
}

// controller cria um Controller com o notifier de stderr; extra é
// aplicado por último e pode substituí-lo
func (a *app) controller(confirmer dashboard.Confirmer, extra ...dashboard.Option) *dashboard.Controller {
	opts := []dashboard.Option{
		dashboard.WithPageSize(a.profile.PageSize),
		dashboard.WithNotifier(ports.NotifierFunc(a.notify)),
		dashboard.WithConfirmer(confirmer),
		dashboard.WithLogger(a.logger),
		dashboard.WithClock(a.opts.Now),
		dashboard.WithBulkConcurrency(a.profile.BulkConcurrency),
	}
	return dashboard.NewController(a.store, append(opts, extra...)...)
}

// loaded cria o controller e carrega o canônico
func (a *app) loaded(ctx context.Context, confirmer dashboard.Confirmer) (*dashboard.Controller, error) {
	ctrl := a.controller(confirmer)
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// notify imprime notificações no stderr. Erros notificados não são
// repetidos na saída final do processo.
func (a *app) notify(n ports.Notification) {
	if n.Level == ports.NotificationError {
		a.reported = true
	}
	fmt.Fprintln(a.opts.Err, statusLine(n))
}

func (a *app) printError(err error) {
	switch {
	case errors.Is(err, dashboard.ErrNotConfirmed):
		fmt.Fprintln(a.opts.Err, warningPrefix, "Aborted")
	case a.reported:
	default:
		msg := err.Error()
		var de *domainerrors.DomainError
		if errors.As(err, &de) && de.Message != "" {
			msg = de.Message
		}
		fmt.Fprintln(a.opts.Err, errorPrefix, msg)
	}
}

// confirmer pergunta no terminal; yes aprova sem perguntar
func (a *app) confirmer(yes bool) dashboard.Confirmer {
	if yes {
		return dashboard.AlwaysConfirm
	}
	reader := bufio.NewReader(a.opts.In)
	return dashboard.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(a.opts.Err, "%s %s [y/N]: ", warningPrefix, prompt)
		answer, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

func notice(title, msg string) ports.Notification {
	return ports.Notification{Level: ports.NotificationSuccess, Title: title, Message: msg}
}
