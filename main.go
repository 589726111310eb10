package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"listmodels/internal/clierr"
	"listmodels/internal/config"
	"listmodels/internal/provider"
	"listmodels/pkg/log"
)

type newProviderFunc func(ctx context.Context, cfg *config.Config, log logr.Logger) (provider.Provider, error)

type app struct {
	v           *viper.Viper
	newProvider newProviderFunc
	cfg         *config.Config
	log         logr.Logger
	cfgFile     string
	envFile     string
}

func main() {
	if err := newRootCmd(provider.New).Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(newProvider newProviderFunc) *cobra.Command {
	a := &app{
		v:           config.New(),
		newProvider: newProvider,
		log:         logr.Discard(),
	}

	root := &cobra.Command{
		Use:   "listmodels",
		Short: "List the models available to a Gemini API key",
		Long: `List the generative models a Gemini API key can use, with the
generation methods each one supports.

The key is read from --api-key, GEMINI_API_KEY, GOOGLE_API_KEY, a .env
file or $HOME/.listmodels.yaml, in that order.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runList,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.listmodels.yaml)")
	pf.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	pf.String(config.KeyAPIKey, "", "API key for the Gemini API")
	pf.String(config.KeyProvider, provider.Gemini, "model provider: "+strings.Join(provider.Names(), ", "))
	pf.String(config.KeyBackend, config.BackendGeminiAPI, "backend: "+config.BackendGeminiAPI+" or "+config.BackendVertexAI)
	pf.String(config.KeyProject, "", "Google Cloud project (vertex-ai backend)")
	pf.String(config.KeyLocation, "", "Google Cloud location (vertex-ai backend)")
	pf.String(config.KeyBaseURL, "", "override the service endpoint")
	pf.BoolP(config.KeyVerbose, "v", false, "enable debug logging on stderr")

	addListFlags(root)
	root.AddCommand(a.newListCmd(), a.newProbeCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if !needsConfig(cmd) {
		return nil
	}
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	if err := config.BindFlags(a.v, cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.New(cfg.Verbose).WithName("listmodels")
	a.log.V(1).Info("loaded config",
		"provider", cfg.Provider,
		"backend", cfg.Backend,
		"apiKey", config.MaskKey(cfg.APIKey),
		"configFile", a.v.ConfigFileUsed(),
	)
	return nil
}

// needsConfig is false for cobra's generated help and completion commands,
// which must work without credentials.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func (a *app) openProvider(ctx context.Context) (provider.Provider, func(), error) {
	p, err := a.newProvider(ctx, a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := p.Close(); err != nil {
			a.log.Error(err, "Error closing provider")
		}
	}
	return p, closeFn, nil
}

func reportError(w io.Writer, err error) {
	if e, ok := clierr.As(err); ok {
		io.WriteString(w, e.Report())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
