package commands

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"permeability-service/internal/config"
)

type rootOptions struct {
	envFile string
	verbose bool
}

// NewRootCmd builds the permcli command tree. Defaults for model and reference
// paths come from the same environment configuration as the server.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "permcli",
		Short:         "Predict permeability from well-log CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "environment file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newPredictCmd(opts))
	root.AddCommand(newInspectModelCmd(opts))
	return root
}

func (o *rootOptions) config() (*config.Config, error) {
	return config.Load(o.envFile)
}
