package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/kship/internal/config"
	"github.com/MrSnakeDoc/kship/internal/logger"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kship",
		Short: "Release a branch to a Kubernetes namespace",
		Long: `kship releases a containerized application to Kubernetes.
It picks a git branch, waits for the image of its head commit to be
published, reconciles the namespace and applies the krane templates.
It can also open a throwaway pod running that image for debugging.`,
		Example: `kship deploy --stage staging
kship bash --stage production --branch master
kship command --stage staging -e RAILS_ENV=staging -- rake db:migrate`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", Version)
				return
			}
			_ = cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")

	pf := cmd.PersistentFlags()
	pf.String("config", config.ProjectFile, "Project settings file")
	pf.StringP("stage", "s", "", "Stage to use from the settings file")
	pf.String("app", "", "Application name, used in generated pod names")
	pf.StringP("namespace", "n", "", "Target namespace")
	pf.String("context", "", "kubectl context of the target cluster")
	pf.String("image-repo", "", "Image repository, without tag")
	pf.StringP("image-tag", "t", "", "Image tag to release (skips branch selection)")
	pf.StringP("branch", "b", "", "Branch to release (skips the branch prompt)")
	pf.String("main-branch", "", "Main branch, always listed first")
	pf.String("proxy", "", "HTTPS proxy for cluster traffic")
	pf.Bool("skip-image-check", false, "Do not wait for the image to be published")
	pf.String("probe", "", `How to check the image is published: "docker" or "registry"`)
	pf.String("poll-timeout", "", "Give up waiting for the image after this long (e.g. 45m)")
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output (debug)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVar(&logger.FlagJSON, "json", false, "JSON log output")

	RegisterSubCommands(cmd)

	return cmd
}

// Execute runs the CLI with a context cancelled on SIGINT or SIGTERM, so
// image polling and running tools stop with the operator.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}
