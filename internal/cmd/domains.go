package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/output"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Domain availability lookups",
}

var domainsCheckCmd = &cobra.Command{
	Use:   "check <domain>...",
	Short: "Check whether domains are registered (RDAP)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		noCache, _ := cmd.Flags().GetBool("no-cache")

		names := make([]string, 0, len(args))
		for _, raw := range args {
			for _, part := range strings.Split(raw, ",") {
				if name := strings.TrimSpace(part); name != "" {
					names = append(names, name)
				}
			}
		}
		if len(names) == 0 {
			return errors.New("at least one domain is required")
		}

		ctx := cmd.Context()
		if noCache {
			cfg.Domains.Cache = false
		}
		db, release, err := domainCacheStore(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer release()

		enabled := *cfg
		enabled.Domains.Enabled = true
		checker := newDomainChecker(&enabled, db)
		checker.OnResult = func(r domains.Result) { metrics.RecordDomainCheck(string(r.Availability)) }

		rendered, err := output.NewFormatter(format).FormatDomains(checker.CheckAll(ctx, names))
		if err != nil {
			return err
		}
		return emit(cmd, rendered)
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.AddCommand(domainsCheckCmd)
	addOutputFlags(domainsCheckCmd)
	domainsCheckCmd.Flags().Bool("no-cache", false, "Skip the store cache")
}
