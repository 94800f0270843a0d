package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/windowsadmins/wampdoctor/pkg/config"
	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/ports"
	"github.com/windowsadmins/wampdoctor/pkg/preflight"
	"github.com/windowsadmins/wampdoctor/pkg/prompt"
	"github.com/windowsadmins/wampdoctor/pkg/tui"
	"github.com/windowsadmins/wampdoctor/pkg/version"
	"github.com/windowsadmins/wampdoctor/pkg/workflow"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE:  runUI,
	}
}

func runUI(cmd *cobra.Command, _ []string) error {
	host := preflight.Host{}
	if host.IsTargetOS() && !host.IsElevated() {
		logging.Warn("Started without administrator rights")
		prompt.Notify(tr.Text(i18n.AdminTitle), tr.Text(i18n.AdminWarning))
	}

	bridge := tui.NewBridge()
	return tui.Start(cmd.Context(), tui.Options{
		Runner:     newOrchestrator(bridge),
		Bridge:     bridge,
		Translator: tr,
		DarkMode:   cfg.DarkMode,
		OnRun:      writeReport,
	})
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Check redistributables, ports and the Apache service without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// scan never reaches the confirmation gate
			return finish(newOrchestrator(nil).Scan(cmd.Context(), printer{}))
		},
	}
}

func newFixCmd() *cobra.Command {
	var assumeYes, useDialog bool
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Install missing redistributables, start Apache and report port owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var confirmer workflow.Confirmer
			switch {
			case assumeYes:
				confirmer = prompt.AlwaysYes{}
			case useDialog:
				confirmer = prompt.Dialog{}
			default:
				confirmer = prompt.NewConsole(tr.Text(i18n.Yes), tr.Text(i18n.No))
			}
			return finish(newOrchestrator(confirmer).AutoFix(cmd.Context(), printer{}))
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "install missing packages without asking")
	cmd.Flags().BoolVar(&useDialog, "dialog", false, "ask with a native message box")
	cmd.MarkFlagsMutuallyExclusive("yes", "dialog")
	return cmd
}

func newPortsCmd() *cobra.Command {
	var list []int
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "Show which processes listen on the WAMP ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(list) == 0 {
				list = cfg.Ports
			}
			for _, r := range ports.NewScanner().Scan(cmd.Context(), list) {
				switch {
				case r.Err != nil:
					fmt.Println(tr.Format(i18n.PortProbeFailed, "port", r.Port, "error", r.Err))
				case r.Owner != nil:
					fmt.Println(tr.Format(i18n.PortUsed, "port", r.Port, "name", r.Owner.Name, "pid", r.Owner.PID))
				default:
					fmt.Println(tr.Format(i18n.PortStatus, "port", r.Port))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntSliceVarP(&list, "port", "p", nil, "port to check, repeatable (default from configuration)")
	return cmd
}

func newShowConfigCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "show-config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if write {
				path := config.ResolvePath(flagConfig)
				if err := config.SaveConfig(cfg, path); err != nil {
					return err
				}
				logging.Info("Configuration written", "path", path)
				fmt.Fprintf(os.Stderr, "wrote %s\n", path)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			fmt.Printf("# source: %s\n%s", cfg.Source, data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "save the effective configuration to the configuration file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// no configuration needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			version.PrintFull(os.Stdout)
		},
	}
}
