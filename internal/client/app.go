// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-fit-sync/models"
)

// App is the fitsync command tree.
type App struct {
	root  *cobra.Command
	build models.AppBuildInfo

	configPath string
	open       sessionOpener
	session    *session
}

func NewApp(build models.AppBuildInfo) *App {
	return newApp(build, openSession)
}

func newApp(build models.AppBuildInfo, open sessionOpener) *App {
	a := &App{build: build, open: open}

	a.root = &cobra.Command{
		Use:           "fitsync",
		Short:         "Local-first sync client for trainers and athletes",
		Version:       build.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd.Context(), a.configPath, a.build)
			if err != nil {
				return err
			}
			a.session = s
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.closeSession()
		},
	}
	a.root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to JSON config file")

	a.root.AddCommand(
		a.putCmd(),
		a.getCmd(),
		a.listCmd(),
		a.removeCmd(),
		a.syncCmd(),
		a.statusCmd(),
		a.cardCmd(),
		a.daemonCmd(),
	)

	return a
}

// Execute runs the command selected by os.Args.
func (a *App) Execute(ctx context.Context) error {
	// PersistentPostRunE is skipped when a command fails.
	defer a.closeSession()
	return a.root.ExecuteContext(ctx)
}

func (a *App) closeSession() error {
	if a.session == nil {
		return nil
	}
	s := a.session
	a.session = nil
	return s.close()
}

// SetOutput redirects command output and errors.
func (a *App) SetOutput(out io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(out)
}

// SetArgs overrides os.Args.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}
