package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportDryRun bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a content snapshot to S3",
	Long: `export fetches the recent posts and every configured page, strips
images from page HTML and uploads the snapshot as JSON. With --dry-run the
snapshot is printed instead of uploaded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := newExporter(cmd.Context())
		if err != nil {
			return err
		}

		if exportDryRun {
			snap, err := exp.Build(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), snap)
		}

		res, err := exp.Export(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d posts and %d pages to s3://%s/%s\n",
			len(res.Snapshot.Posts), len(res.Snapshot.Pages), appConfig.S3.Bucket, res.Key)
		for _, slug := range res.Snapshot.Missing {
			fmt.Fprintf(cmd.OutOrStdout(), "  missing page: %s\n", slug)
		}
		return nil
	},
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List exported snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := newExporter(cmd.Context())
		if err != nil {
			return err
		}
		keys, err := exp.Snapshots(cmd.Context())
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the most recently exported snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := newExporter(cmd.Context())
		if err != nil {
			return err
		}
		snap, err := exp.Latest(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), snap)
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "print the snapshot instead of uploading it")
	snapshotsCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(exportCmd, snapshotsCmd)
}
