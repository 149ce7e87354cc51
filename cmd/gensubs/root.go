package main

import (
	"github.com/spf13/cobra"

	"gensubs/internal/services"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)

	var flags runFlags

	rootCmd := &cobra.Command{
		Use:           "gensubs [video]",
		Short:         "Generate subtitles for a video with ffmpeg and whisper",
		Long:          "gensubs extracts a recognition-ready audio track from a video, runs a speech recognizer over it, and files the resulting subtitles next to the video in a dedicated output folder.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return services.Wrap(services.ErrValidation, "resolving", "input", "no input video supplied", nil)
			}
			return runGenerate(cmd, ctx, args[0], flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&flags.model, "model", "m", "", "Recognizer model size (tiny, base, small, medium, large)")
	rootCmd.Flags().StringVarP(&flags.language, "language", "l", "", "Source audio language code (empty for auto-detect)")
	rootCmd.Flags().BoolVar(&flags.translate, "translate-to-en", false, "Translate the audio to English instead of transcribing")
	rootCmd.Flags().BoolVar(&flags.noClean, "no-clean", false, "Keep the intermediate audio file")
	rootCmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Output folder (defaults to the video base name)")
	rootCmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.Flags().StringVar(&flags.logPath, "log", "", "Also write structured logs to this file")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newToolsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
