package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/scoring"
	"github.com/jonathan/resume-guard/internal/types"
)

var scoreCommand = &cobra.Command{
	Use:   "score",
	Short: "Compute the deterministic ATS score for a profile against a job",
	Long:  "Scores a candidate profile against a job description without making any AI calls. Useful for inspecting the baseline before running the full pipeline.",
	RunE:  runScoreCmd,
}

var (
	scoreProfile string
	scoreJob     string
)

func init() {
	scoreCommand.Flags().StringVarP(&scoreProfile, "profile", "p", "", "Path to candidate profile JSON file")
	scoreCommand.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job profile JSON file")
	_ = scoreCommand.MarkFlagRequired("profile")
	_ = scoreCommand.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCommand)
}

func runScoreCmd(_ *cobra.Command, _ []string) error {
	profile, err := loadJSON[types.CandidateProfile](scoreProfile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	job, err := loadJSON[types.JobProfile](scoreJob)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	result := scoring.Score(profile, job)
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(payload))
	return nil
}
