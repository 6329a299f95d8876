package main

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/service"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func loadCatalog(path string, tolerance float64) ([]model.RoleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	roles, err := service.DecodeCatalog(path, data)
	if err != nil {
		return nil, err
	}
	return service.ValidateCatalog(roles, tolerance)
}

func newValidateCmd(tolerance *float64) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Check ids, skill names and weight sums of a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := loadCatalog(args[0], *tolerance)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range roles {
				_, _ = fmt.Fprintf(out, "%-24s %-32s %d skills\n", r.ID, r.Title, len(r.IdealSkills))
			}
			_, _ = fmt.Fprintf(out, "ok: %d roles\n", len(roles))
			return nil
		},
	}
}

func newNormalizeCmd(tolerance *float64) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <catalog>",
		Short: "Print the catalog as YAML with weights normalized to 1.0",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := loadCatalog(args[0], *tolerance)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(model.RoleCatalog{Roles: roles})
		},
	}
}

func newRankCmd(tolerance *float64) *cobra.Command {
	var catalogPath, skillsPath string
	var readiness float64

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank catalog roles against a skills file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roles, err := loadCatalog(catalogPath, *tolerance)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(skillsPath)
			if err != nil {
				return err
			}
			var inputs []service.SkillInput
			if err := yaml.Unmarshal(data, &inputs); err != nil {
				return fmt.Errorf("decode skills %s: %w", skillsPath, err)
			}
			skills, err := service.ValidateSkills(inputs)
			if err != nil {
				return err
			}

			policy := service.DefaultScoringPolicy()
			if readiness > 0 {
				policy.ReadinessRatio = readiness
			}
			results, err := service.NewFitScorer(policy).RankRoles(skills, roles)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, r := range results {
				_, _ = fmt.Fprintf(out, "%2d. %-24s %3d  %s\n", i+1, r.RoleID, r.FitScore, r.PrepWindow)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "configs/roles.yaml", "role catalog file (yaml or json)")
	cmd.Flags().StringVar(&skillsPath, "skills", "", "skills yaml: list of {name, category, proficiencyScore}")
	cmd.Flags().Float64Var(&readiness, "readiness", 0, "readiness ratio override")
	_ = cmd.MarkFlagRequired("skills")
	return cmd
}

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <points>",
		Short: "Show tier and progress for a points total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("points must be an integer: %w", err)
			}
			info := service.ComputeTier(points)
			next := string(info.NextTier)
			if next == "" {
				next = "-"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tier=%s next=%s progress=%.1f%%\n", info.Tier, next, info.ProgressPercent)
			return nil
		},
	}
}
