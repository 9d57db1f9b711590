package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harentsoaR/diabetes-api/internal/models"
	"github.com/harentsoaR/diabetes-api/internal/predictor"
)

func predictCmd() *cobra.Command {
	var f models.Features

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the model on one set of measurements",
		Example: `  diabetes-api predict --glucose 148 --bmi 33.6 --bloodpressure 72 --pedigree 0.627
  diabetes-api predict --model ml/model.json --glucose 85 --bmi 26.6 --bloodpressure 66 --pedigree 0.351`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("model")
			if !cmd.Flags().Changed("model") {
				if env := os.Getenv("MODEL_PATH"); env != "" {
					path = env
				}
			}

			model, err := predictor.Load(path)
			if err != nil {
				return err
			}

			result := model.Predict(f)
			label := "healthy"
			if result == models.ResultDiabetic {
				label = "diabetic"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d (%s)\n", result, label)
			return nil
		},
	}

	cmd.Flags().String("model", "ml/model.json", "Path to the model artifact")
	cmd.Flags().Float64Var(&f.Glucose, "glucose", 0, "Plasma glucose (mg/dL)")
	cmd.Flags().Float64Var(&f.BMI, "bmi", 0, "Body mass index")
	cmd.Flags().Float64Var(&f.BloodPressure, "bloodpressure", 0, "Diastolic blood pressure (mm Hg)")
	cmd.Flags().Float64Var(&f.Pedigree, "pedigree", 0, "Diabetes pedigree function")
	for _, name := range []string{"glucose", "bmi", "bloodpressure", "pedigree"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
