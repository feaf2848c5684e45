package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnehpets/utilserve/utility"
)

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate a utility without starting the server",
	}
	cmd.AddCommand(newCalcBMICmd(), newCalcPasswordCmd(), newCalcNumbersCmd(), newCalcTemperatureCmd())
	return cmd
}

func newCalcBMICmd() *cobra.Command {
	var weight, height float64
	cmd := &cobra.Command{
		Use:   "imc",
		Short: "Compute the body mass index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := utility.BMI(weight, height)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Float64Var(&weight, "peso", 0, "weight in kg")
	cmd.Flags().Float64Var(&height, "altura", 0, "height in m")
	_ = cmd.MarkFlagRequired("peso")
	_ = cmd.MarkFlagRequired("altura")
	return cmd
}

func newCalcPasswordCmd() *cobra.Command {
	var (
		length  int
		symbols bool
	)
	cmd := &cobra.Command{
		Use:   "senha",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := utility.Password(length, symbols, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().IntVar(&length, "tamanho", utility.DefaultPasswordLength, "password length (4-50)")
	cmd.Flags().BoolVar(&symbols, "especiais", true, "include symbols")
	return cmd
}

func newCalcNumbersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "numeros LIST...",
		Short: "Sort and summarise a comma separated list of numbers",
		Example: `  utilserve calc numeros 5,2,8,1,9,3
  utilserve calc numeros 5 2 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := utility.AnalyzeNumbers(utility.SplitList(strings.Join(args, ",")))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func newCalcTemperatureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "temperatura VALOR DE PARA",
		Short: "Convert a temperature between C, F and K",
		Example: `  utilserve calc temperatura 25 C F
  utilserve calc temperatura -- -40 C F`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := utility.ParseNumber(args[0])
			if !ok {
				return fmt.Errorf("valor inválido: %q", args[0])
			}
			res, err := utility.ConvertTemperature(value, args[1], args[2])
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
