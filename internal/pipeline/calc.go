package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CalculatorQuestion is put to the model together with the calculator's tree.
const CalculatorQuestion = "What result does the calculator display?"

type CalculatorResult struct {
	RunID      string `yaml:"run_id"           json:"runId"`
	Expression string `yaml:"expression"       json:"expression"`
	Answer     string `yaml:"answer,omitempty" json:"answer,omitempty"`
}

// Calculator types an expression into the calculator app and asks the
// model to read the result back from the automation tree.
func (r *Runner) Calculator(ctx context.Context) (*CalculatorResult, error) {
	cfg := r.cfg.Calc
	res := &CalculatorResult{Expression: cfg.Expression}
	runID, err := r.within(ctx, "calc", func(ctx context.Context, rn *run) error {
		window, err := rn.acquirer.Calculator(ctx, cfg.App, cfg.Expression)
		if err != nil {
			return fmt.Errorf("drive calculator: %w", err)
		}
		if r.modelMissing(rn.logger, "reading the result") {
			return nil
		}
		answer, err := r.extractor(rn.logger).Ask(ctx, CalculatorQuestion, window)
		if err != nil {
			return fmt.Errorf("read result: %w", err)
		}
		res.Answer = answer
		rn.logger.Info("calculator result", zap.String("answer", answer))
		return nil
	})
	res.RunID = runID
	return res, err
}
