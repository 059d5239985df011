// Package main provides the GradFlow CLI.
//
// The train subcommand fits a small linear-regression model with the
// autodiff engine, which doubles as an end-to-end smoke test of the
// forward graph, the backward pass, and the optimizers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/gradflow-ml/gradflow/nn"
	"github.com/gradflow-ml/gradflow/optim"
	"github.com/gradflow-ml/gradflow/tensor"
)

const version = "v0.1.0-dev"

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	epochs := flag.Int("epochs", 200, "number of training epochs")
	lr := flag.Float64("lr", 0.05, "learning rate")
	samples := flag.Int("samples", 64, "number of synthetic samples")
	optimizer := flag.String("optimizer", "sgd", "optimizer: sgd or adam")

	klog.InitFlags(nil)
	flag.Parse()

	if flag.Arg(0) == "version" {
		fmt.Printf("GradFlow %s\n", version)
		return nil
	}

	return train(ctx, *epochs, *lr, *samples, *optimizer)
}

// train fits y = X@w + b on synthetic data generated from known
// coefficients, so the learned parameters should approach the truth.
func train(ctx context.Context, epochs int, lr float64, samples int, optimizer string) error {
	log := klog.FromContext(ctx)

	x, err := tensor.Randn(tensor.Shape{samples, 2}, tensor.Float64, tensor.Source)
	if err != nil {
		return fmt.Errorf("building inputs: %w", err)
	}

	// Ground truth: y = 2*x0 - 3*x1 + 0.5.
	trueW, err := tensor.FromFloat64([]float64{2, -3}, tensor.Shape{2, 1}, tensor.Source)
	if err != nil {
		return err
	}
	xw, err := x.MatMul(trueW)
	if err != nil {
		return err
	}
	y := tensor.New(xw.Value().Clone(), tensor.Source).AddScalar(0.5).Detach()

	w, err := tensor.Randn(tensor.Shape{2, 1}, tensor.Float64, tensor.Parameter)
	if err != nil {
		return fmt.Errorf("building parameters: %w", err)
	}
	b, err := tensor.Zeros(tensor.Shape{1, 1}, tensor.Float64, tensor.Parameter)
	if err != nil {
		return err
	}

	params := []*tensor.Tensor{w, b}
	var opt optim.Optimizer
	switch optimizer {
	case "sgd":
		opt, err = optim.NewSGD(params, optim.SGDConfig{LR: lr})
	case "adam":
		opt, err = optim.NewAdam(params, optim.AdamConfig{LR: lr})
	default:
		return fmt.Errorf("unknown optimizer %q", optimizer)
	}
	if err != nil {
		return fmt.Errorf("building optimizer: %w", err)
	}

	log.Info("Starting training", "optimizer", optimizer, "epochs", epochs, "lr", lr, "samples", samples)

	for epoch := 1; epoch <= epochs; epoch++ {
		pred, err := x.MatMul(w)
		if err != nil {
			return fmt.Errorf("epoch %d forward: %w", epoch, err)
		}
		pred, err = pred.Add(b)
		if err != nil {
			return fmt.Errorf("epoch %d bias: %w", epoch, err)
		}
		loss, err := nn.MSE(pred, y)
		if err != nil {
			return fmt.Errorf("epoch %d loss: %w", epoch, err)
		}

		opt.ZeroGrad()
		if err := loss.Backward(); err != nil {
			return fmt.Errorf("epoch %d backward: %w", epoch, err)
		}
		if err := opt.Step(); err != nil {
			return fmt.Errorf("epoch %d step: %w", epoch, err)
		}

		if epoch%50 == 0 || epoch == 1 {
			lossVal, err := loss.Item()
			if err != nil {
				return err
			}
			log.Info("Epoch complete", "epoch", epoch, "loss", lossVal)
		}
	}

	log.Info("Training finished",
		"w", formatColumn(w.Value()),
		"b", formatColumn(b.Value()))
	return nil
}

func formatColumn(a *tensor.Array) string {
	vals := a.AsFloat64()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprint(out)
}
