package waveform_test

import (
	"fmt"
	"log"
	"math"

	"github.com/KwintenF/FastEMRIWaveforms/waveform"
)

func Example() {
	cfg := waveform.DefaultConfig()
	cfg.Modes.LMax = 4

	model, err := waveform.NewFastSchwarzschildEccentricFlux(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer model.Close()

	p := waveform.DefaultParams()
	p.M, p.Mu, p.P0, p.E0 = 1e6, 10, 10, 0.7
	p.Theta, p.Phi = math.Pi/2, 0
	p.T = 0.1

	res, err := model.Generate(p)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(res.Waveform), res.NumModesKept())
}

func Example_slowBatched() {
	cfg := waveform.DefaultConfig()
	cfg.Model = "slow"
	cfg.Modes.LMax, cfg.Modes.NMax = 3, 2

	model, err := waveform.New(waveform.Options{Config: cfg})
	if err != nil {
		log.Fatal(err)
	}
	defer model.Close()

	p := waveform.DefaultParams()
	p.M, p.Mu, p.P0, p.E0 = 1e6, 10, 10, 0.3
	p.Theta, p.Phi = 1, 0
	p.T = 1e-3
	p.BatchSize = 1000
	p.Selection = waveform.SelectAll()

	res, err := model.Generate(p)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(res.ModesKept), "batches")
}
