package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tetragramaton/bstat/internal/boiler"
	"github.com/tetragramaton/bstat/internal/config"
	modbusIface "github.com/tetragramaton/bstat/internal/interface/modbus"
	mqttIface "github.com/tetragramaton/bstat/internal/interface/mqtt"
	"github.com/tetragramaton/bstat/internal/report"
)

type MainHandler struct {
	Config       *config.Config
	Out          io.Writer
	ModbusClient modbusIface.Client

	// MQTTClient is nil when publishing is disabled.
	MQTTClient mqttIface.Client
}

func NewMainHandler(
	cfg *config.Config,
	out io.Writer,
	modbusClient modbusIface.Client,
	mqttClient mqttIface.Client,
) *MainHandler {
	return &MainHandler{
		Config:       cfg,
		Out:          out,
		ModbusClient: modbusClient,
		MQTTClient:   mqttClient,
	}
}

// Handle runs one status report or one setpoint change.
func (h *MainHandler) Handle(now time.Time) error {
	dev := boiler.NewDevice(h.ModbusClient, h.Config.Profile)

	if h.Config.Target != nil {
		logrus.WithFields(logrus.Fields{
			"target":  *h.Config.Target,
			"percent": h.Config.Percent,
		}).Debug("changing setpoint")
		p := &setpointPrinter{w: h.Out, block: dev.Profile().Holding}
		if _, err := dev.ChangeSetpoint(*h.Config.Target, p); err != nil {
			return err
		}
		return p.err
	}

	snap, err := h.status(dev, now)
	if err != nil {
		return err
	}
	if h.MQTTClient != nil {
		return h.publish(snap, now)
	}
	return nil
}

func (h *MainHandler) status(dev *boiler.Device, now time.Time) (*boiler.Snapshot, error) {
	p := dev.Profile()

	var (
		onBlock boiler.BlockFunc
		werr    error
	)
	if !h.Config.JSON {
		onBlock = func(kind boiler.RegisterKind, regs []int16, readings []boiler.Reading) {
			if werr != nil {
				return
			}
			if kind == boiler.Holding && p.DumpHolding {
				if werr = report.Dump(h.Out, kind, p.Holding, regs); werr != nil {
					return
				}
			}
			werr = report.Readings(h.Out, readings)
		}
	}

	snap, err := dev.Query(onBlock)
	if err != nil {
		return nil, err
	}
	if werr != nil {
		return nil, werr
	}

	if h.Config.JSON {
		return snap, report.JSON(h.Out, report.NewDocument(snap, now.Unix()))
	}
	if p.Diagram != nil {
		if err := report.Diagram(h.Out, p.Diagram, snap); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// setpointPrinter reports a setpoint change on the text output.
type setpointPrinter struct {
	w     io.Writer
	block boiler.Block
	err   error
}

func (p *setpointPrinter) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *setpointPrinter) dump(holding []int16) {
	if p.err == nil {
		p.err = report.Dump(p.w, boiler.Holding, p.block, holding)
	}
}

func (p *setpointPrinter) Before(holding []int16) {
	p.dump(holding)
}

func (p *setpointPrinter) Enabled(value uint16) {
	p.printf("\nWriting Configuration = %d\n", value)
}

func (p *setpointPrinter) Writing(targetF, percent int) {
	p.printf("\nWriting Setpoint = %d degree (%d percent)\n", targetF, percent)
}

func (p *setpointPrinter) After(holding []int16, confirm *boiler.Reading) {
	p.dump(holding)
	if confirm != nil {
		p.printf("%s\n", report.Celsius(*confirm))
	}
}
