// bstat reports the status of a Modbus boiler controller and optionally
// changes its supply setpoint.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tetragramaton/bstat/internal/boiler"
	"github.com/tetragramaton/bstat/internal/client/serial"
	"github.com/tetragramaton/bstat/internal/config"
)

var version = "dev"

// Replaced in tests.
var (
	initHandler = InitMainHandler
	listPorts   = serial.List
)

// usageError is reported together with the usage text.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type flags struct {
	help      bool
	verbose   int
	listPorts bool

	port     int
	target   int
	baud     int
	parity   string
	dataBits int
	stopBits int
	slaveID  int

	opts config.Options
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var f flags
	cmd := newRootCmd(&f, stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var ue usageError
		if !errors.As(err, &ue) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %s\n", upperFirst(err.Error()))
		fmt.Fprint(stderr, cmd.UsageString())
		return 1
	}
	if f.help {
		return 1
	}
	return 0
}

func newRootCmd(f *flags, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bstat [-s serial-device | -i ip-address [-p port]] [-t setpoint-°F]",
		Short: "Show boiler status via Modbus",
		Long: `bstat reads the holding and input registers of a boiler controller
over Modbus RTU or TCP and prints the decoded values. With -t it changes
the supply setpoint instead.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(stderr, f.verbose)
			if f.listPorts {
				return printPorts(stdout)
			}

			cfg, err := config.Resolve(f.options(cmd))
			if err != nil {
				if errors.Is(err, config.ErrNoTransport) || errors.Is(err, config.ErrBothTransports) {
					return usageError{err}
				}
				return err
			}
			return execute(cfg, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	fl := cmd.Flags()
	fl.SortFlags = false
	fl.BoolVarP(&f.help, "help", "h", false, "show this help and exit")
	fl.StringVarP(&f.opts.Serial, "serial", "s", "", "serial device for Modbus RTU, e.g. /dev/ttyUSB0")
	fl.StringVarP(&f.opts.IP, "ip", "i", "", "IP address for Modbus TCP")
	fl.IntVarP(&f.port, "port", "p", config.DefaultPort, "TCP port")
	fl.IntVarP(&f.target, "target", "t", 0, "new supply setpoint in whole °F")
	fl.StringVar(&f.opts.Profile, "profile", "prestige", "built-in device profile ("+strings.Join(boiler.Profiles(), ", ")+")")
	fl.StringVar(&f.opts.ProfileFile, "profile-file", "", "load the device profile from a YAML file")
	fl.IntVar(&f.baud, "baud", 0, "serial baud rate (profile default)")
	fl.StringVar(&f.parity, "parity", "", "serial parity N, E or O (profile default)")
	fl.IntVar(&f.dataBits, "data-bits", 0, "serial data bits (profile default)")
	fl.IntVar(&f.stopBits, "stop-bits", 0, "serial stop bits (profile default)")
	fl.IntVar(&f.slaveID, "slave-id", 0, "Modbus slave id (profile default)")
	fl.DurationVar(&f.opts.Timeout, "timeout", time.Second, "Modbus response timeout")
	fl.BoolVar(&f.opts.JSON, "json", false, "print the status report as JSON")
	fl.CountVarP(&f.verbose, "verbose", "v", "log diagnostics to stderr (repeat for frame traces)")
	fl.BoolVar(&f.listPorts, "list-ports", false, "list serial ports and exit")
	fl.StringVar(&f.opts.MQTTURL, "mqtt-url", os.Getenv("MQTT_URL"), "publish the report to this MQTT broker")
	fl.StringVar(&f.opts.MQTTTopic, "mqtt-topic", "", "state topic (default bstat/<device-id>/state)")
	fl.StringVar(&f.opts.DeviceID, "device-id", "boiler", "device id used in topics and discovery")
	fl.BoolVar(&f.opts.HADiscovery, "ha-discovery", false, "also publish Home Assistant discovery configs")
	return cmd
}

// options fills the pointer overrides for flags given on the command line.
func (f *flags) options(cmd *cobra.Command) config.Options {
	o := f.opts
	set := cmd.Flags().Changed
	if set("port") {
		o.Port = &f.port
	}
	if set("target") {
		o.Target = &f.target
	}
	if set("baud") {
		o.Baud = &f.baud
	}
	if set("parity") {
		p := strings.ToUpper(f.parity)
		o.Parity = &p
	}
	if set("data-bits") {
		o.DataBits = &f.dataBits
	}
	if set("stop-bits") {
		o.StopBits = &f.stopBits
	}
	if set("slave-id") {
		o.SlaveID = &f.slaveID
	}
	return o
}

func execute(cfg *config.Config, out io.Writer) error {
	handler, cleanup, err := initHandler(cfg, out)
	if err != nil {
		return err
	}
	defer cleanup()
	return handler.Handle(time.Now())
}

func printPorts(w io.Writer) error {
	ports, err := listPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		_, err = fmt.Fprintln(w, "No serial ports found")
		return err
	}
	for _, p := range ports {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

func setupLogging(w io.Writer, verbose int) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case verbose >= 2:
		logrus.SetLevel(logrus.TraceLevel)
	case verbose == 1:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
