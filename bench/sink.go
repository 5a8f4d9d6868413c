package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"git.gammaspectra.live/P2Pool/helioselene-contest/utils"
	"github.com/go-zeromq/zmq4"
)

// Sink receives a finished report.
type Sink interface {
	Publish(report *Report) error
}

// TextSink writes a human-readable table.
type TextSink struct {
	Writer io.Writer
}

func (s TextSink) Publish(report *Report) error {
	w := tabwriter.NewWriter(s.Writer, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "host:\t%s/%s %s, %d CPUs %v\t\n", report.Host.OS, report.Host.Arch, report.Host.GoVersion, report.Host.NumCPU, report.Host.Features)
	fmt.Fprintf(w, "seed:\t%s\t\n\n", report.Seed)

	fmt.Fprintln(w, "component\toperation\tcandidate\treference\tspeedup\tcandidate rate\t")
	for _, c := range report.Comparisons {
		fmt.Fprintf(w, "%s\t%s\t%s/op\t%s/op\t%.2fx\t%s\t\n", c.Component, c.Operation, utils.DurationUnits(c.Candidate, 1), utils.DurationUnits(c.Reference, 1), c.Speedup, rate(c.Candidate))
	}
	return w.Flush()
}

// rate formats operations per second from nanoseconds per operation.
func rate(nsPerOp float64) string {
	if nsPerOp <= 0 {
		return "-"
	}
	return utils.SiUnits(1e9/nsPerOp, 1) + "ops/s"
}

// JSONSink writes the report as indented JSON to Path.
type JSONSink struct {
	Path string
}

func (s JSONSink) Publish(report *Report) error {
	buf, err := utils.MarshalJSONIndent(report, "  ")
	if err != nil {
		return err
	}
	//nolint:gosec
	return os.WriteFile(s.Path, append(buf, '\n'), 0o644)
}

// ZMQSink binds a PUB socket on Endpoint and sends one single-frame message per
// series, formatted as topic:json with topic bench/<component>/<operation>/<implementation>.
type ZMQSink struct {
	Endpoint string
	// Settle is how long subscribers get to connect before the first message.
	Settle time.Duration
}

func ZMQTopic(component, operation, implementation string) string {
	return "bench/" + component + "/" + operation + "/" + implementation
}

var ErrMalformedFrame = errors.New("malformed frame")

// SeriesFromFrame splits a frame sent by ZMQSink into its topic and series.
func SeriesFromFrame(frame []byte) (topic string, series Series, err error) {
	i := bytes.IndexByte(frame, ':')
	if i <= 0 || !bytes.HasPrefix(frame, []byte("bench/")) {
		return "", series, ErrMalformedFrame
	}
	if err = utils.UnmarshalJSON(frame[i+1:], &series); err != nil {
		return "", series, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	return string(frame[:i]), series, nil
}

func (s ZMQSink) Publish(report *Report) (err error) {
	pub := zmq4.NewPub(context.Background())
	defer func() {
		err = errors.Join(err, pub.Close())
	}()

	if err = pub.Listen(s.Endpoint); err != nil {
		return fmt.Errorf("zmq listen %s: %w", s.Endpoint, err)
	}
	time.Sleep(s.Settle)

	for _, c := range report.Components {
		for _, series := range c.Series {
			var payload []byte
			if payload, err = utils.MarshalJSON(series); err != nil {
				return err
			}
			topic := ZMQTopic(c.Name, series.Operation, series.Implementation)
			frame := append(append([]byte(topic), ':'), payload...)
			if err = pub.Send(zmq4.NewMsg(frame)); err != nil {
				return fmt.Errorf("zmq send %s: %w", topic, err)
			}
		}
	}
	return nil
}
