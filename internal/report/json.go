package report

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/tetragramaton/bstat/internal/boiler"
)

type Document struct {
	Profile  string             `json:"profile"`
	Ts       int64              `json:"ts"`
	Values   map[string]float64 `json:"values"`
	Readings []ReadingDoc       `json:"readings"`
	Holding  []int16            `json:"holding,omitempty"`
	Input    []int16            `json:"input,omitempty"`
}

type ReadingDoc struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Raw        int16    `json:"raw"`
	Value      float64  `json:"value"`
	Fahrenheit *float64 `json:"fahrenheit,omitempty"`
	Label      string   `json:"label,omitempty"`
}

func NewDocument(snap *boiler.Snapshot, now int64) Document {
	doc := Document{
		Profile:  snap.Profile,
		Ts:       now,
		Values:   make(map[string]float64, len(snap.Readings)),
		Readings: make([]ReadingDoc, 0, len(snap.Readings)),
		Holding:  snap.Holding,
		Input:    snap.Input,
	}
	for _, r := range snap.Readings {
		rd := ReadingDoc{
			Key:   Key(r.Field.Name),
			Name:  r.Field.Name,
			Kind:  string(r.Field.Kind),
			Raw:   r.Raw,
			Value: *round(r.Value(), 1),
		}
		switch r.Field.Kind {
		case boiler.Temperature:
			rd.Fahrenheit = round(r.Fahrenheit(), 1)
		case boiler.Mode:
			rd.Label = r.Label()
		}
		doc.Values[rd.Key] = rd.Value
		doc.Readings = append(doc.Readings, rd)
	}
	return doc
}

func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var nonKey = regexp.MustCompile(`[^a-z0-9]+`)

// Key turns a field name into a JSON key: "System Supply Temp" ->
// "system_supply_temp".
func Key(name string) string {
	return strings.Trim(nonKey.ReplaceAllString(strings.ToLower(name), "_"), "_")
}

func round(v float64, prec int) *float64 {
	p := 1.0
	for i := 0; i < prec; i++ {
		p *= 10
	}
	var r float64
	if v < 0 {
		r = float64(int(v*p-0.5)) / p
	} else {
		r = float64(int(v*p+0.5)) / p
	}
	return &r
}
