package derive

import (
	"encoding/json"
	"fmt"
	"io"

	gravesdet "meteorscatter/gravesdet/src"
)

// NamedArrays is the consumer-facing serialization layout from spec.md
// §6.4: four scalars plus six parallel arrays of length L. Doppler is
// supplied by the caller (see Doppler) since it is derived, not part of the
// detector's own record.
type NamedArrays struct {
	T0  int64   `json:"t0"`
	T0F float64 `json:"t0f"`
	Fs  float64 `json:"fs"`
	Rbw float64 `json:"rbw"`

	XRe     []float64 `json:"x_re"`
	XIm     []float64 `json:"x_im"`
	Q       []float64 `json:"q"`
	PNarrow []float64 `json:"p_n"`
	SNR     []float64 `json:"snr"`
	Doppler []float64 `json:"doppler"`
}

// ToNamedArrays splits a record's complex samples into parallel real/imag
// arrays and attaches a previously computed Doppler series.
func ToNamedArrays(record *gravesdet.ChirpRecord, doppler []float64) NamedArrays {
	var n = record.Len()
	var xre = make([]float64, n)
	var xim = make([]float64, n)
	for i, s := range record.Samples {
		xre[i] = real(s)
		xim[i] = imag(s)
	}

	return NamedArrays{
		T0:      record.StartSeconds,
		T0F:     record.StartFraction,
		Fs:      record.SampleRate,
		Rbw:     record.Ratio,
		XRe:     xre,
		XIm:     xim,
		Q:       record.Q,
		PNarrow: record.PNarrow,
		SNR:     record.SNR,
		Doppler: doppler,
	}
}

// WriteJSON encodes the named-array layout as a single JSON object.
func WriteJSON(w io.Writer, arrays NamedArrays) error {
	var enc = json.NewEncoder(w)
	return enc.Encode(arrays)
}

// WriteText writes the named-array layout as simple "name = value..." lines,
// one array/scalar per line, for quick inspection without a JSON parser.
func WriteText(w io.Writer, arrays NamedArrays) error {
	var scalars = []struct {
		name  string
		value float64
	}{
		{"t0", float64(arrays.T0)},
		{"t0f", arrays.T0F},
		{"fs", arrays.Fs},
		{"rbw", arrays.Rbw},
	}
	for _, s := range scalars {
		if _, err := fmt.Fprintf(w, "%s = %g\n", s.name, s.value); err != nil {
			return err
		}
	}

	var arraysNamed = []struct {
		name   string
		values []float64
	}{
		{"x_re", arrays.XRe},
		{"x_im", arrays.XIm},
		{"q", arrays.Q},
		{"p_n", arrays.PNarrow},
		{"snr", arrays.SNR},
		{"doppler", arrays.Doppler},
	}
	for _, a := range arraysNamed {
		if _, err := fmt.Fprintf(w, "%s =", a.name); err != nil {
			return err
		}
		for _, v := range a.values {
			if _, err := fmt.Fprintf(w, " %g", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
