// Package form turns raw form fields into calculator inputs.
//
// Fields arrive as strings exactly as typed. A blank required field makes
// the form incomplete; text that is not a finite number makes it malformed.
// Either way the caller shows no result.
package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gascalc/backend/libs/gas"
)

var (
	ErrIncomplete = errors.New("form: incomplete")
	ErrMalformed  = errors.New("form: malformed")
)

// Field names shared by HTML forms and the live channel.
const (
	FieldMethod              = "method"
	FieldStartReading        = "start_reading"
	FieldEndReading          = "end_reading"
	FieldDialCubicFeet       = "dial_cubic_feet"
	FieldElapsedSeconds      = "elapsed_seconds"
	FieldMinutes             = "minutes"
	FieldSeconds             = "seconds"
	FieldDeclaredKW          = "declared_kw"
	FieldDays                = "days"
	FieldUnitRatePence       = "unit_rate_pence"
	FieldStandingChargePence = "standing_charge_pence"
	FieldVATRate             = "vat_rate"
	FieldTariffID            = "tariff_id"
)

// Rate is a parsed gas rate form.
type Rate struct {
	Sample     gas.MeasurementSample
	DeclaredKW *float64
}

// Bill is a parsed gas bill form. Tariff is unset when TariffID is given.
type Bill struct {
	StartReading float64
	EndReading   float64
	Days         int
	Tariff       gas.TariffInput
	TariffID     int64
}

// ParseRate reads a rate form. The method defaults to meter readings; the
// elapsed time is either elapsed_seconds or minutes plus seconds.
func ParseRate(fields map[string]string) (Rate, error) {
	p := parser{fields: fields}

	method := gas.MethodMeterReading
	if raw := p.get(FieldMethod); raw != "" {
		if m, err := gas.ParseMethod(raw); err != nil {
			p.markMalformed(FieldMethod)
		} else {
			method = m
		}
	}

	sample := gas.MeasurementSample{Method: method}
	switch method {
	case gas.MethodTestDial:
		sample.DialVolumeCubicFeet = p.float(FieldDialCubicFeet, true)
	default:
		sample.StartReading = p.float(FieldStartReading, true)
		sample.EndReading = p.float(FieldEndReading, true)
	}
	sample.ElapsedSeconds = p.elapsed()

	var out Rate
	if p.has(FieldDeclaredKW) {
		v := p.float(FieldDeclaredKW, false)
		out.DeclaredKW = &v
	}
	if err := p.err(); err != nil {
		return Rate{}, err
	}
	out.Sample = sample
	return out, nil
}

// ParseBill reads a bill form. Unit rate and standing charge are required
// unless a non-zero tariff_id is given.
func ParseBill(fields map[string]string) (Bill, error) {
	p := parser{fields: fields}

	out := Bill{
		StartReading: p.float(FieldStartReading, true),
		EndReading:   p.float(FieldEndReading, true),
		Days:         p.int(FieldDays, true),
	}
	if p.has(FieldTariffID) {
		out.TariffID = int64(p.int(FieldTariffID, false))
	}
	if out.TariffID == 0 {
		out.Tariff.UnitRatePencePerKWh = p.float(FieldUnitRatePence, true)
		out.Tariff.StandingChargePencePerDay = p.float(FieldStandingChargePence, true)
		if p.has(FieldVATRate) {
			v := p.float(FieldVATRate, false)
			out.Tariff.VATRate = &v
		}
	}
	if err := p.err(); err != nil {
		return Bill{}, err
	}
	return out, nil
}

type parser struct {
	fields  map[string]string
	missing []string
	bad     []string
}

func (p *parser) get(name string) string {
	return strings.TrimSpace(p.fields[name])
}

func (p *parser) has(name string) bool {
	return p.get(name) != ""
}

func (p *parser) markMalformed(name string) {
	p.bad = append(p.bad, name)
}

func (p *parser) float(name string, required bool) float64 {
	raw := p.get(name)
	if raw == "" {
		if required {
			p.missing = append(p.missing, name)
		}
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.markMalformed(name)
		return 0
	}
	return v
}

func (p *parser) int(name string, required bool) int {
	raw := p.get(name)
	if raw == "" {
		if required {
			p.missing = append(p.missing, name)
		}
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.markMalformed(name)
		return 0
	}
	return v
}

func (p *parser) elapsed() int {
	if p.has(FieldElapsedSeconds) || !(p.has(FieldMinutes) || p.has(FieldSeconds)) {
		return p.int(FieldElapsedSeconds, true)
	}
	minutes := p.int(FieldMinutes, false)
	seconds := p.int(FieldSeconds, false)
	if minutes < 0 {
		p.markMalformed(FieldMinutes)
		return 0
	}
	if seconds < 0 {
		p.markMalformed(FieldSeconds)
		return 0
	}
	if minutes > (math.MaxInt-seconds)/60 {
		p.markMalformed(FieldMinutes)
		return 0
	}
	return minutes*60 + seconds
}

func (p *parser) err() error {
	if len(p.bad) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(p.bad, ", "))
	}
	if len(p.missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(p.missing, ", "))
	}
	return nil
}
