// Package projection flattens a stretch-data record into ordered,
// labeled display fields, one list per section. A field is emitted only
// when its source value is present and non-zero (non-empty for the
// categorical preferences); a zero measurement is therefore rendered
// the same as an absent one, matching the admin UI this service feeds.
// Missing intermediate objects yield empty sections, never an error.
package projection

import (
	"strconv"

	"github.com/libaas-tailors/api/internal/model"
)

// Units used by the measurement sections.
const (
	UnitInches = "inches"
	UnitCm     = "cm"
	UnitKg     = "kg"
)

// Field is one labeled display entry.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// FitPreferenceBlock is one fit-preferences section. Unlike the other
// sections, preferences are projected per product x record pair, so an
// order can carry several blocks.
type FitPreferenceBlock struct {
	ProductID   string  `json:"productId"`
	RecordIndex int     `json:"recordIndex"`
	Fields      []Field `json:"fields"`
}

// KameezFields projects the top-garment measurements.
func KameezFields(sd *model.StretchData) []Field {
	if sd == nil || sd.Kameez == nil {
		return nil
	}
	k := sd.Kameez
	var fields []Field
	fields = appendMeasurement(fields, "Armhole Circumference", k.ArmholeCircumference, UnitInches)
	fields = appendMeasurement(fields, "Bicep Circumference", k.BicepCircumference, UnitInches)
	fields = appendMeasurement(fields, "Bust Circumference", k.BustCircumference, UnitInches)
	fields = appendMeasurement(fields, "Front Neck Depth", k.FrontNeckDepth, UnitInches)
	fields = appendMeasurement(fields, "Hip Circumference", k.HipCircumference, UnitInches)
	fields = appendMeasurement(fields, "Kameez Length", k.KameezLength, UnitInches)
	fields = appendMeasurement(fields, "Neck Circumference", k.NeckCircumference, UnitInches)
	fields = appendMeasurement(fields, "Shoulder to Waist Length", k.ShoulderToWaistLength, UnitInches)
	fields = appendMeasurement(fields, "Shoulder Width", k.ShoulderWidth, UnitInches)
	fields = appendMeasurement(fields, "Sleeve Length", k.SleeveLength, UnitInches)
	fields = appendMeasurement(fields, "Sleeve Opening Circumference", k.SleeveOpeningCircumference, UnitInches)
	fields = appendMeasurement(fields, "Waist Circumference", k.WaistCircumference, UnitInches)
	return fields
}

// ShalwarFields projects the bottom-garment measurements.
func ShalwarFields(sd *model.StretchData) []Field {
	if sd == nil || sd.Shalwar == nil {
		return nil
	}
	s := sd.Shalwar
	var fields []Field
	fields = appendMeasurement(fields, "Ankle Opening", s.AnkleOpening, UnitInches)
	fields = appendMeasurement(fields, "Crotch Depth", s.CrotchDepth, UnitInches)
	fields = appendMeasurement(fields, "Hip Circumference", s.HipCircumference, UnitInches)
	fields = appendMeasurement(fields, "Inseam Length", s.InseamLength, UnitInches)
	fields = appendMeasurement(fields, "Outseam Length", s.OutseamLength, UnitInches)
	fields = appendMeasurement(fields, "Rise", s.Rise, UnitInches)
	fields = appendMeasurement(fields, "Thigh Circumference", s.ThighCircumference, UnitInches)
	fields = appendMeasurement(fields, "Waist Circumference", s.WaistCircumference, UnitInches)
	return fields
}

// BodyMetricFields projects height and weight.
func BodyMetricFields(sd *model.StretchData) []Field {
	if sd == nil {
		return nil
	}
	var fields []Field
	fields = appendMeasurement(fields, "Height", sd.Height, UnitCm)
	fields = appendMeasurement(fields, "Weight", sd.Weight, UnitKg)
	return fields
}

// FitPreferenceFields projects one record's categorical preferences.
func FitPreferenceFields(fp *model.FitPreferences) []Field {
	if fp == nil {
		return nil
	}
	var fields []Field
	fields = appendText(fields, "Kameez Fit", fp.KameezFit)
	fields = appendText(fields, "Neckline Style", fp.NecklineStyle)
	fields = appendText(fields, "Pant Style", fp.PantStyle)
	fields = appendText(fields, "Sleeve Style", fp.SleeveStyle)
	return fields
}

// FitPreferenceBlocks fans out over every product and every stretch-data
// record carrying preferences, producing one block per pair. This is the
// one projection that reads the full product list instead of only the
// first product's first record.
func FitPreferenceBlocks(products []model.Product) []FitPreferenceBlock {
	var blocks []FitPreferenceBlock
	for _, p := range products {
		for i := range p.StretchData {
			fp := p.StretchData[i].FitPreferences
			if fp == nil {
				continue
			}
			blocks = append(blocks, FitPreferenceBlock{
				ProductID:   p.ProductID,
				RecordIndex: i,
				Fields:      FitPreferenceFields(fp),
			})
		}
	}
	return blocks
}

func appendMeasurement(fields []Field, label string, v *float64, unit string) []Field {
	if v == nil || *v == 0 {
		return fields
	}
	return append(fields, Field{
		Label: label,
		Value: strconv.FormatFloat(*v, 'f', -1, 64),
		Unit:  unit,
	})
}

func appendText(fields []Field, label, v string) []Field {
	if v == "" {
		return fields
	}
	return append(fields, Field{Label: label, Value: v})
}
